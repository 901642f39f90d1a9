package models

import "time"

type DayStatus struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_day_member" json:"date"` // YYYY-MM-DD
	Member    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_day_member" json:"member"`
	Status    Status    `gorm:"type:varchar(20);not null;default:'present'" json:"status"`
	Note      string    `json:"note"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (DayStatus) TableName() string {
	return "day_statuses"
}

// Entry is the value stored per member in a PlanningMap.
type Entry struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

// PlanningMap maps an ISO date to the entries recorded for that day.
type PlanningMap map[string]map[string]Entry

// Get returns the entry for member on date, defaulting to Present.
func (p PlanningMap) Get(date, member string) Entry {
	if day, ok := p[date]; ok {
		if e, ok := day[member]; ok {
			if !e.Status.IsValid() {
				e.Status = StatusPresent
			}
			return e
		}
	}
	return Entry{Status: StatusPresent}
}

func (p PlanningMap) Set(ds DayStatus) {
	day, ok := p[ds.Date]
	if !ok {
		day = make(map[string]Entry)
		p[ds.Date] = day
	}
	day[ds.Member] = Entry{Status: ds.Status, Note: ds.Note}
}

// DateLayout is the storage format for every date in the planner.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysInRange returns every day from start to end inclusive.
func DaysInRange(start, end time.Time, skipSundays bool) []time.Time {
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	end = time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.Local)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if skipSundays && d.Weekday() == time.Sunday {
			continue
		}
		days = append(days, d)
	}
	return days
}
