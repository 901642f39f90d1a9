package models

import (
	"strings"
	"time"
)

type LeaveKind string

const (
	LeaveKindVacation LeaveKind = "vacation"
	LeaveKindAbsence  LeaveKind = "absence"
	LeaveKindRemote   LeaveKind = "remote"
)

var AllLeaveKinds = []LeaveKind{LeaveKindVacation, LeaveKindAbsence, LeaveKindRemote}

// Status returns the day status written when a request of this kind is approved.
func (k LeaveKind) Status() Status {
	switch k {
	case LeaveKindVacation:
		return StatusVacation
	case LeaveKindAbsence:
		return StatusAbsent
	case LeaveKindRemote:
		return StatusRemote
	}
	return ""
}

func (k LeaveKind) Label() string {
	st := k.Status()
	if st == "" {
		return string(k)
	}
	return st.Label() + " " + st.Icon()
}

// ParseLeaveKind accepts the kind key, the bare status label ("Vacances")
// or the decorated label ("Vacances ✈️") stored by older spreadsheets.
func ParseLeaveKind(s string) (LeaveKind, bool) {
	s = strings.TrimSpace(s)
	if fields := strings.Fields(s); len(fields) == 2 {
		s = fields[0]
	}
	for _, k := range AllLeaveKinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, k.Status().Label()) {
			return k, true
		}
	}
	return "", false
}

type LeaveRequest struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Requester   string    `gorm:"type:varchar(100);not null;index" json:"requester"`
	Kind        LeaveKind `gorm:"type:varchar(20);not null" json:"kind"`
	StartDate   string    `gorm:"type:varchar(10);not null" json:"start_date"` // YYYY-MM-DD
	EndDate     string    `gorm:"type:varchar(10);not null" json:"end_date"`
	Reason      string    `gorm:"type:text" json:"reason"`
	SubmittedAt time.Time `gorm:"not null;index" json:"submitted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// Days returns the number of calendar days covered, inclusive.
func (r LeaveRequest) Days() int {
	start, err1 := ParseDate(r.StartDate)
	end, err2 := ParseDate(r.EndDate)
	if err1 != nil || err2 != nil || end.Before(start) {
		return 0
	}
	return len(DaysInRange(start, end, false))
}
