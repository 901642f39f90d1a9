package service

import (
	"context"
	"fmt"
	"team-planning/internal/config"
	"team-planning/internal/models"
	"team-planning/internal/repository"
	"time"

	"github.com/sirupsen/logrus"
)

type Cell struct {
	Member string        `json:"member"`
	Status models.Status `json:"status"`
	Note   string        `json:"note,omitempty"`
	Text   string        `json:"text"`
}

type Day struct {
	Date      string `json:"date"`
	Label     string `json:"label"`
	Cells     []Cell `json:"cells"`
	Headcount int    `json:"headcount"`
	Closed    bool   `json:"closed"`
	LowStaff  bool   `json:"low_staff"`
}

type Week struct {
	Number int   `json:"number"`
	Days   []Day `json:"days"`
}

// MemberSummary counts the member's Monday-Saturday days per status.
type MemberSummary struct {
	Member string                `json:"member"`
	Counts map[models.Status]int `json:"counts"`
}

type MonthView struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	MonthName string          `json:"month_name"`
	Members   []string        `json:"members"`
	Weeks     []Week          `json:"weeks"`
	Summary   []MemberSummary `json:"summary"`
}

type CalendarService struct {
	repo   repository.PlanningRepository
	cfg    *config.Config
	logger *logrus.Logger
}

func NewCalendarService(repo repository.PlanningRepository, cfg *config.Config) *CalendarService {
	return &CalendarService{
		repo:   repo,
		cfg:    cfg,
		logger: logrus.New(),
	}
}

// Month builds the view of one month of the planning year.
func (s *CalendarService) Month(ctx context.Context, month int) (*MonthView, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	first := time.Date(s.cfg.PlanningYear, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1)

	plan, err := s.repo.GetRange(ctx, models.FormatDate(first), models.FormatDate(last))
	if err != nil {
		s.logger.WithError(err).WithField("month", month).Error("Failed to load planning")
		return nil, fmt.Errorf("failed to load planning: %w", err)
	}

	view := &MonthView{
		Year:      s.cfg.PlanningYear,
		Month:     month,
		MonthName: MonthNamesFR[month-1],
		Members:   s.cfg.Members,
	}

	summary := make([]MemberSummary, len(s.cfg.Members))
	for i, m := range s.cfg.Members {
		summary[i] = MemberSummary{Member: m, Counts: make(map[models.Status]int)}
	}

	for _, d := range models.DaysInRange(first, last, true) {
		day := s.buildDay(plan, d)
		for i, c := range day.Cells {
			summary[i].Counts[c.Status]++
		}

		_, week := d.ISOWeek()
		if n := len(view.Weeks); n == 0 || view.Weeks[n-1].Number != week {
			view.Weeks = append(view.Weeks, Week{Number: week})
		}
		w := &view.Weeks[len(view.Weeks)-1]
		w.Days = append(w.Days, day)
	}
	view.Summary = summary

	return view, nil
}

// Day returns a single day, used by the bot's /today command.
func (s *CalendarService) Day(ctx context.Context, date time.Time) (*Day, error) {
	iso := models.FormatDate(date)
	plan, err := s.repo.GetRange(ctx, iso, iso)
	if err != nil {
		return nil, fmt.Errorf("failed to load planning: %w", err)
	}
	day := s.buildDay(plan, date)
	return &day, nil
}

func (s *CalendarService) buildDay(plan models.PlanningMap, d time.Time) Day {
	iso := models.FormatDate(d)
	day := Day{
		Date:  iso,
		Label: DayLabel(d),
		Cells: make([]Cell, 0, len(s.cfg.Members)),
	}

	closed := len(s.cfg.Members) > 0
	for _, m := range s.cfg.Members {
		e := plan.Get(iso, m)
		day.Cells = append(day.Cells, Cell{
			Member: m,
			Status: e.Status,
			Note:   e.Note,
			Text:   cellText(e),
		})
		if e.Status.IsWorking() {
			day.Headcount++
		}
		if e.Status != models.StatusOfficeClosed {
			closed = false
		}
	}

	day.Closed = closed
	day.LowStaff = !closed && day.Headcount < s.cfg.MinStaff
	return day
}

// cellText shows "note icon" when a note exists, the icon alone otherwise.
func cellText(e models.Entry) string {
	if e.Note != "" {
		return e.Note + " " + e.Status.Icon()
	}
	return e.Status.Icon()
}
