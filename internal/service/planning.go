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

const RecurringNote = "Récurrent"

type PeriodInput struct {
	Member    string `json:"member" form:"member"`
	Status    string `json:"status" form:"status"`
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
	Note      string `json:"note" form:"note"`
}

type WeeklyRuleInput struct {
	Member  string `json:"member" form:"member"`
	Weekday int    `json:"weekday" form:"weekday"` // 1=Monday ... 6=Saturday
	Status  string `json:"status" form:"status"`
}

// PlanningService holds the manager's direct status edits.
type PlanningService struct {
	repo   repository.PlanningRepository
	cfg    *config.Config
	logger *logrus.Logger
}

func NewPlanningService(repo repository.PlanningRepository, cfg *config.Config) *PlanningService {
	return &PlanningService{
		repo:   repo,
		cfg:    cfg,
		logger: logrus.New(),
	}
}

// SetPeriod writes the status for every Monday-Saturday day of the range
// and returns the number of days written.
func (s *PlanningService) SetPeriod(ctx context.Context, in PeriodInput) (int, error) {
	if !s.cfg.IsMember(in.Member) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMember, in.Member)
	}
	status, ok := models.ParseStatus(in.Status)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}
	if in.EndDate == "" {
		in.EndDate = in.StartDate
	}
	from, to, err := parseRange(s.cfg.PlanningYear, in.StartDate, in.EndDate)
	if err != nil {
		return 0, err
	}

	writes := expandRange(in.Member, from, to, status, in.Note)
	if len(writes) == 0 {
		return 0, ErrNoWorkingDays
	}

	if err := s.repo.Upsert(ctx, writes); err != nil {
		s.logger.WithError(err).Error("Failed to write period")
		return 0, fmt.Errorf("failed to write period: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"member": in.Member,
		"status": status,
		"from":   in.StartDate,
		"to":     in.EndDate,
		"days":   len(writes),
	}).Info("Period updated")
	return len(writes), nil
}

// SetDay is SetPeriod for a single date.
func (s *PlanningService) SetDay(ctx context.Context, member, date string, status models.Status, note string) error {
	_, err := s.SetPeriod(ctx, PeriodInput{
		Member:    member,
		Status:    string(status),
		StartDate: date,
		EndDate:   date,
		Note:      note,
	})
	return err
}

// ApplyWeeklyRule writes status on every matching weekday of the planning
// year and returns the number of days written.
func (s *PlanningService) ApplyWeeklyRule(ctx context.Context, in WeeklyRuleInput) (int, error) {
	if !s.cfg.IsMember(in.Member) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownMember, in.Member)
	}
	if in.Weekday < int(time.Monday) || in.Weekday > int(time.Saturday) {
		return 0, ErrInvalidWeekday
	}
	status, ok := models.ParseStatus(in.Status)
	if !ok || !models.IsWeeklyRuleStatus(status) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, in.Status)
	}

	weekday := time.Weekday(in.Weekday)
	first := time.Date(s.cfg.PlanningYear, time.January, 1, 0, 0, 0, 0, time.Local)
	last := time.Date(s.cfg.PlanningYear, time.December, 31, 0, 0, 0, 0, time.Local)

	var writes []models.DayStatus
	for _, d := range models.DaysInRange(first, last, true) {
		if d.Weekday() != weekday {
			continue
		}
		writes = append(writes, models.DayStatus{
			Date:   models.FormatDate(d),
			Member: in.Member,
			Status: status,
			Note:   RecurringNote,
		})
	}

	if err := s.repo.Upsert(ctx, writes); err != nil {
		s.logger.WithError(err).Error("Failed to apply weekly rule")
		return 0, fmt.Errorf("failed to apply weekly rule: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"member":  in.Member,
		"weekday": weekday,
		"status":  status,
		"days":    len(writes),
	}).Info("Weekly rule applied")
	return len(writes), nil
}
