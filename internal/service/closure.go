package service

import (
	"context"
	"fmt"
	"team-planning/internal/config"
	"team-planning/internal/models"
	"team-planning/internal/repository"
	"team-planning/pkg/closures"
	"time"

	"github.com/sirupsen/logrus"
)

const ClosureNote = "Fermeture"

// ClosureService marks office closure days for the whole team.
type ClosureService struct {
	repo repository.PlanningRepository
	cfg  *config.Config
}

func NewClosureService(repo repository.PlanningRepository, cfg *config.Config) *ClosureService {
	return &ClosureService{repo: repo, cfg: cfg}
}

// Import loads a closure calendar file and returns the number of days marked.
func (s *ClosureService) Import(ctx context.Context, filePath string) (int, error) {
	year, days, err := closures.ParseFile(filePath)
	if err != nil {
		return 0, err
	}
	if year != s.cfg.PlanningYear {
		return 0, fmt.Errorf("%w: file is for %d, planning year is %d", ErrOutOfYear, year, s.cfg.PlanningYear)
	}

	dates := make([]time.Time, 0, len(days))
	for _, d := range days {
		dates = append(dates, d.Date)
	}
	return s.MarkClosed(ctx, dates)
}

// MarkClosed sets every member to OfficeClosed on each Monday-Saturday date.
func (s *ClosureService) MarkClosed(ctx context.Context, dates []time.Time) (int, error) {
	var writes []models.DayStatus
	marked := 0
	for _, d := range dates {
		if d.Weekday() == time.Sunday {
			continue
		}
		if d.Year() != s.cfg.PlanningYear {
			return 0, fmt.Errorf("%w: %s", ErrOutOfYear, models.FormatDate(d))
		}
		for _, m := range s.cfg.Members {
			writes = append(writes, models.DayStatus{
				Date:   models.FormatDate(d),
				Member: m,
				Status: models.StatusOfficeClosed,
				Note:   ClosureNote,
			})
		}
		marked++
	}

	if err := s.repo.Upsert(ctx, writes); err != nil {
		return 0, fmt.Errorf("failed to mark closures: %w", err)
	}

	logrus.WithField("days", marked).Info("Closure days imported")
	return marked, nil
}
