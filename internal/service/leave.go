package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"team-planning/internal/config"
	"team-planning/internal/models"
	"team-planning/internal/notify"
	"team-planning/internal/repository"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const ApprovedNote = "Validé"

type SubmitInput struct {
	Requester string `json:"requester" form:"requester"`
	Kind      string `json:"kind" form:"kind"`
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
	Reason    string `json:"reason" form:"reason"`
}

type LeaveService struct {
	requests repository.LeaveRequestRepository
	planning repository.PlanningRepository
	notifier notify.Notifier
	cfg      *config.Config
	logger   *logrus.Logger
	now      func() time.Time
}

// NewLeaveService accepts a nil notifier.
func NewLeaveService(
	requests repository.LeaveRequestRepository,
	planning repository.PlanningRepository,
	notifier notify.Notifier,
	cfg *config.Config,
) *LeaveService {
	return &LeaveService{
		requests: requests,
		planning: planning,
		notifier: notifier,
		cfg:      cfg,
		logger:   logrus.New(),
		now:      time.Now,
	}
}

// Submit validates and stores a pending request, then notifies the manager.
// Notification failures are logged and do not fail the submission.
func (s *LeaveService) Submit(ctx context.Context, in SubmitInput) (*models.LeaveRequest, error) {
	in.Requester = strings.TrimSpace(in.Requester)
	if !s.cfg.IsMember(in.Requester) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMember, in.Requester)
	}
	kind, ok := models.ParseLeaveKind(in.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, in.Kind)
	}
	if _, _, err := parseRange(s.cfg.PlanningYear, in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	req := &models.LeaveRequest{
		ID:          uuid.NewString(),
		Requester:   in.Requester,
		Kind:        kind,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Reason:      strings.TrimSpace(in.Reason),
		SubmittedAt: s.now().Truncate(time.Second),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		s.logger.WithError(err).Error("Failed to store leave request")
		return nil, fmt.Errorf("failed to store leave request: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":        req.ID,
		"requester": req.Requester,
		"kind":      req.Kind,
		"from":      req.StartDate,
		"to":        req.EndDate,
	}).Info("Leave request submitted")

	if s.notifier != nil {
		if err := s.notifier.LeaveSubmitted(ctx, *req); err != nil {
			s.logger.WithError(err).WithField("id", req.ID).Warn("Failed to notify manager")
		}
	}

	return req, nil
}

// Pending lists requests awaiting a decision, oldest first.
func (s *LeaveService) Pending(ctx context.Context) ([]models.LeaveRequest, error) {
	return s.requests.GetAll(ctx)
}

// Approve writes the request's status on each Monday-Saturday day of its
// range, then removes the request. It returns the number of days written.
func (s *LeaveService) Approve(ctx context.Context, id string) (int, error) {
	req, err := s.get(ctx, id)
	if err != nil {
		return 0, err
	}

	from, to, err := parseRange(s.cfg.PlanningYear, req.StartDate, req.EndDate)
	if err != nil {
		return 0, err
	}

	writes := expandRange(req.Requester, from, to, req.Kind.Status(), ApprovedNote)
	if err := s.planning.Upsert(ctx, writes); err != nil {
		s.logger.WithError(err).WithField("id", id).Error("Failed to write approved leave")
		return 0, fmt.Errorf("failed to write approved leave: %w", err)
	}

	if err := s.requests.Delete(ctx, id); err != nil {
		return 0, fmt.Errorf("failed to delete leave request: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":        id,
		"requester": req.Requester,
		"days":      len(writes),
	}).Info("Leave request approved")
	return len(writes), nil
}

// Reject discards the request without touching the planning.
func (s *LeaveService) Reject(ctx context.Context, id string) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete leave request: %w", err)
	}

	s.logger.WithField("id", id).Info("Leave request rejected")
	return nil
}

func (s *LeaveService) get(ctx context.Context, id string) (*models.LeaveRequest, error) {
	req, err := s.requests.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load leave request: %w", err)
	}
	return req, nil
}
