package repository

import (
	"context"
	"errors"

	"team-planning/internal/models"
)

var ErrNotFound = errors.New("record not found")

// PlanningRepository stores one DayStatus per (date, member).
type PlanningRepository interface {
	// GetRange returns every stored entry with from <= date <= to (ISO dates).
	GetRange(ctx context.Context, from, to string) (models.PlanningMap, error)
	// Upsert overwrites the entries for each (date, member) pair.
	Upsert(ctx context.Context, days []models.DayStatus) error
}

// LeaveRequestRepository stores pending leave requests.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req *models.LeaveRequest) error
	GetAll(ctx context.Context) ([]models.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (*models.LeaveRequest, error)
	Delete(ctx context.Context, id string) error
}
