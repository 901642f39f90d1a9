package service

import (
	"context"
	"errors"
	"testing"
	"team-planning/internal/config"
	"team-planning/internal/models"
	"team-planning/internal/repository"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		PlanningYear: 2026,
		Members:      []string{"William", "Ritchie", "Emmanuel", "Grégory", "Kyle"},
		MinStaff:     3,
	}
}

func testStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := repository.OpenJSON(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

type recordingNotifier struct {
	got []models.LeaveRequest
	err error
}

func (r *recordingNotifier) LeaveSubmitted(_ context.Context, req models.LeaveRequest) error {
	r.got = append(r.got, req)
	return r.err
}

type failingPlanning struct{}

func (failingPlanning) GetRange(context.Context, string, string) (models.PlanningMap, error) {
	return nil, errors.New("quota exceeded")
}

func (failingPlanning) Upsert(context.Context, []models.DayStatus) error {
	return errors.New("quota exceeded")
}
