package service

import (
	"context"
	"testing"
	"team-planning/internal/models"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarMonthLayout(t *testing.T) {
	store := testStore(t)
	svc := NewCalendarService(store.Planning, testConfig())

	// March 2026 starts on a Sunday and ends on a Tuesday.
	view, err := svc.Month(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, "Mars", view.MonthName)
	assert.Equal(t, 2026, view.Year)

	total := 0
	for _, w := range view.Weeks {
		for _, d := range w.Days {
			date, err := models.ParseDate(d.Date)
			require.NoError(t, err)
			assert.NotEqual(t, time.Sunday, date.Weekday())
			_, isoWeek := date.ISOWeek()
			assert.Equal(t, w.Number, isoWeek)
			total++
		}
	}
	assert.Equal(t, 26, total) // 31 days minus 5 Sundays

	require.NotEmpty(t, view.Weeks)
	assert.Equal(t, 10, view.Weeks[0].Number)
	assert.Equal(t, "Lundi 02/03/2026", view.Weeks[0].Days[0].Label)
	assert.Equal(t, 14, view.Weeks[len(view.Weeks)-1].Number)
}

func TestCalendarDefaultsAndHeadcount(t *testing.T) {
	store := testStore(t)
	cfg := testConfig()
	svc := NewCalendarService(store.Planning, cfg)
	ctx := context.Background()

	require.NoError(t, store.Planning.Upsert(ctx, []models.DayStatus{
		{Date: "2026-03-02", Member: "William", Status: models.StatusVacation},
		{Date: "2026-03-02", Member: "Ritchie", Status: models.StatusAbsent},
		{Date: "2026-03-02", Member: "Grégory", Status: models.StatusAbsent},
		{Date: "2026-03-02", Member: "Kyle", Status: models.StatusRemote, Note: "grève"},
		{Date: "2026-03-03", Member: "Emmanuel", Status: models.StatusAbsent},
	}))
	var closed []models.DayStatus
	for _, m := range cfg.Members {
		closed = append(closed, models.DayStatus{Date: "2026-03-04", Member: m, Status: models.StatusOfficeClosed})
	}
	require.NoError(t, store.Planning.Upsert(ctx, closed))

	view, err := svc.Month(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 10, view.Weeks[0].Number)
	days := view.Weeks[0].Days

	monday := days[0]
	assert.Equal(t, "2026-03-02", monday.Date)
	assert.Equal(t, 2, monday.Headcount) // Emmanuel present, Kyle remote
	assert.True(t, monday.LowStaff)
	assert.False(t, monday.Closed)
	assert.Equal(t, "✈️", monday.Cells[0].Text)
	assert.Equal(t, "grève 🏠", monday.Cells[4].Text)
	assert.Equal(t, models.StatusPresent, monday.Cells[2].Status)

	tuesday := days[1]
	assert.Equal(t, 4, tuesday.Headcount)
	assert.False(t, tuesday.LowStaff)

	wednesday := days[2]
	assert.True(t, wednesday.Closed)
	assert.False(t, wednesday.LowStaff)
	assert.Equal(t, 0, wednesday.Headcount)

	for _, s := range view.Summary {
		if s.Member == "William" {
			assert.Equal(t, 1, s.Counts[models.StatusVacation])
			assert.Equal(t, 1, s.Counts[models.StatusOfficeClosed])
			assert.Equal(t, 24, s.Counts[models.StatusPresent])
		}
	}
}

func TestCalendarMonthValidation(t *testing.T) {
	svc := NewCalendarService(testStore(t).Planning, testConfig())
	_, err := svc.Month(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidMonth)
	_, err = svc.Month(context.Background(), 13)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestCalendarStoreFailure(t *testing.T) {
	svc := NewCalendarService(failingPlanning{}, testConfig())
	_, err := svc.Month(context.Background(), 1)
	assert.Error(t, err)
}

func TestCalendarDay(t *testing.T) {
	store := testStore(t)
	svc := NewCalendarService(store.Planning, testConfig())
	ctx := context.Background()

	require.NoError(t, store.Planning.Upsert(ctx, []models.DayStatus{
		{Date: "2026-06-06", Member: "Kyle", Status: models.StatusSaturdayWork},
	}))

	day, err := svc.Day(ctx, time.Date(2026, 6, 6, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	assert.Equal(t, "Samedi 06/06/2026", day.Label)
	assert.Equal(t, models.StatusSaturdayWork, day.Cells[4].Status)
	assert.Equal(t, 5, day.Headcount)
}
