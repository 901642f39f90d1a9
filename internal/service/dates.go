package service

import (
	"fmt"
	"team-planning/internal/models"
	"time"
)

var (
	DayNamesFR   = []string{"Dimanche", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi"}
	MonthNamesFR = []string{"Janvier", "Février", "Mars", "Avril", "Mai", "Juin", "Juillet", "Août", "Septembre", "Octobre", "Novembre", "Décembre"}
)

// DayLabel renders "Lundi 02/03/2026".
func DayLabel(d time.Time) string {
	return fmt.Sprintf("%s %s", DayNamesFR[d.Weekday()], d.Format("02/01/2006"))
}

// parseRange validates an inclusive ISO date range inside year.
func parseRange(year int, start, end string) (time.Time, time.Time, error) {
	from, err := models.ParseDate(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, start)
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, end)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	if from.Year() != year || to.Year() != year {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %d", ErrOutOfYear, year)
	}
	return from, to, nil
}

// expandRange builds one DayStatus per Monday-Saturday day in range.
func expandRange(member string, from, to time.Time, status models.Status, note string) []models.DayStatus {
	days := models.DaysInRange(from, to, true)
	writes := make([]models.DayStatus, 0, len(days))
	for _, d := range days {
		writes = append(writes, models.DayStatus{
			Date:   models.FormatDate(d),
			Member: member,
			Status: status,
			Note:   note,
		})
	}
	return writes
}
