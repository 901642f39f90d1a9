// Package closures reads production-calendar files listing the days the
// office is closed.
package closures

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// CalendarJSON is the file layout:
//
//	{"year": 2026, "months": [{"month": 1, "days": "1,2,3+,10,31*"}]}
//
// A "+" suffix marks a transferred day off; "*" marks a shortened working
// day, which is not a closure.
type CalendarJSON struct {
	Year   int             `json:"year"`
	Months []MonthClosures `json:"months"`
}

type MonthClosures struct {
	Month int    `json:"month"`
	Days  string `json:"days"`
}

type Day struct {
	Date        time.Time
	Transferred bool
}

// ParseFile reads and parses a calendar file.
func ParseFile(filePath string) (int, []Day, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse returns the calendar year and its closure days in date order.
func Parse(r io.Reader) (int, []Day, error) {
	var cal CalendarJSON
	if err := json.NewDecoder(r).Decode(&cal); err != nil {
		return 0, nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	var days []Day
	for _, monthData := range cal.Months {
		if monthData.Month < 1 || monthData.Month > 12 {
			return 0, nil, fmt.Errorf("invalid month %d", monthData.Month)
		}

		for _, dayStr := range strings.Split(monthData.Days, ",") {
			dayStr = strings.TrimSpace(dayStr)
			if dayStr == "" || strings.HasSuffix(dayStr, "*") {
				continue
			}

			transferred := strings.HasSuffix(dayStr, "+")
			dayStr = strings.TrimSuffix(dayStr, "+")

			day, err := strconv.Atoi(dayStr)
			if err != nil {
				return 0, nil, fmt.Errorf("failed to parse day '%s' in month %d: %w",
					dayStr, monthData.Month, err)
			}

			date := time.Date(cal.Year, time.Month(monthData.Month), day, 0, 0, 0, 0, time.Local)
			if date.Month() != time.Month(monthData.Month) {
				return 0, nil, fmt.Errorf("day %d does not exist in month %d", day, monthData.Month)
			}

			days = append(days, Day{Date: date, Transferred: transferred})
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return cal.Year, days, nil
}
