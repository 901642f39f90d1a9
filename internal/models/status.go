package models

import "strings"

type Status string

const (
	StatusPresent      Status = "present"
	StatusRemote       Status = "remote"
	StatusAbsent       Status = "absent"
	StatusOfficeClosed Status = "office_closed"
	StatusVacation     Status = "vacation"
	StatusSaturdayWork Status = "saturday_work"
)

// AllStatuses lists statuses in display order.
var AllStatuses = []Status{
	StatusPresent,
	StatusRemote,
	StatusAbsent,
	StatusOfficeClosed,
	StatusVacation,
	StatusSaturdayWork,
}

var statusLabels = map[Status]string{
	StatusPresent:      "Présent",
	StatusRemote:       "Télétravail",
	StatusAbsent:       "Absent",
	StatusOfficeClosed: "Fermeture",
	StatusVacation:     "Vacances",
	StatusSaturdayWork: "Travail Samedi",
}

var statusIcons = map[Status]string{
	StatusPresent:      "✅",
	StatusRemote:       "🏠",
	StatusAbsent:       "🚫",
	StatusOfficeClosed: "🔑",
	StatusVacation:     "✈️",
	StatusSaturdayWork: "🛠️",
}

// ParseStatus accepts either the storage key or the display label.
// Spreadsheets filled by hand carry labels, so both must round-trip.
func ParseStatus(s string) (Status, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	for _, st := range AllStatuses {
		if strings.EqualFold(s, string(st)) || strings.EqualFold(s, statusLabels[st]) {
			return st, true
		}
	}
	return "", false
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	_, ok := statusLabels[s]
	return ok
}

func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusPresent]
}

// Icon falls back to the Present icon for unknown values.
func (s Status) Icon() string {
	if i, ok := statusIcons[s]; ok {
		return i
	}
	return statusIcons[StatusPresent]
}

// IsWorking reports whether the member counts toward the daily headcount.
func (s Status) IsWorking() bool {
	switch s {
	case StatusPresent, StatusRemote, StatusSaturdayWork:
		return true
	}
	return false
}

// WeeklyRuleStatuses are the statuses a recurring weekly rule may apply.
var WeeklyRuleStatuses = []Status{StatusRemote, StatusOfficeClosed, StatusPresent}

func IsWeeklyRuleStatus(s Status) bool {
	for _, st := range WeeklyRuleStatuses {
		if st == s {
			return true
		}
	}
	return false
}
