package service

import "errors"

var (
	ErrUnknownMember   = errors.New("unknown team member")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidKind     = errors.New("invalid leave kind")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidRange    = errors.New("end date is before start date")
	ErrOutOfYear       = errors.New("date outside the planning year")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidWeekday  = errors.New("weekly rules apply Monday to Saturday only")
	ErrNoWorkingDays   = errors.New("range contains no Monday-Saturday day")
	ErrRequestNotFound = errors.New("leave request not found")
)

// IsValidationError reports whether err was caused by bad input rather
// than by the store.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrUnknownMember, ErrInvalidStatus, ErrInvalidKind, ErrInvalidDate,
		ErrInvalidRange, ErrOutOfYear, ErrInvalidMonth, ErrInvalidWeekday, ErrNoWorkingDays,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
