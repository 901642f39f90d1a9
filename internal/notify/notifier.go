package notify

import (
	"context"
	"errors"
	"fmt"
	"team-planning/internal/models"
)

// Notifier is told about every newly submitted leave request.
type Notifier interface {
	LeaveSubmitted(ctx context.Context, req models.LeaveRequest) error
}

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) LeaveSubmitted(ctx context.Context, req models.LeaveRequest) error {
	var errs []error
	for _, n := range m {
		if err := n.LeaveSubmitted(ctx, req); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LeaveSummary is the plain-text body shared by all channels.
func LeaveSummary(req models.LeaveRequest) string {
	text := fmt.Sprintf("Nouvelle demande de %s (%s)\nDu %s au %s (%d jours)",
		req.Requester, req.Kind.Label(), displayDate(req.StartDate), displayDate(req.EndDate), req.Days())
	if req.Reason != "" {
		text += "\nMotif : " + req.Reason
	}
	return text
}

func displayDate(iso string) string {
	d, err := models.ParseDate(iso)
	if err != nil {
		return iso
	}
	return d.Format("02/01/2006")
}
