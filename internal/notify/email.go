package notify

import (
	"context"
	"fmt"
	"team-planning/internal/models"

	"gopkg.in/gomail.v2"
)

// Mailer is implemented by *gomail.Dialer.
type Mailer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailNotifier struct {
	mailer Mailer
	from   string
	to     string
}

func NewEmailNotifier(host string, port int, user, password, from, to string) *EmailNotifier {
	if from == "" {
		from = user
	}
	return &EmailNotifier{
		mailer: gomail.NewDialer(host, port, user, password),
		from:   from,
		to:     to,
	}
}

func (n *EmailNotifier) LeaveSubmitted(_ context.Context, req models.LeaveRequest) error {
	if err := n.mailer.DialAndSend(n.buildMessage(req)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *EmailNotifier) buildMessage(req models.LeaveRequest) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Subject", fmt.Sprintf("Demande de congés : %s", req.Requester))
	m.SetBody("text/plain", LeaveSummary(req))
	return m
}
