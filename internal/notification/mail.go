package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/expenses-backend/internal/adapter/amqp"
)

// SubjectExpenseRegistered is the subject line of the registration mail.
const SubjectExpenseRegistered = "Expense registered"

// Mail is a rendered message ready for delivery.
type Mail struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// RenderExpenseRegistered renders the mail sent when an expense is created.
func RenderExpenseRegistered(msg *amqp.ExpenseRegisteredMessage) Mail {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", msg.UserName)
	b.WriteString("A new expense was registered on your account.\n\n")
	fmt.Fprintf(&b, "Description: %s\n", msg.Description)
	fmt.Fprintf(&b, "Date: %s\n", msg.Date)
	fmt.Fprintf(&b, "Value: %s\n", msg.Value.String())

	return Mail{
		To:      msg.UserEmail,
		ToName:  msg.UserName,
		Subject: SubjectExpenseRegistered,
		Body:    b.String(),
	}
}

// LogMailer "sends" mail by writing it to the log.
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer creates a LogMailer.
func NewLogMailer(log *slog.Logger) *LogMailer {
	return &LogMailer{log: log.With("component", "mailer")}
}

// Send logs m at info level.
func (m *LogMailer) Send(ctx context.Context, mail Mail) error {
	if mail.To == "" {
		return fmt.Errorf("mail has no recipient")
	}
	m.log.InfoContext(ctx, "mail sent",
		slog.String("to", mail.To),
		slog.String("to_name", mail.ToName),
		slog.String("subject", mail.Subject),
		slog.String("body", mail.Body),
	)
	return nil
}
