// Package notification tells expense owners that a new expense was
// registered on their account.
package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/expenses-backend/internal/adapter/amqp"
	"github.com/heartmarshall/expenses-backend/internal/domain"
)

type publisher interface {
	PublishExpenseRegistered(ctx context.Context, msg *amqp.ExpenseRegisteredMessage) error
}

// Publisher hands notifications to the broker; delivery happens in the worker.
type Publisher struct {
	client publisher
	log    *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a Publisher on top of an AMQP client.
func NewPublisher(client publisher, log *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		log:    log.With("component", "notification"),
		now:    time.Now,
	}
}

// ExpenseRegistered publishes an expense-registered message for user.
func (p *Publisher) ExpenseRegistered(ctx context.Context, user domain.User, e domain.Expense) error {
	msg := NewExpenseRegisteredMessage(user, e, p.now())
	if err := p.client.PublishExpenseRegistered(ctx, msg); err != nil {
		return fmt.Errorf("publish expense registered: %w", err)
	}

	p.log.DebugContext(ctx, "expense registered notification queued",
		slog.String("expense_id", e.ID.String()),
		slog.String("user_id", user.ID.String()),
	)
	return nil
}

// NewExpenseRegisteredMessage builds the broker message for e owned by user.
func NewExpenseRegisteredMessage(user domain.User, e domain.Expense, at time.Time) *amqp.ExpenseRegisteredMessage {
	return &amqp.ExpenseRegisteredMessage{
		ExpenseID:   e.ID,
		UserID:      user.ID,
		UserName:    user.Name,
		UserEmail:   user.Email,
		Description: e.Description,
		Date:        e.DateString(),
		Value:       e.Value,
		Timestamp:   at.UTC(),
	}
}

// LogNotifier delivers notifications straight to the log. It is used when no
// broker is configured.
type LogNotifier struct {
	mailer *LogMailer
}

// NewLogNotifier creates a LogNotifier.
func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{mailer: NewLogMailer(log)}
}

// ExpenseRegistered logs the rendered mail for user.
func (n *LogNotifier) ExpenseRegistered(ctx context.Context, user domain.User, e domain.Expense) error {
	msg := NewExpenseRegisteredMessage(user, e, time.Now())
	return n.mailer.Send(ctx, RenderExpenseRegistered(msg))
}
