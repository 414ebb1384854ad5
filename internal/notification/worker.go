package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/expenses-backend/internal/adapter/amqp"
)

type consumer interface {
	ConsumeExpenseRegistered(ctx context.Context, handler func(context.Context, *amqp.ExpenseRegisteredMessage) error) error
}

type mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// Worker consumes expense-registered messages and delivers them as mail.
type Worker struct {
	consumer consumer
	mailer   mailer
	log      *slog.Logger
}

// NewWorker creates a Worker.
func NewWorker(c consumer, m mailer, log *slog.Logger) *Worker {
	return &Worker{
		consumer: c,
		mailer:   m,
		log:      log.With("component", "notify-worker"),
	}
}

// Run blocks until ctx is cancelled. Cancellation is not reported as an error.
func (w *Worker) Run(ctx context.Context) error {
	w.log.InfoContext(ctx, "notify worker started")
	err := w.consumer.ConsumeExpenseRegistered(ctx, w.Handle)
	if errors.Is(err, context.Canceled) {
		w.log.InfoContext(ctx, "notify worker stopped")
		return nil
	}
	return err
}

// Handle delivers a single message.
func (w *Worker) Handle(ctx context.Context, msg *amqp.ExpenseRegisteredMessage) error {
	if err := w.mailer.Send(ctx, RenderExpenseRegistered(msg)); err != nil {
		return fmt.Errorf("send mail for expense %s: %w", msg.ExpenseID, err)
	}
	return nil
}
