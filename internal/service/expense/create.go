package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// Create validates p and stores a new expense owned by actor. The owner is
// notified after the insert; a failed notification is logged, not returned.
func (s *Service) Create(ctx context.Context, actor uuid.UUID, p Payload) (*domain.Expense, error) {
	if actor == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	input, err := ValidateCreate(p, s.clock.Today())
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetByID(ctx, actor)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("actor %s: %w", actor, domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("get actor: %w", err)
	}

	now := s.clock.Now()
	created, err := s.expenses.Create(ctx, &domain.Expense{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Description: input.Description,
		Date:        input.Date,
		Value:       input.Value,
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       owner.Summary(),
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	created.Owner = owner.Summary()

	s.log.InfoContext(ctx, "expense created",
		slog.String("user_id", actor.String()),
		slog.String("expense_id", created.ID.String()),
	)

	// The expense is committed; a client disconnect must not drop the mail.
	if err := s.notifier.ExpenseRegistered(context.WithoutCancel(ctx), *owner, *created); err != nil {
		s.log.ErrorContext(ctx, "expense registered notification failed",
			slog.String("expense_id", created.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	return created, nil
}
