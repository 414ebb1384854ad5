package expense

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// Update applies the fields present in p to an expense owned by actor.
// The lookup, ownership check and write share one transaction with the row
// locked. A payload with no fields returns the expense unchanged.
func (s *Service) Update(ctx context.Context, actor, id uuid.UUID, p Payload) (*domain.Expense, error) {
	if actor == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	var (
		result  *domain.Expense
		changed bool
	)
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.expenses.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}

		if err := Authorize(actor, current, domain.ActionUpdate); err != nil {
			return err
		}

		input, err := ValidateUpdate(p, s.clock.Today())
		if err != nil {
			return err
		}

		changes := input.Changes()
		if changes.IsEmpty() {
			result = current
			return nil
		}

		updated, err := s.expenses.Update(txCtx, id, changes, s.clock.Now())
		if err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		updated.Owner = current.Owner
		result = updated
		changed = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		s.log.InfoContext(ctx, "expense updated",
			slog.String("user_id", actor.String()),
			slog.String("expense_id", id.String()),
		)
	}
	return result, nil
}
