package expense

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// Delete permanently removes an expense owned by actor.
func (s *Service) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if actor == uuid.Nil {
		return domain.ErrUnauthorized
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		current, err := s.expenses.GetByIDForUpdate(txCtx, id)
		if err != nil {
			return fmt.Errorf("get expense: %w", err)
		}

		if err := Authorize(actor, current, domain.ActionDelete); err != nil {
			return err
		}

		if err := s.expenses.Delete(txCtx, id); err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "expense deleted",
		slog.String("user_id", actor.String()),
		slog.String("expense_id", id.String()),
	)
	return nil
}
