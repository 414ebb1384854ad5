package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// Show returns a single expense if actor owns it.
func (s *Service) Show(ctx context.Context, actor, id uuid.UUID) (*domain.Expense, error) {
	if actor == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	e, err := s.expenses.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}

	if err := Authorize(actor, e, domain.ActionView); err != nil {
		return nil, err
	}
	return e, nil
}
