package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// List returns every expense owned by actor, oldest first.
func (s *Service) List(ctx context.Context, actor uuid.UUID) ([]domain.Expense, error) {
	if actor == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}

	expenses, err := s.expenses.ListByUser(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	return expenses, nil
}
