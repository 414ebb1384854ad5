package expense

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	other := uuid.New()
	e := &domain.Expense{ID: uuid.New(), UserID: owner}

	tests := []struct {
		name    string
		actor   uuid.UUID
		expense *domain.Expense
		action  domain.Action
		allowed bool
	}{
		{"owner view", owner, e, domain.ActionView, true},
		{"owner update", owner, e, domain.ActionUpdate, true},
		{"owner delete", owner, e, domain.ActionDelete, true},
		{"other view", other, e, domain.ActionView, false},
		{"other update", other, e, domain.ActionUpdate, false},
		{"other delete", other, e, domain.ActionDelete, false},
		{"nil actor", uuid.Nil, &domain.Expense{}, domain.ActionView, false},
		{"unknown action", owner, e, domain.Action("archive"), false},
		{"nil expense", owner, nil, domain.ActionView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Authorize(tt.actor, tt.expense, tt.action)
			if tt.allowed && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, domain.ErrForbidden) {
				t.Fatalf("expected ErrForbidden, got %v", err)
			}
		})
	}
}
