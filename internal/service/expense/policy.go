package expense

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// Authorize permits action on e only for its owner. Unknown actions are denied.
func Authorize(actor uuid.UUID, e *domain.Expense, action domain.Action) error {
	if !action.IsValid() {
		return fmt.Errorf("%w: unknown action %q", domain.ErrForbidden, action)
	}
	if e == nil || !e.IsOwnedBy(actor) {
		return fmt.Errorf("%w: %s expense", domain.ErrForbidden, action)
	}
	return nil
}
