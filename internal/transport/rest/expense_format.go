package rest

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

type expenseResponse struct {
	ID          string        `json:"id"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Value       json.Number   `json:"value"`
	User        ownerResponse `json:"user"`
}

type ownerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// formatExpense renders e with its resolved owner. The value keeps its
// decimal digits but is emitted as a JSON number.
func formatExpense(e *domain.Expense) expenseResponse {
	ownerID := e.Owner.ID
	if ownerID == uuid.Nil {
		ownerID = e.UserID
	}
	return expenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		Date:        e.DateString(),
		Value:       json.Number(e.Value.String()),
		User: ownerResponse{
			ID:   ownerID.String(),
			Name: e.Owner.Name,
		},
	}
}

func formatExpenses(list []domain.Expense) []expenseResponse {
	out := make([]expenseResponse, 0, len(list))
	for i := range list {
		out = append(out, formatExpense(&list[i]))
	}
	return out
}
