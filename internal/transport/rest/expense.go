package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
	"github.com/heartmarshall/expenses-backend/internal/service/expense"
	"github.com/heartmarshall/expenses-backend/pkg/ctxutil"
)

// maxBodyBytes caps create and update request bodies.
const maxBodyBytes = 1 << 20

type expenseService interface {
	List(ctx context.Context, actor uuid.UUID) ([]domain.Expense, error)
	Create(ctx context.Context, actor uuid.UUID, p expense.Payload) (*domain.Expense, error)
	Show(ctx context.Context, actor, id uuid.UUID) (*domain.Expense, error)
	Update(ctx context.Context, actor, id uuid.UUID, p expense.Payload) (*domain.Expense, error)
	Delete(ctx context.Context, actor, id uuid.UUID) error
}

// ExpenseHandler serves the /expenses REST endpoints.
type ExpenseHandler struct {
	svc expenseService
	log *slog.Logger
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(svc expenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, log: logger.With("handler", "expense")}
}

// Register mounts the expense routes on mux.
func (h *ExpenseHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /expenses", h.List)
	mux.HandleFunc("POST /expenses", h.Create)
	mux.HandleFunc("GET /expenses/{id}", h.Show)
	mux.HandleFunc("PUT /expenses/{id}", h.Update)
	mux.HandleFunc("PATCH /expenses/{id}", h.Update)
	mux.HandleFunc("DELETE /expenses/{id}", h.Delete)
}

// List handles GET /expenses.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	list, err := h.svc.List(r.Context(), actor)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, formatExpenses(list))
}

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}

	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	created, err := h.svc.Create(r.Context(), actor, p)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.Header().Set("Location", "/expenses/"+created.ID.String())
	writeJSON(w, http.StatusCreated, formatExpense(created))
}

// Show handles GET /expenses/{id}.
func (h *ExpenseHandler) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Show(r.Context(), actor, id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, formatExpense(e))
}

// Update handles PUT and PATCH /expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}
	p, ok := decodePayload(w, r)
	if !ok {
		return
	}

	updated, err := h.svc.Update(r.Context(), actor, id, p)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, formatExpense(updated))
}

// Delete handles DELETE /expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.actor(w, r)
	if !ok {
		return
	}
	id, ok := expenseID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), actor, id); err != nil {
		handleError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// actor returns the authenticated user or writes 401.
func (h *ExpenseHandler) actor(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := ctxutil.ActorIDFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthenticated")
		return uuid.Nil, false
	}
	return id, true
}

// expenseID parses the {id} path value. A malformed id cannot name an
// existing expense, so it is reported as 404.
func expenseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "expense not found")
		return uuid.Nil, false
	}
	return id, true
}

// decodePayload reads a JSON object body. An empty body is an empty payload.
func decodePayload(w http.ResponseWriter, r *http.Request) (expense.Payload, bool) {
	var p expense.Payload

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&p); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return expense.Payload{}, true
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		default:
			writeError(w, http.StatusBadRequest, "invalid request body")
		}
		return expense.Payload{}, false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return expense.Payload{}, false
	}
	return p, true
}
