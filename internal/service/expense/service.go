// Package expense implements the owner-scoped expense use cases.
package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

type expenseRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, id uuid.UUID, changes domain.ExpenseChanges, now time.Time) (*domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type notifier interface {
	ExpenseRegistered(ctx context.Context, user domain.User, e domain.Expense) error
}

type clock interface {
	Now() time.Time
	Today() time.Time
}

// Service provides expense operations on behalf of an explicit actor.
type Service struct {
	expenses expenseRepo
	users    userRepo
	tx       txManager
	notifier notifier
	clock    clock
	log      *slog.Logger
}

// NewService creates a new expense service.
func NewService(
	log *slog.Logger,
	expenses expenseRepo,
	users userRepo,
	tx txManager,
	notifier notifier,
	clock clock,
) *Service {
	return &Service{
		expenses: expenses,
		users:    users,
		tx:       tx,
		notifier: notifier,
		clock:    clock,
		log:      log.With("service", "expense"),
	}
}

// SystemClock reads the wall clock. "Today" is the current calendar date in
// Location.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time { return time.Now().UTC() }

func (c SystemClock) Today() time.Time { return domain.TruncateToDate(time.Now(), c.Location) }
