package expense

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// ===========================================================================
// Manual mocks (moq-style with func fields)
// ===========================================================================

var (
	_ expenseRepo = &expenseRepoMock{}
	_ userRepo    = &userRepoMock{}
	_ txManager   = &txManagerMock{}
	_ notifier    = &notifierMock{}
	_ clock       = fixedClock{}
)

type expenseRepoMock struct {
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	GetByIDForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
	CreateFunc           func(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	UpdateFunc           func(ctx context.Context, id uuid.UUID, changes domain.ExpenseChanges, now time.Time) (*domain.Expense, error)
	DeleteFunc           func(ctx context.Context, id uuid.UUID) error

	calls struct {
		Create []*domain.Expense
		Update []struct {
			ID      uuid.UUID
			Changes domain.ExpenseChanges
			Now     time.Time
		}
		Delete []uuid.UUID
	}
	lock sync.RWMutex
}

func (m *expenseRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	if m.GetByIDFunc == nil {
		panic("expenseRepoMock.GetByIDFunc: method is nil but expenseRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *expenseRepoMock) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	if m.GetByIDForUpdateFunc == nil {
		panic("expenseRepoMock.GetByIDForUpdateFunc: method is nil but expenseRepo.GetByIDForUpdate was just called")
	}
	return m.GetByIDForUpdateFunc(ctx, id)
}

func (m *expenseRepoMock) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	if m.ListByUserFunc == nil {
		panic("expenseRepoMock.ListByUserFunc: method is nil but expenseRepo.ListByUser was just called")
	}
	return m.ListByUserFunc(ctx, userID)
}

func (m *expenseRepoMock) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	m.lock.Lock()
	m.calls.Create = append(m.calls.Create, e)
	m.lock.Unlock()
	if m.CreateFunc == nil {
		cp := *e
		return &cp, nil
	}
	return m.CreateFunc(ctx, e)
}

func (m *expenseRepoMock) CreateCalls() []*domain.Expense {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Create
}

func (m *expenseRepoMock) Update(ctx context.Context, id uuid.UUID, changes domain.ExpenseChanges, now time.Time) (*domain.Expense, error) {
	m.lock.Lock()
	m.calls.Update = append(m.calls.Update, struct {
		ID      uuid.UUID
		Changes domain.ExpenseChanges
		Now     time.Time
	}{id, changes, now})
	m.lock.Unlock()
	if m.UpdateFunc == nil {
		panic("expenseRepoMock.UpdateFunc: method is nil but expenseRepo.Update was just called")
	}
	return m.UpdateFunc(ctx, id, changes, now)
}

func (m *expenseRepoMock) UpdateCalls() []struct {
	ID      uuid.UUID
	Changes domain.ExpenseChanges
	Now     time.Time
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Update
}

func (m *expenseRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	m.lock.Lock()
	m.calls.Delete = append(m.calls.Delete, id)
	m.lock.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, id)
}

func (m *expenseRepoMock) DeleteCalls() []uuid.UUID {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls.Delete
}

type userRepoMock struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *userRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc == nil {
		panic("userRepoMock.GetByIDFunc: method is nil but userRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, id)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error

	calls int
	lock  sync.Mutex
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.lock.Lock()
	m.calls++
	m.lock.Unlock()
	if m.RunInTxFunc == nil {
		return fn(ctx)
	}
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.calls
}

type notifierMock struct {
	ExpenseRegisteredFunc func(ctx context.Context, user domain.User, e domain.Expense) error

	calls []struct {
		User    domain.User
		Expense domain.Expense
	}
	lock sync.RWMutex
}

func (m *notifierMock) ExpenseRegistered(ctx context.Context, user domain.User, e domain.Expense) error {
	m.lock.Lock()
	m.calls = append(m.calls, struct {
		User    domain.User
		Expense domain.Expense
	}{user, e})
	m.lock.Unlock()
	if m.ExpenseRegisteredFunc == nil {
		return nil
	}
	return m.ExpenseRegisteredFunc(ctx, user, e)
}

func (m *notifierMock) ExpenseRegisteredCalls() []struct {
	User    domain.User
	Expense domain.Expense
} {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.calls
}

type fixedClock struct {
	now   time.Time
	today time.Time
}

func (c fixedClock) Now() time.Time   { return c.now }
func (c fixedClock) Today() time.Time { return c.today }
