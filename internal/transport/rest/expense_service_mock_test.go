package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/domain"
	"github.com/heartmarshall/expenses-backend/internal/service/expense"
)

var _ expenseService = &expenseServiceMock{}

type expenseServiceMock struct {
	ListFunc   func(ctx context.Context, actor uuid.UUID) ([]domain.Expense, error)
	CreateFunc func(ctx context.Context, actor uuid.UUID, p expense.Payload) (*domain.Expense, error)
	ShowFunc   func(ctx context.Context, actor, id uuid.UUID) (*domain.Expense, error)
	UpdateFunc func(ctx context.Context, actor, id uuid.UUID, p expense.Payload) (*domain.Expense, error)
	DeleteFunc func(ctx context.Context, actor, id uuid.UUID) error

	calls struct {
		Create []struct {
			Actor   uuid.UUID
			Payload expense.Payload
		}
		Update []struct {
			Actor   uuid.UUID
			ID      uuid.UUID
			Payload expense.Payload
		}
		Delete []struct {
			Actor uuid.UUID
			ID    uuid.UUID
		}
	}
	lock sync.RWMutex
}

func (mock *expenseServiceMock) List(ctx context.Context, actor uuid.UUID) ([]domain.Expense, error) {
	if mock.ListFunc == nil {
		panic("expenseServiceMock.ListFunc: method is nil but expenseService.List was just called")
	}
	return mock.ListFunc(ctx, actor)
}

func (mock *expenseServiceMock) Create(ctx context.Context, actor uuid.UUID, p expense.Payload) (*domain.Expense, error) {
	if mock.CreateFunc == nil {
		panic("expenseServiceMock.CreateFunc: method is nil but expenseService.Create was just called")
	}
	mock.lock.Lock()
	mock.calls.Create = append(mock.calls.Create, struct {
		Actor   uuid.UUID
		Payload expense.Payload
	}{actor, p})
	mock.lock.Unlock()
	return mock.CreateFunc(ctx, actor, p)
}

func (mock *expenseServiceMock) Show(ctx context.Context, actor, id uuid.UUID) (*domain.Expense, error) {
	if mock.ShowFunc == nil {
		panic("expenseServiceMock.ShowFunc: method is nil but expenseService.Show was just called")
	}
	return mock.ShowFunc(ctx, actor, id)
}

func (mock *expenseServiceMock) Update(ctx context.Context, actor, id uuid.UUID, p expense.Payload) (*domain.Expense, error) {
	if mock.UpdateFunc == nil {
		panic("expenseServiceMock.UpdateFunc: method is nil but expenseService.Update was just called")
	}
	mock.lock.Lock()
	mock.calls.Update = append(mock.calls.Update, struct {
		Actor   uuid.UUID
		ID      uuid.UUID
		Payload expense.Payload
	}{actor, id, p})
	mock.lock.Unlock()
	return mock.UpdateFunc(ctx, actor, id, p)
}

func (mock *expenseServiceMock) Delete(ctx context.Context, actor, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("expenseServiceMock.DeleteFunc: method is nil but expenseService.Delete was just called")
	}
	mock.lock.Lock()
	mock.calls.Delete = append(mock.calls.Delete, struct {
		Actor uuid.UUID
		ID    uuid.UUID
	}{actor, id})
	mock.lock.Unlock()
	return mock.DeleteFunc(ctx, actor, id)
}

func (mock *expenseServiceMock) CreateCalls() []struct {
	Actor   uuid.UUID
	Payload expense.Payload
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Create
}

func (mock *expenseServiceMock) UpdateCalls() []struct {
	Actor   uuid.UUID
	ID      uuid.UUID
	Payload expense.Payload
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Update
}

func (mock *expenseServiceMock) DeleteCalls() []struct {
	Actor uuid.UUID
	ID    uuid.UUID
} {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Delete
}
