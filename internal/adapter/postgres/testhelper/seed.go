package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser inserts a user with a unique email and returns it.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Name:      "Test User " + suffix,
		Email:     "testuser-" + suffix + "@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, name, email, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedExpense inserts an expense owned by owner and returns it.
func SeedExpense(t *testing.T, pool *pgxpool.Pool, owner domain.User, description, date, value string) domain.Expense {
	t.Helper()
	ctx := context.Background()

	d, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		t.Fatalf("testhelper: SeedExpense date: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	e := domain.Expense{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Description: description,
		Date:        d,
		Value:       decimal.RequireFromString(value),
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       owner.Summary(),
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO expenses (id, user_id, description, date, value, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		e.ID, e.UserID, e.Description, e.Date, value, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedExpense insert: %v", err)
	}

	return e
}
