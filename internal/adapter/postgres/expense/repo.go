// Package expense implements the Expense repository using PostgreSQL.
package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	postgres "github.com/heartmarshall/expenses-backend/internal/adapter/postgres"
	"github.com/heartmarshall/expenses-backend/internal/domain"
)

const entity = "expense"

// returningColumns are the columns of a bare expense row.
var returningColumns = []string{
	"id", "user_id", "description", "date", "value::text AS value", "created_at", "updated_at",
}

// joinedColumns select an expense together with its owner's name.
var joinedColumns = []string{
	"e.id", "e.user_id", "e.description", "e.date", "e.value::text AS value",
	"e.created_at", "e.updated_at", "u.name AS owner_name",
}

// Repo provides expense persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new expense repository. db is usually a *pgxpool.Pool.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

type row struct {
	ID          uuid.UUID `db:"id"`
	UserID      uuid.UUID `db:"user_id"`
	Description string    `db:"description"`
	Date        time.Time `db:"date"`
	Value       string    `db:"value"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
	OwnerName   string    `db:"owner_name"`
}

func (r row) toDomain() (domain.Expense, error) {
	value, err := decimal.NewFromString(r.Value)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("expense %s: parse value %q: %w", r.ID, r.Value, err)
	}
	return domain.Expense{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		Date:        domain.TruncateToDate(r.Date, time.UTC),
		Value:       value,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Owner:       domain.Owner{ID: r.UserID, Name: r.OwnerName},
	}, nil
}

// ---------------------------------------------------------------------------
// Reads
// ---------------------------------------------------------------------------

// GetByID returns an expense with its owner summary. It is not scoped to a
// user; ownership is decided by the caller.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate is GetByID that also locks the expense row until the
// surrounding transaction ends.
func (r *Repo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Expense, error) {
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, lock bool) (*domain.Expense, error) {
	q := selectJoined().Where(squirrel.Eq{"e.id": id})
	if lock {
		q = q.Suffix("FOR UPDATE OF e")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get expense query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, mapScanError(err, id)
	}

	e, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByUser returns every expense owned by userID, oldest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	query, args, err := selectJoined().
		Where(squirrel.Eq{"e.user_id": userID}).
		OrderBy("e.created_at ASC", "e.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list expenses query: %w", err)
	}

	var rows []row
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "expenses of user", userID)
	}

	out := make([]domain.Expense, 0, len(rows))
	for _, rw := range rows {
		e, err := rw.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func selectJoined() squirrel.SelectBuilder {
	return postgres.Psql.
		Select(joinedColumns...).
		From("expenses e").
		Join("users u ON u.id = e.user_id")
}

// ---------------------------------------------------------------------------
// Writes
// ---------------------------------------------------------------------------

// Create inserts a new expense and returns the persisted row. The owner
// summary is copied from e.Owner, not read back.
func (r *Repo) Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error) {
	query, args, err := postgres.Psql.
		Insert("expenses").
		Columns("id", "user_id", "description", "date", "value", "created_at", "updated_at").
		Values(e.ID, e.UserID, e.Description, e.Date, e.Value.String(), e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING " + strings.Join(returningColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert expense query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, mapScanError(err, e.ID)
	}

	rw.OwnerName = e.Owner.Name
	created, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update writes the set fields of changes and bumps updated_at.
// The owner column is never written.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, changes domain.ExpenseChanges, now time.Time) (*domain.Expense, error) {
	set := map[string]any{"updated_at": now}
	if changes.Description != nil {
		set["description"] = *changes.Description
	}
	if changes.Date != nil {
		set["date"] = *changes.Date
	}
	if changes.Value != nil {
		set["value"] = changes.Value.String()
	}

	query, args, err := postgres.Psql.
		Update("expenses").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(returningColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update expense query: %w", err)
	}

	var rw row
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &rw, query, args...); err != nil {
		return nil, mapScanError(err, id)
	}

	updated, err := rw.toDomain()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an expense permanently.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args, err := postgres.Psql.
		Delete("expenses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete expense query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, entity, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// mapScanError normalizes scany's "no rows" error before mapping.
func mapScanError(err error, id uuid.UUID) error {
	if pgxscan.NotFound(err) {
		err = pgx.ErrNoRows
	}
	return postgres.MapError(err, entity, id)
}
