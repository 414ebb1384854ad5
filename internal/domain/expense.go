package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format of an expense date.
const DateLayout = "2006-01-02"

// DescriptionMaxLen is the maximum description length in characters.
const DescriptionMaxLen = 191

// Bounds of an expense value, well inside what PostgreSQL NUMERIC stores.
const (
	ValueMaxIntegerDigits = 15
	ValueMaxDecimalPlaces = 8
)

// Expense is a single spending record owned by one user.
type Expense struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Description string
	Date        time.Time
	Value       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Owner is the resolved owner summary. Populated by joined reads and by
	// the service on create; zero when the caller did not resolve it.
	Owner Owner
}

// DateString formats the expense date as YYYY-MM-DD.
func (e *Expense) DateString() string {
	return e.Date.Format(DateLayout)
}

// IsOwnedBy reports whether userID is the owner of the expense.
func (e *Expense) IsOwnedBy(userID uuid.UUID) bool {
	return userID != uuid.Nil && e.UserID == userID
}

// ExpenseChanges holds the fields of an expense update.
// A nil field means "leave unchanged".
type ExpenseChanges struct {
	Description *string
	Date        *time.Time
	Value       *decimal.Decimal
}

// IsEmpty reports whether no field is set.
func (c ExpenseChanges) IsEmpty() bool {
	return c.Description == nil && c.Date == nil && c.Value == nil
}

// Action is an operation on an existing expense that requires authorization.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionView, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// TruncateToDate returns t's calendar date in loc as midnight UTC.
func TruncateToDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
