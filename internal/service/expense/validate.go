package expense

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/heartmarshall/expenses-backend/internal/domain"
)

const (
	msgRequired    = "is required"
	msgString      = "must be a string"
	msgTooLong     = "must not exceed %d characters"
	msgDate        = "must be a valid date (YYYY-MM-DD)"
	msgFutureDate  = "must be a date before or equal to today"
	msgNumber      = "must be a number"
	msgNonNegative = "must be at least 0"
	msgValueRange  = "must have at most %d integer digits and %d decimal places"
	msgNUL         = "must not contain NUL characters"
)

// maxValueText caps the literal handed to the decimal parser.
const maxValueText = 64

// Payload is the raw request body of a create or update. An empty field was
// absent from the body; the literal null counts as present but empty.
type Payload struct {
	Description json.RawMessage `json:"description"`
	Date        json.RawMessage `json:"date"`
	Value       json.RawMessage `json:"value"`
}

// CreateInput is a fully validated create payload.
type CreateInput struct {
	Description string
	Date        time.Time
	Value       decimal.Decimal
}

// UpdateInput is a validated update payload. Nil fields stay unchanged.
type UpdateInput struct {
	Description *string
	Date        *time.Time
	Value       *decimal.Decimal
}

// Changes converts the input to the store's change set.
func (i UpdateInput) Changes() domain.ExpenseChanges {
	return domain.ExpenseChanges{
		Description: i.Description,
		Date:        i.Date,
		Value:       i.Value,
	}
}

// ValidateCreate checks every field of p and requires all of them.
func ValidateCreate(p Payload, today time.Time) (CreateInput, error) {
	var (
		in   CreateInput
		verr domain.ValidationError
		msg  string
	)

	if in.Description, msg = parseDescription(p.Description); msg != "" {
		verr.Add("description", msg)
	}
	if in.Date, msg = parseDate(p.Date, today); msg != "" {
		verr.Add("date", msg)
	}
	if in.Value, msg = parseValue(p.Value); msg != "" {
		verr.Add("value", msg)
	}

	if err := verr.Err(); err != nil {
		return CreateInput{}, err
	}
	return in, nil
}

// ValidateUpdate checks the fields present in p with the create rules.
func ValidateUpdate(p Payload, today time.Time) (UpdateInput, error) {
	var (
		in   UpdateInput
		verr domain.ValidationError
	)

	if present(p.Description) {
		if v, msg := parseDescription(p.Description); msg != "" {
			verr.Add("description", msg)
		} else {
			in.Description = &v
		}
	}
	if present(p.Date) {
		if v, msg := parseDate(p.Date, today); msg != "" {
			verr.Add("date", msg)
		} else {
			in.Date = &v
		}
	}
	if present(p.Value) {
		if v, msg := parseValue(p.Value); msg != "" {
			verr.Add("value", msg)
		} else {
			in.Value = &v
		}
	}

	if err := verr.Err(); err != nil {
		return UpdateInput{}, err
	}
	return in, nil
}

// ---------------------------------------------------------------------------
// Field parsers. Each returns the parsed value or a non-empty message.
// ---------------------------------------------------------------------------

func present(raw json.RawMessage) bool { return len(raw) > 0 }

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// jsonString reports whether raw is a JSON string and returns its value.
func jsonString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func parseDescription(raw json.RawMessage) (string, string) {
	if !present(raw) || isNull(raw) {
		return "", msgRequired
	}
	s, ok := jsonString(raw)
	if !ok {
		return "", msgString
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", msgRequired
	}
	if strings.ContainsRune(s, 0) {
		return "", msgNUL
	}
	if utf8.RuneCountInString(s) > domain.DescriptionMaxLen {
		return "", fmt.Sprintf(msgTooLong, domain.DescriptionMaxLen)
	}
	return s, ""
}

func parseDate(raw json.RawMessage, today time.Time) (time.Time, string) {
	if !present(raw) || isNull(raw) {
		return time.Time{}, msgRequired
	}
	s, ok := jsonString(raw)
	if !ok {
		return time.Time{}, msgDate
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, msgRequired
	}

	d, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		ts, tsErr := time.Parse(time.RFC3339, s)
		if tsErr != nil {
			return time.Time{}, msgDate
		}
		// The calendar date as written, regardless of the offset.
		d = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}

	if d.After(today) {
		return time.Time{}, msgFutureDate
	}
	return d, ""
}

func parseValue(raw json.RawMessage) (decimal.Decimal, string) {
	if !present(raw) || isNull(raw) {
		return decimal.Decimal{}, msgRequired
	}

	text := string(bytes.TrimSpace(raw))
	if s, ok := jsonString(raw); ok {
		text = strings.TrimSpace(s)
		if text == "" {
			return decimal.Decimal{}, msgRequired
		}
	} else if !isJSONNumber(raw) {
		return decimal.Decimal{}, msgNumber
	}

	if len(text) > maxValueText {
		return decimal.Decimal{}, valueRangeMessage()
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, msgNumber
	}
	if v.IsNegative() {
		return decimal.Decimal{}, msgNonNegative
	}
	if v.IsZero() {
		return decimal.Zero, ""
	}
	if !withinValueBounds(v) {
		return decimal.Decimal{}, valueRangeMessage()
	}
	return v, ""
}

// withinValueBounds measures v from its coefficient and exponent, so an
// input like 1e50000000 is rejected without ever being expanded.
func withinValueBounds(v decimal.Decimal) bool {
	coef := v.Coefficient().String()
	exp := int64(v.Exponent())
	for len(coef) > 1 && coef[len(coef)-1] == '0' {
		coef = coef[:len(coef)-1]
		exp++
	}

	intDigits := int64(len(coef)) + exp
	places := max(-exp, 0)
	return intDigits <= domain.ValueMaxIntegerDigits && places <= domain.ValueMaxDecimalPlaces
}

func valueRangeMessage() string {
	return fmt.Sprintf(msgValueRange, domain.ValueMaxIntegerDigits, domain.ValueMaxDecimalPlaces)
}

func isJSONNumber(raw json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return false
	}
	_, ok := v.(json.Number)
	return ok
}
