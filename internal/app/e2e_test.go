//go:build e2e

package app_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres/testhelper"
)

func TestE2E_HealthEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, status)

	body := decodeObject(t, raw)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test-version", body["version"])

	components, ok := body["components"].(map[string]any)
	require.True(t, ok, "expected components object")
	db, ok := components["database"].(map[string]any)
	require.True(t, ok, "expected database component")
	assert.Equal(t, "ok", db["status"])
}

func TestE2E_Unauthenticated(t *testing.T) {
	ts := setupTestServer(t)

	status, raw := ts.do(t, http.MethodGet, "/expenses", nil, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.JSONEq(t, `{"error":"unauthenticated"}`, string(raw))

	status, _ = ts.do(t, http.MethodGet, "/expenses", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_ExpenseLifecycle(t *testing.T) {
	ts := setupTestServer(t)
	owner, token := createTestUserAndGetToken(t, ts)

	// Create.
	status, raw := ts.do(t, http.MethodPost, "/expenses", map[string]any{
		"description": "Lunch",
		"date":        "2024-01-10",
		"value":       12.50,
	}, token)
	require.Equal(t, http.StatusCreated, status, string(raw))

	created := decodeObject(t, raw)
	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.Equal(t, "Lunch", created["description"])
	assert.Equal(t, "2024-01-10", created["date"])
	assert.InDelta(t, 12.5, created["value"], 0.0001)
	user := created["user"].(map[string]any)
	assert.Equal(t, owner.ID.String(), user["id"])
	assert.Equal(t, owner.Name, user["name"])

	events := ts.notified.Events()
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID.String())

	// List.
	status, raw = ts.do(t, http.MethodGet, "/expenses", nil, token)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0]["id"])

	// Partial update keeps untouched fields.
	status, raw = ts.do(t, http.MethodPatch, "/expenses/"+id, map[string]any{"value": "15"}, token)
	require.Equal(t, http.StatusOK, status, string(raw))
	updated := decodeObject(t, raw)
	assert.Equal(t, "Lunch", updated["description"])
	assert.Equal(t, "2024-01-10", updated["date"])
	assert.InDelta(t, 15.0, updated["value"], 0.0001)

	// Show reflects the update.
	status, raw = ts.do(t, http.MethodGet, "/expenses/"+id, nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 15.0, decodeObject(t, raw)["value"], 0.0001)

	// Delete, then it is gone.
	status, raw = ts.do(t, http.MethodDelete, "/expenses/"+id, nil, token)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, raw)

	status, _ = ts.do(t, http.MethodGet, "/expenses/"+id, nil, token)
	assert.Equal(t, http.StatusNotFound, status)

	status, raw = ts.do(t, http.MethodGet, "/expenses", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestE2E_OtherUsersExpenseIsForbidden(t *testing.T) {
	ts := setupTestServer(t)
	owner, _ := createTestUserAndGetToken(t, ts)
	_, intruder := createTestUserAndGetToken(t, ts)

	e := testhelper.SeedExpense(t, ts.Pool, owner, "Rent", "2024-01-01", "900.00")
	path := "/expenses/" + e.ID.String()

	status, raw := ts.do(t, http.MethodGet, path, nil, intruder)
	assert.Equal(t, http.StatusForbidden, status)
	assert.JSONEq(t, `{"error":"access denied"}`, string(raw))

	status, _ = ts.do(t, http.MethodPut, path, map[string]any{"description": "Mine now"}, intruder)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = ts.do(t, http.MethodDelete, path, nil, intruder)
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = ts.do(t, http.MethodGet, "/expenses", nil, intruder)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw), "list is scoped to the caller")

	var description string
	require.NoError(t, ts.Pool.QueryRow(t.Context(),
		`SELECT description FROM expenses WHERE id = $1`, e.ID).Scan(&description))
	assert.Equal(t, "Rent", description)
}

func TestE2E_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)
	_, token := createTestUserAndGetToken(t, ts)

	tomorrow := time.Now().UTC().AddDate(0, 0, 2).Format("2006-01-02")

	status, raw := ts.do(t, http.MethodPost, "/expenses", map[string]any{
		"date":  tomorrow,
		"value": -1,
	}, token)
	require.Equal(t, http.StatusBadRequest, status)

	body := decodeObject(t, raw)
	assert.Equal(t, "validation failed", body["error"])

	fields := map[string]bool{}
	for _, f := range body["fields"].([]any) {
		fields[f.(map[string]any)["field"].(string)] = true
	}
	assert.True(t, fields["description"])
	assert.True(t, fields["date"])
	assert.True(t, fields["value"])

	status, raw = ts.do(t, http.MethodGet, "/expenses", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(raw), "nothing persisted on validation failure")
}

func TestE2E_UnknownExpense(t *testing.T) {
	ts := setupTestServer(t)
	_, token := createTestUserAndGetToken(t, ts)

	status, raw := ts.do(t, http.MethodGet, "/expenses/"+uuid.New().String(), nil, token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.JSONEq(t, `{"error":"expense not found"}`, string(raw))

	status, _ = ts.do(t, http.MethodDelete, "/expenses/not-a-uuid", nil, token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestE2E_RequestIDAndCORS(t *testing.T) {
	ts := setupTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/expenses", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Authorization,Content-Type")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Headers"))

	_, err = uuid.Parse(resp.Header.Get("X-Request-Id"))
	assert.NoError(t, err, "X-Request-Id should be a generated UUID")
}
