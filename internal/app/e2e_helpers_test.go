//go:build e2e

package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres"
	expenserepo "github.com/heartmarshall/expenses-backend/internal/adapter/postgres/expense"
	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres/testhelper"
	userrepo "github.com/heartmarshall/expenses-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/expenses-backend/internal/app"
	authpkg "github.com/heartmarshall/expenses-backend/internal/auth"
	"github.com/heartmarshall/expenses-backend/internal/config"
	"github.com/heartmarshall/expenses-backend/internal/domain"
	"github.com/heartmarshall/expenses-backend/internal/service/expense"
	"github.com/heartmarshall/expenses-backend/internal/transport/rest"
)

type testServer struct {
	URL      string
	Client   *http.Client
	Pool     *pgxpool.Pool
	jwt      *authpkg.JWTManager
	notified *recordingNotifier
}

type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// recordingNotifier captures expense-registered notifications.
type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.Expense
}

func (n *recordingNotifier) ExpenseRegistered(_ context.Context, _ domain.User, e domain.Expense) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
	return nil
}

func (n *recordingNotifier) Events() []domain.Expense {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]domain.Expense(nil), n.events...)
}

// setupTestServer wires the real router, service and repositories against
// the shared test database.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	jwtMgr := authpkg.NewJWTManager("test-secret-at-least-32-chars-long!!", "test-issuer", 15*time.Minute)
	notified := &recordingNotifier{}

	svc := expense.NewService(
		logger,
		expenserepo.New(pool),
		userrepo.New(pool),
		postgres.NewTxManager(pool),
		notified,
		expense.SystemClock{Location: time.UTC},
	)

	handler := app.NewRouter(app.RouterDeps{
		Logger:   logger,
		Expenses: rest.NewExpenseHandler(svc, logger),
		Health:   rest.NewHealthHandler("test-version", rest.HealthComponent{Name: "database", Pinger: pool}),
		Tokens:   jwtMgr,
		CORS: config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		},
	})

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:      srv.URL,
		Client:   srv.Client(),
		Pool:     pool,
		jwt:      jwtMgr,
		notified: notified,
	}
}

// createTestUserAndGetToken inserts a fresh user and returns a bearer token for it.
func createTestUserAndGetToken(t *testing.T, ts *testServer) (domain.User, string) {
	t.Helper()

	u := testhelper.SeedUser(t, ts.Pool)
	tok, err := ts.jwt.GenerateAccessToken(u.ID)
	require.NoError(t, err)
	return u, tok
}

// do sends a JSON request and returns the status and raw body.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeObject(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m), "body: %s", raw)
	return m
}

func decodeList(t *testing.T, raw []byte) []map[string]any {
	t.Helper()
	var l []map[string]any
	require.NoError(t, json.Unmarshal(raw, &l), "body: %s", raw)
	return l
}
