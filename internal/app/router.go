package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/config"
	"github.com/heartmarshall/expenses-backend/internal/transport/middleware"
	"github.com/heartmarshall/expenses-backend/internal/transport/rest"
)

// TokenValidator resolves a bearer token to the authenticated user id.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// RouterDeps is everything NewRouter needs to build the HTTP surface.
type RouterDeps struct {
	Logger      *slog.Logger
	Expenses    *rest.ExpenseHandler
	Health      *rest.HealthHandler
	Tokens      TokenValidator
	CORS        config.CORSConfig
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
}

// NewRouter mounts the probes and the expenses API behind the shared
// middleware stack. Only /expenses routes are rate limited and see the
// authenticated actor.
func NewRouter(d RouterDeps) http.Handler {
	api := http.NewServeMux()
	d.Expenses.Register(api)

	apiHandler := middleware.Chain(
		d.RateLimiter.Middleware(),
		middleware.Auth(d.Tokens, d.Logger),
	)(api)

	mux := http.NewServeMux()
	d.Health.Register(mux)
	mux.Handle("/expenses", apiHandler)
	mux.Handle("/expenses/", apiHandler)

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.CORS(d.CORS),
	)(mux)
}
