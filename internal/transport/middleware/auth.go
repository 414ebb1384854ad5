package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Auth resolves a bearer token to the acting user. Requests without a token
// pass through anonymously and are rejected by handlers that need an actor;
// a token that fails validation is rejected here with 401.
func Auth(validator tokenValidator, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			actorID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				logger.LogAttrs(r.Context(), slog.LevelDebug, "token rejected",
					append(ctxutil.LogAttrs(r.Context()), slog.String("error", err.Error()))...)
				writeError(w, http.StatusUnauthorized, "unauthenticated")
				return
			}

			recordActor(r.Context(), actorID)
			next.ServeHTTP(w, r.WithContext(ctxutil.WithActorID(r.Context(), actorID)))
		})
	}
}

// extractBearerToken returns the token of an "Authorization: Bearer" header.
// The scheme is matched case-insensitively.
func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
