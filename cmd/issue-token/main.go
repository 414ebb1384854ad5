// Command issue-token prints a bearer token for a user, creating the user
// first when no account with that email exists. It bootstraps API clients
// since the service itself has no login endpoint.
//
// Usage:
//
//	issue-token --email=user@example.com [--name="Jane Doe"]
//
// Uses the shared configuration (database and auth sections).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/expenses-backend/internal/adapter/postgres"
	userrepo "github.com/heartmarshall/expenses-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/expenses-backend/internal/auth"
	"github.com/heartmarshall/expenses-backend/internal/config"
	"github.com/heartmarshall/expenses-backend/internal/domain"
)

func main() {
	email := flag.String("email", "", "email of the user to issue a token for")
	name := flag.String("name", "", "display name used when the user is created")
	flag.Parse()

	if strings.TrimSpace(*email) == "" {
		fmt.Fprintln(os.Stderr, `Usage: issue-token --email=user@example.com [--name="Jane Doe"]`)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)

	u, created, err := findOrCreate(ctx, users, *email, *name)
	if err != nil {
		log.Fatalf("resolve user: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	token, err := jwtMgr.GenerateAccessToken(u.ID)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	if created {
		fmt.Fprintf(os.Stderr, "Created user %s (%s).\n", u.ID, u.Email)
	}
	fmt.Println(token)
}

func findOrCreate(ctx context.Context, users *userrepo.Repo, email, name string) (*domain.User, bool, error) {
	u, err := users.GetByEmail(ctx, email)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}

	if strings.TrimSpace(name) == "" {
		name, _, _ = strings.Cut(strings.TrimSpace(email), "@")
	}

	now := time.Now().UTC()
	u, err = users.Create(ctx, &domain.User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, false, err
	}
	return u, true, nil
}
