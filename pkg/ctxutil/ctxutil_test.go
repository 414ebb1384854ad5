package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestWithActorID_And_ActorIDFromCtx(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	ctx := WithActorID(context.Background(), id)

	got, ok := ActorIDFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for valid UUID")
	}
	if got != id {
		t.Fatalf("expected %s, got %s", id, got)
	}
}

func TestActorIDFromCtx_Missing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  context.Context
	}{
		{"empty context", context.Background()},
		{"nil uuid", WithActorID(context.Background(), uuid.Nil)},
		{"wrong type", context.WithValue(context.Background(), ctxKey("actor_id"), "not-a-uuid")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ActorIDFromCtx(tt.ctx)
			if ok {
				t.Fatal("expected ok=false")
			}
			if got != uuid.Nil {
				t.Fatalf("expected uuid.Nil, got %s", got)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	t.Parallel()

	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Fatalf("expected empty request id, got %q", got)
	}

	ctx := WithRequestID(context.Background(), "req-123")
	if got := RequestIDFromCtx(ctx); got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestLogAttrs(t *testing.T) {
	t.Parallel()

	if attrs := LogAttrs(context.Background()); len(attrs) != 0 {
		t.Fatalf("expected no attrs, got %v", attrs)
	}

	actor := uuid.New()
	ctx := WithActorID(WithRequestID(context.Background(), "req-1"), actor)
	attrs := LogAttrs(ctx)

	if len(attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(attrs))
	}
	if attrs[0].Key != "request_id" || attrs[0].Value.String() != "req-1" {
		t.Errorf("unexpected request attr: %v", attrs[0])
	}
	if attrs[1].Key != "actor_id" || attrs[1].Value.String() != actor.String() {
		t.Errorf("unexpected actor attr: %v", attrs[1])
	}
}
