package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestUser_Summary(t *testing.T) {
	t.Parallel()

	u := &User{ID: uuid.New(), Name: "Ada", Email: "ada@example.com"}
	s := u.Summary()

	if s.ID != u.ID {
		t.Errorf("ID = %s, want %s", s.ID, u.ID)
	}
	if s.Name != "Ada" {
		t.Errorf("Name = %q, want Ada", s.Name)
	}
}
