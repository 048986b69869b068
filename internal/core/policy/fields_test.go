package policy

import (
	"testing"
	"time"

	"github.com/userhub/user-directory/internal/core/domain"
)

func TestReveal_PasswordOnlyForAuditor(t *testing.T) {
	rec := &domain.User{ID: "1", Username: "alice", PasswordHash: "$2a$10$hash"}

	cases := []struct {
		name     string
		identity *domain.Identity
		want     string
	}{
		{"anonymous", nil, Redacted},
		{"owner", &domain.Identity{UserID: "1", Username: "alice"}, Redacted},
		{"other user", &domain.Identity{UserID: "2", Username: "mallory"}, Redacted},
		{"auditor", &domain.Identity{UserID: "7", Username: "Bond"}, "$2a$10$hash"},
	}

	for _, tc := range cases {
		if got := Reveal("password", rec, tc.identity); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestReveal_AuditorCaseSensitive(t *testing.T) {
	rec := &domain.User{Username: "x", PasswordHash: "h"}
	if got := Reveal("password", rec, &domain.Identity{Username: "bond"}); got != Redacted {
		t.Fatalf("lowercase bond should not reveal, got %q", got)
	}
}

func TestReveal_CreatedDateFormatted(t *testing.T) {
	rec := &domain.User{
		CreatedAt: time.Date(2026, 9, 1, 18, 5, 4, 0, time.UTC),
	}
	if got := Reveal("createdDate", rec, nil); got != "9/1/2026, 6:05:04 PM" {
		t.Fatalf("unexpected date rendering: %q", got)
	}
}

func TestReveal_UnknownField(t *testing.T) {
	if got := Reveal("passwordHash", &domain.User{}, nil); got != "" {
		t.Fatalf("unknown field should resolve empty, got %q", got)
	}
}
