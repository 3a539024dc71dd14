package session

import (
	"testing"
	"time"
)

// storeTests runs the common suite against any Store implementation.
func storeTests(t *testing.T, store Store) {
	t.Helper()

	profile := &UserProfile{
		ID:        1,
		Username:  "alice",
		Email:     "alice@example.com",
		IsAuthor:  true,
		CreatedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}

	t.Run("EmptyRead", func(t *testing.T) {
		store.Clear()
		got := store.Read()
		if got.AccessToken != "" || got.RefreshToken != "" || got.User != nil {
			t.Fatalf("expected all-absent session, got %+v", got)
		}
		if got.Authenticated() {
			t.Fatal("empty session must not report authenticated")
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		store.Clear()
		store.Write(Update{
			AccessToken:  String("acc-1"),
			RefreshToken: String("ref-1"),
			User:         profile,
		})
		got := store.Read()
		if got.AccessToken != "acc-1" {
			t.Fatalf("got access token %q, want %q", got.AccessToken, "acc-1")
		}
		if got.RefreshToken != "ref-1" {
			t.Fatalf("got refresh token %q, want %q", got.RefreshToken, "ref-1")
		}
		if got.User == nil || got.User.Username != "alice" {
			t.Fatalf("got user %+v, want alice", got.User)
		}
		if !got.User.IsAuthor {
			t.Fatal("expected is_author to survive the round trip")
		}
		if !got.User.CreatedAt.Equal(profile.CreatedAt) {
			t.Fatalf("got created_at %v, want %v", got.User.CreatedAt, profile.CreatedAt)
		}
		if !got.Authenticated() {
			t.Fatal("expected authenticated session")
		}
	})

	t.Run("PartialTokenWrite", func(t *testing.T) {
		store.Clear()
		store.Write(Update{
			AccessToken:  String("acc-1"),
			RefreshToken: String("ref-1"),
			User:         profile,
		})
		// A token refresh rewrites only the access token.
		store.Write(Update{AccessToken: String("acc-2")})
		got := store.Read()
		if got.AccessToken != "acc-2" {
			t.Fatalf("got access token %q, want %q", got.AccessToken, "acc-2")
		}
		if got.RefreshToken != "ref-1" {
			t.Fatal("refresh token must survive an access-token-only write")
		}
		if got.User == nil || got.User.Username != "alice" {
			t.Fatal("profile must survive an access-token-only write")
		}
	})

	t.Run("ProfileOnlyWrite", func(t *testing.T) {
		store.Clear()
		store.Write(Update{
			AccessToken:  String("acc-1"),
			RefreshToken: String("ref-1"),
			User:         profile,
		})
		updated := *profile
		updated.FirstName = "Alice"
		store.Write(Update{User: &updated})
		got := store.Read()
		if got.User == nil || got.User.FirstName != "Alice" {
			t.Fatalf("got user %+v, want updated first name", got.User)
		}
		if got.AccessToken != "acc-1" || got.RefreshToken != "ref-1" {
			t.Fatal("tokens must survive a profile-only write")
		}
	})

	t.Run("ClearIdempotent", func(t *testing.T) {
		store.Write(Update{AccessToken: String("acc"), User: profile})
		store.Clear()
		store.Clear()
		got := store.Read()
		if got.AccessToken != "" || got.RefreshToken != "" || got.User != nil {
			t.Fatalf("expected all-absent session after clear, got %+v", got)
		}
	})

	t.Run("NoProfileWithoutToken", func(t *testing.T) {
		store.Clear()
		// A profile written without an access token must not surface.
		store.Write(Update{User: profile})
		got := store.Read()
		if got.User != nil {
			t.Fatal("profile without access token must read as absent")
		}
	})
}

func TestMemoryStore(t *testing.T) {
	storeTests(t, NewMemoryStore())

	t.Run("ReadReturnsCopy", func(t *testing.T) {
		s := NewMemoryStore()
		s.Write(Update{
			AccessToken: String("acc"),
			User:        &UserProfile{Username: "bob"},
		})
		got := s.Read()
		got.User.Username = "mallory"
		if s.Read().User.Username != "bob" {
			t.Fatal("mutating a read session must not affect the store")
		}
	})
}
