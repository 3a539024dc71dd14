// Package session holds the client-side authentication session: the token
// pair plus the cached profile of the signed-in user, and the Store
// abstraction that persists them.
package session

import "time"

// UserProfile is the cached profile of the signed-in principal. Field names
// follow the wire format of the editorial API.
type UserProfile struct {
	ID         int       `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	IsAuthor   bool      `json:"is_author"`
	CreatedAt  time.Time `json:"created_at"`
	PostsCount int       `json:"posts_count,omitempty"`
}

// Session is the authenticated state for the current process. The zero value
// means anonymous.
type Session struct {
	AccessToken  string
	RefreshToken string
	User         *UserProfile
}

// Authenticated reports whether the session carries a signed-in user.
func (s Session) Authenticated() bool {
	return s.AccessToken != "" && s.User != nil
}

// Update is a partial write against a Store. Nil fields are left untouched,
// so a token refresh does not rewrite the stored profile. To clear a single
// token, point it at an empty string.
type Update struct {
	AccessToken  *string
	RefreshToken *string
	User         *UserProfile
}

// Store abstracts session persistence so that sessions can live in a file
// (default) or in memory for tests. Implementations are synchronous and
// never return errors to readers: missing or corrupt persisted data reads
// back as an all-absent session.
type Store interface {
	// Read returns the current session. A stored profile that no longer
	// parses, or a profile without an access token, reads as anonymous.
	Read() Session
	// Write persists the non-nil fields of the update.
	Write(u Update)
	// Clear removes the whole session. A Read that follows observes either
	// the full prior session or nothing, never a partial clear.
	Clear()
}

// String pointer helper for Update literals.
func String(s string) *string { return &s }
