package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwellmag/inkwell/internal/textutil"
	"github.com/inkwellmag/inkwell/session"
)

// AuthService is the only component that mutates session state. It mediates
// login, registration, logout, token refresh, and profile updates, and
// notifies registered observers when the session is involuntarily lost
// (a 401 on any authenticated call).
type AuthService struct {
	client *Client
	store  session.Store

	mu        sync.Mutex
	observers []observer
	nextID    int
}

type observer struct {
	id int
	fn func()
}

func newAuthService(c *Client, store session.Store) *AuthService {
	s := &AuthService{client: c, store: store}
	c.onUnauthorized = s.invalidate
	return s
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAuthor  bool   `json:"is_author"`
}

type registerResponse struct {
	User   UserProfile `json:"user"`
	Tokens tokenPair   `json:"tokens"`
}

// RegisterParams are the inputs for creating an account. ConfirmPassword is
// checked locally before any network call is made.
type RegisterParams struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	IsAuthor        bool
}

// ProfileUpdate carries the profile fields that can be changed. Empty
// fields are omitted from the request and left untouched server-side.
type ProfileUpdate struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Login authenticates with the API: one call to obtain the token pair, then
// a profile fetch using the new token. Either both tokens and the profile
// end up persisted, or nothing does.
func (s *AuthService) Login(ctx context.Context, username, password string) (*UserProfile, error) {
	var tokens tokenPair
	err := s.client.post(ctx, "/auth/login/", loginRequest{
		Username: textutil.Normalize(username),
		Password: password,
	}, &tokens)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	// The profile fetch depends on the new token being attachable, so the
	// tokens must be persisted before it is issued.
	s.store.Write(session.Update{
		AccessToken:  session.String(tokens.Access),
		RefreshToken: session.String(tokens.Refresh),
	})

	var profile UserProfile
	if err := s.client.get(ctx, "/auth/profile/", &profile); err != nil {
		// Roll back so no partial session survives a failed login.
		s.store.Clear()
		return nil, fmt.Errorf("login: fetching profile: %w", err)
	}
	s.store.Write(session.Update{User: &profile})

	s.client.logger.Info("signed in", "username", profile.Username)
	return &profile, nil
}

// Register creates an account. The password confirmation is validated
// locally; a mismatch never reaches the network. On success the returned
// tokens and profile are persisted in a single store write.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*UserProfile, error) {
	if p.Password != p.ConfirmPassword {
		return nil, &ValidationError{Field: "password", Message: "passwords do not match"}
	}

	var resp registerResponse
	err := s.client.post(ctx, "/auth/register/", registerRequest{
		Username:  textutil.Normalize(p.Username),
		Email:     p.Email,
		Password:  p.Password,
		Password2: p.ConfirmPassword,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		IsAuthor:  p.IsAuthor,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	s.store.Write(session.Update{
		AccessToken:  session.String(resp.Tokens.Access),
		RefreshToken: session.String(resp.Tokens.Refresh),
		User:         &resp.User,
	})

	s.client.logger.Info("registered", "username", resp.User.Username)
	return &resp.User, nil
}

// Logout tells the server to blacklist the refresh token, then clears the
// local session unconditionally. It never fails from the caller's
// perspective: a dead server or an already-expired token still leaves the
// client signed out.
func (s *AuthService) Logout(ctx context.Context) {
	current := s.store.Read()
	if current.RefreshToken != "" {
		err := s.client.post(ctx, "/auth/logout/", map[string]string{
			"refresh": current.RefreshToken,
		}, nil)
		if err != nil {
			s.client.logger.Debug("server logout failed", "error", err)
		}
	}
	s.store.Clear()
	s.client.logger.Info("signed out")
}

// Refresh exchanges the stored refresh token for a new access token,
// rewriting only the access token.
func (s *AuthService) Refresh(ctx context.Context) error {
	current := s.store.Read()
	if current.RefreshToken == "" {
		return ErrNotAuthenticated
	}

	var resp struct {
		Access string `json:"access"`
	}
	err := s.client.post(ctx, "/auth/refresh/", map[string]string{
		"refresh": current.RefreshToken,
	}, &resp)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	s.store.Write(session.Update{AccessToken: session.String(resp.Access)})
	return nil
}

// Profile fetches the signed-in user's profile from the server.
func (s *AuthService) Profile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := s.client.get(ctx, "/auth/profile/", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile changes profile fields on the server and writes the updated
// profile back to the session store.
func (s *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	var profile UserProfile
	if err := s.client.put(ctx, "/auth/profile/", update, &profile); err != nil {
		return nil, err
	}
	s.store.Write(session.Update{User: &profile})
	return &profile, nil
}

// CurrentUser returns the cached profile from the session store without a
// network call. It is nil when anonymous.
func (s *AuthService) CurrentUser() *UserProfile {
	return s.store.Read().User
}

// IsAuthenticated reports whether a signed-in session exists locally.
func (s *AuthService) IsAuthenticated() bool {
	return s.store.Read().Authenticated()
}

// OnSessionInvalidated registers fn to be called when the session is
// involuntarily lost. Observers run synchronously in registration order;
// the returned function detaches the observer.
func (s *AuthService) OnSessionInvalidated(fn func()) (detach func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observer{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// invalidate handles a 401 surfaced by the gateway on an authenticated
// call: clear the session, then broadcast to observers. If the session is
// already gone (overlapping 401s), nothing fires.
func (s *AuthService) invalidate() {
	if s.store.Read().AccessToken == "" {
		return
	}
	s.store.Clear()
	s.client.logger.Info("session invalidated")

	s.mu.Lock()
	observers := make([]observer, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn()
	}
}
