package mockapi

import (
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/inkwellmag/inkwell/session"
)

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAuthor  bool   `json:"is_author"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	fieldErrs := map[string][]string{}
	if req.Username == "" {
		fieldErrs["username"] = append(fieldErrs["username"], "This field may not be blank.")
	}
	if req.Password == "" {
		fieldErrs["password"] = append(fieldErrs["password"], "This field may not be blank.")
	}
	if req.Password != req.Password2 {
		fieldErrs["password"] = append(fieldErrs["password"], "Password fields didn't match.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[req.Username]; exists {
		fieldErrs["username"] = append(fieldErrs["username"], "A user with that username already exists.")
	}
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	profile := s.addUserLocked(req.Username, req.Email, req.Password, req.IsAuthor)
	u := s.users[req.Username]
	u.profile.FirstName = req.FirstName
	u.profile.LastName = req.LastName
	profile = u.profile

	access, refresh := s.issueTokens(req.Username)
	writeJSON(w, http.StatusCreated, map[string]any{
		"user": profile,
		"tokens": map[string]string{
			"access":  access,
			"refresh": refresh,
		},
		"message": "User registered successfully",
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[req.Username]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}

	access, refresh := s.issueTokens(req.Username)
	writeJSON(w, http.StatusOK, map[string]string{
		"access":  access,
		"refresh": refresh,
	})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.authed(r); !ok {
		writeUnauthorized(w)
		return
	}

	var req struct {
		Refresh string `json:"refresh"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Refresh != "" {
		if _, known := s.refreshTokens[req.Refresh]; !known || s.blacklisted[req.Refresh] {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Token is invalid or expired"})
			return
		}
		s.blacklisted[req.Refresh] = true
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Refresh string `json:"refresh"`
	}
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.refreshTokens[req.Refresh]
	if !ok || s.blacklisted[req.Refresh] {
		writeDetail(w, http.StatusUnauthorized, "Token is invalid or expired")
		return
	}

	access := s.newAccessToken(username)
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, s.profileWithCounts(u))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req struct {
		Email     *string `json:"email"`
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Email != nil {
		u.profile.Email = *req.Email
	}
	if req.FirstName != nil {
		u.profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.profile.LastName = *req.LastName
	}
	writeJSON(w, http.StatusOK, s.profileWithCounts(u))
}

// profileWithCounts fills in posts_count the way the backend's profile
// serializer does (published posts only).
func (s *Server) profileWithCounts(u *user) session.UserProfile {
	p := u.profile
	p.PostsCount = 0
	for _, post := range s.posts {
		if post.authorName == u.profile.Username && post.Status == "published" {
			p.PostsCount++
		}
	}
	return p
}
