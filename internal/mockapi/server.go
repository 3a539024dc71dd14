// Package mockapi is an in-process double of the editorial magazine API.
// It mirrors the real backend's wire behavior (bearer auth, DRF-style
// error bodies, page-numbered pagination envelopes, draft visibility) so
// the SDK can be exercised end to end in tests and the CLI can run an
// offline demo.
package mockapi

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwellmag/inkwell/client"
	"github.com/inkwellmag/inkwell/session"
)

// pageSize matches the backend's default page size.
const pageSize = 10

//go:embed openapi.yaml
var openapiSpec []byte

type user struct {
	profile      session.UserProfile
	passwordHash []byte
}

type post struct {
	client.Post
	authorName string
}

// Server holds the mock API state. All state is in memory and guarded by a
// single mutex; the double is meant for tests and demos, not load.
type Server struct {
	mu sync.Mutex

	users      map[string]*user // by username
	categories []client.Category
	posts      []*post
	comments   []client.Comment

	accessTokens  map[string]string // access token -> username
	refreshTokens map[string]string // refresh token -> username
	blacklisted   map[string]bool   // revoked refresh tokens

	nextUserID    int
	nextPostID    int
	nextCommentID int
	nextCatID     int
}

// New creates an empty mock API server.
func New() *Server {
	return &Server{
		users:         make(map[string]*user),
		accessTokens:  make(map[string]string),
		refreshTokens: make(map[string]string),
		blacklisted:   make(map[string]bool),
	}
}

// Router returns a chi.Router with the full API mounted, plus the embedded
// OpenAPI document and browsable docs.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/v1/openapi.yaml",
		Path:    "api/v1/redoc",
	}, nil))

	r.Post("/auth/register/", s.register)
	r.Post("/auth/login/", s.login)
	r.Post("/auth/logout/", s.logout)
	r.Post("/auth/refresh/", s.refresh)
	r.Get("/auth/profile/", s.getProfile)
	r.Put("/auth/profile/", s.updateProfile)

	r.Get("/categories/", s.listCategories)
	r.Get("/categories/{slug}/", s.getCategory)

	r.Get("/posts/", s.listPosts)
	r.Post("/posts/", s.createPost)
	r.Get("/posts/my-posts/", s.myPosts)
	r.Get("/posts/category/{slug}/", s.postsByCategory)
	r.Get("/posts/author/{username}/", s.postsByAuthor)
	r.Get("/posts/{slug}/", s.getPost)
	r.Put("/posts/{slug}/", s.updatePost)
	r.Delete("/posts/{slug}/", s.deletePost)

	r.Get("/posts/{slug}/comments/", s.listComments)
	r.Post("/posts/{slug}/comments/", s.createComment)
	r.Delete("/posts/{slug}/comments/{id}/", s.deleteComment)

	return r
}

// Handler returns the router mounted under /api/v1, ready to serve.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Mount("/api/v1", s.Router())
	return r
}

// AddUser registers an account directly, bypassing the HTTP surface. Handy
// for test setup.
func (s *Server) AddUser(username, email, password string, isAuthor bool) session.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addUserLocked(username, email, password, isAuthor)
}

func (s *Server) addUserLocked(username, email, password string, isAuthor bool) session.UserProfile {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	s.nextUserID++
	u := &user{
		profile: session.UserProfile{
			ID:        s.nextUserID,
			Username:  username,
			Email:     email,
			IsAuthor:  isAuthor,
			CreatedAt: time.Now().UTC(),
		},
		passwordHash: hash,
	}
	s.users[username] = u
	return u.profile
}

// --- auth plumbing ---

// authed resolves the bearer token on the request. ok is false when the
// header is missing or the token is unknown.
func (s *Server) authed(r *http.Request) (*user, bool) {
	header := r.Header.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return nil, false
	}
	username, ok := s.accessTokens[token]
	if !ok {
		return nil, false
	}
	u, ok := s.users[username]
	return u, ok
}

func (s *Server) issueTokens(username string) (access, refresh string) {
	access = uuid.NewString()
	refresh = uuid.NewString()
	s.accessTokens[access] = username
	s.refreshTokens[refresh] = username
	return access, refresh
}

func (s *Server) newAccessToken(username string) string {
	access := uuid.NewString()
	s.accessTokens[access] = username
	return access
}

// RevokeAccessToken invalidates an access token, simulating expiry so tests
// can provoke 401s on previously authenticated sessions.
func (s *Server) RevokeAccessToken(token string) {
	s.mu.Lock()
	delete(s.accessTokens, token)
	s.mu.Unlock()
}

// --- response helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail emits the DRF-style {"detail": ...} error body.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeFieldErrors emits the DRF-style field-error map, e.g.
// {"username": ["A user with that username already exists."]}.
func writeFieldErrors(w http.ResponseWriter, fields map[string][]string) {
	writeJSON(w, http.StatusBadRequest, fields)
}

func writeUnauthorized(w http.ResponseWriter) {
	writeDetail(w, http.StatusUnauthorized, "Given token not valid for any token type")
}

func writeNotFound(w http.ResponseWriter) {
	writeDetail(w, http.StatusNotFound, "Not found.")
}

func writeForbidden(w http.ResponseWriter) {
	writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeDetail(w, http.StatusBadRequest, "Malformed request body")
		return false
	}
	return true
}

// paginate slices items into the standard envelope for the requested page.
func paginate[T any](r *http.Request, items []T) (client.Page[T], bool) {
	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return client.Page[T]{}, false
		}
		page = n
	}

	start := (page - 1) * pageSize
	if start > 0 && start >= len(items) {
		return client.Page[T]{}, false
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}

	out := client.Page[T]{
		Count:   len(items),
		Results: items[start:end],
	}
	if end < len(items) {
		next := pageURL(r, page+1)
		out.Next = &next
	}
	if page > 1 {
		prev := pageURL(r, page-1)
		out.Previous = &prev
	}
	return out, true
}

func pageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	return r.URL.Path + "?" + q.Encode()
}
