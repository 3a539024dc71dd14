package mockapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellmag/inkwell/client"
)

type postRequest struct {
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	Excerpt    string            `json:"excerpt"`
	CategoryID int               `json:"category_id"`
	Image      string            `json:"image"`
	Status     client.PostStatus `json:"status"`
}

// visiblePosts returns the posts the requesting user may see: published
// posts for everyone, plus the user's own drafts.
func (s *Server) visiblePosts(u *user) []*post {
	var out []*post
	for _, p := range s.posts {
		if p.Status == client.StatusPublished {
			out = append(out, p)
			continue
		}
		if u != nil && p.authorName == u.profile.Username {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Server) findPost(slug string) *post {
	for _, p := range s.posts {
		if p.Slug == slug {
			return p
		}
	}
	return nil
}

func (s *Server) findCategory(id int) *client.Category {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return &s.categories[i]
		}
	}
	return nil
}

func matchesSearch(p *post, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Content), q) ||
		strings.Contains(strings.ToLower(p.Excerpt), q)
}

func toPosts(in []*post) []client.Post {
	out := make([]client.Post, 0, len(in))
	for _, p := range in {
		out = append(out, p.Post)
	}
	return out
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, _ := s.authed(r)
	posts := s.visiblePosts(u)

	if query := r.URL.Query().Get("search"); query != "" {
		var filtered []*post
		for _, p := range posts {
			if matchesSearch(p, query) {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}

	s.writePage(w, r, toPosts(posts))
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, _ := s.authed(r)
	p := s.findPost(chi.URLParam(r, "slug"))
	if p == nil {
		writeNotFound(w)
		return
	}
	if p.Status != client.StatusPublished && (u == nil || p.authorName != u.profile.Username) {
		writeNotFound(w)
		return
	}
	writeJSON(w, http.StatusOK, p.Post)
}

func (s *Server) postsByCategory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slug := chi.URLParam(r, "slug")
	var filtered []*post
	for _, p := range s.visiblePosts(nil) {
		if p.Category != nil && p.Category.Slug == slug {
			filtered = append(filtered, p)
		}
	}
	s.writePage(w, r, toPosts(filtered))
}

func (s *Server) postsByAuthor(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := chi.URLParam(r, "username")
	var filtered []*post
	for _, p := range s.visiblePosts(nil) {
		if p.authorName == username {
			filtered = append(filtered, p)
		}
	}
	s.writePage(w, r, toPosts(filtered))
}

func (s *Server) myPosts(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var mine []*post
	for _, p := range s.posts {
		if p.authorName == u.profile.Username {
			mine = append(mine, p)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	s.writePage(w, r, toPosts(mine))
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	if !u.profile.IsAuthor {
		writeForbidden(w)
		return
	}

	var req postRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeFieldErrors(w, map[string][]string{"title": {"This field may not be blank."}})
		return
	}

	slug := slugify(req.Title)
	if s.findPost(slug) != nil {
		writeFieldErrors(w, map[string][]string{"title": {"post with this title already exists."}})
		return
	}

	status := req.Status
	if status == "" {
		status = client.StatusDraft
	}
	excerpt := req.Excerpt
	if excerpt == "" {
		excerpt = autoExcerpt(req.Content)
	}

	s.nextPostID++
	now := time.Now().UTC()
	p := &post{
		Post: client.Post{
			ID:        s.nextPostID,
			Title:     req.Title,
			Slug:      slug,
			Content:   req.Content,
			Excerpt:   excerpt,
			Status:    status,
			Category:  s.findCategory(req.CategoryID),
			Author:    asAuthor(u),
			Image:     req.Image,
			CreatedAt: now,
			UpdatedAt: now,
		},
		authorName: u.profile.Username,
	}
	s.posts = append(s.posts, p)
	writeJSON(w, http.StatusCreated, p.Post)
}

func (s *Server) updatePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	p := s.findPost(chi.URLParam(r, "slug"))
	if p == nil {
		writeNotFound(w)
		return
	}
	if p.authorName != u.profile.Username {
		writeForbidden(w)
		return
	}

	var req postRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	if req.Excerpt != "" {
		p.Excerpt = req.Excerpt
	}
	if req.CategoryID != 0 {
		p.Category = s.findCategory(req.CategoryID)
	}
	if req.Image != "" {
		p.Image = req.Image
	}
	if req.Status != "" {
		p.Status = req.Status
	}
	p.UpdatedAt = time.Now().UTC()
	writeJSON(w, http.StatusOK, p.Post)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	slug := chi.URLParam(r, "slug")
	for i, p := range s.posts {
		if p.Slug != slug {
			continue
		}
		if p.authorName != u.profile.Username {
			writeForbidden(w)
			return
		}
		s.posts = append(s.posts[:i], s.posts[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeNotFound(w)
}

// writePage emits the pagination envelope, or the DRF invalid-page error.
func (s *Server) writePage(w http.ResponseWriter, r *http.Request, items []client.Post) {
	page, ok := paginate(r, items)
	if !ok {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	if page.Results == nil {
		page.Results = []client.Post{}
	}
	writeJSON(w, http.StatusOK, page)
}

func asAuthor(u *user) client.Author {
	return client.Author{
		ID:       u.profile.ID,
		Username: u.profile.Username,
		Email:    u.profile.Email,
		IsAuthor: u.profile.IsAuthor,
	}
}

// slugify mirrors the backend's slug generation closely enough for tests:
// lowercase, alphanumerics kept, runs of anything else collapsed to single
// hyphens.
func slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, c := range strings.ToLower(title) {
		switch {
		case c >= 'a' && c <= 'z' || c >= '0' && c <= '9':
			b.WriteRune(c)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func autoExcerpt(content string) string {
	if len(content) > 200 {
		return content[:200] + "..."
	}
	return content
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
