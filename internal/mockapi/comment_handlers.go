package mockapi

import (
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inkwellmag/inkwell/client"
)

func (s *Server) listComments(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findPost(chi.URLParam(r, "slug"))
	if p == nil {
		writeNotFound(w)
		return
	}

	out := make([]client.Comment, 0)
	for _, c := range s.comments {
		if c.Post == p.ID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.authed(r)
	if !ok {
		writeUnauthorized(w)
		return
	}
	p := s.findPost(chi.URLParam(r, "slug"))
	if p == nil || p.Status != client.StatusPublished {
		writeNotFound(w)
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Content == "" {
		writeFieldErrors(w, map[string][]string{"content": {"This field may not be blank."}})
		return
	}

	s.nextCommentID++
	c := client.Comment{
		ID:        s.nextCommentID,
		Content:   req.Content,
		Author:    asAuthor(u),
		Post:      p.ID,
		CreatedAt: time.Now().UTC(),
	}
	s.comments = append(s.comments, c)
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
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

	id := atoi(chi.URLParam(r, "id"))
	for i, c := range s.comments {
		if c.Post != p.ID || c.ID != id {
			continue
		}
		if c.Author.Username != u.profile.Username {
			writeForbidden(w)
			return
		}
		s.comments = append(s.comments[:i], s.comments[i+1:]...)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeNotFound(w)
}
