package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/folio/internal/content"
	"github.com/ziadkadry99/folio/internal/render"
)

// contentResponse is the body of GET /api/content.
type contentResponse struct {
	BuildID  string            `json:"build_id"`
	Fallback bool              `json:"fallback"`
	Document *content.Document `json:"document"`
}

// projectView is one project with its derived layout attributes.
type projectView struct {
	Index       int      `json:"index"`
	Number      string   `json:"number"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Accent      string   `json:"accent"`
	Reversed    bool     `json:"reversed"`
}

// getContent handles GET /api/content
func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	res := s.builder.Last()
	if res == nil {
		respondError(w, http.StatusServiceUnavailable, "site has not been built yet")
		return
	}
	respondJSON(w, http.StatusOK, contentResponse{
		BuildID:  res.BuildID,
		Fallback: res.Fallback,
		Document: res.Document,
	})
}

// listProjects handles GET /api/projects
func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	projects, ok := s.projects(w)
	if !ok {
		return
	}
	views := make([]projectView, len(projects))
	for i, p := range projects {
		views[i] = s.projectView(i, p)
	}
	respondJSON(w, http.StatusOK, views)
}

// getProject handles GET /api/projects/{index}
func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	projects, ok := s.projects(w)
	if !ok {
		return
	}
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		respondError(w, http.StatusBadRequest, "project index must be a non-negative integer")
		return
	}
	if i >= len(projects) {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, s.projectView(i, projects[i]))
}

func (s *Server) projects(w http.ResponseWriter) ([]content.Project, bool) {
	res := s.builder.Last()
	if res == nil {
		respondError(w, http.StatusServiceUnavailable, "site has not been built yet")
		return nil, false
	}
	return res.Document.Projects, true
}

func (s *Server) projectView(i int, p content.Project) projectView {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return projectView{
		Index:       i,
		Number:      render.ProjectNumber(i),
		Title:       p.Title,
		Description: p.Description,
		Tags:        tags,
		Accent:      s.builder.Options().Accent(i),
		Reversed:    render.Reversed(i),
	}
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
