package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/seatchart/pkg/chart"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
)

// DefaultRenderFormat is served when the render request names no format.
const DefaultRenderFormat = pipeline.FormatSVG

func (s *Server) handleListCharts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	summaries, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"charts": summaries})
}

// handleCreateChart plans a roster and stores the result. A strict plan that
// cannot seat everyone is rejected with the unplaced counts.
func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.withDefaults(req.Options)
	opts.Logger = s.logger

	doc, hit, err := s.runner.PlanWithCacheInfo(r.Context(), req.Members, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	s.saveNew(w, r, doc)
}

type importRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleImportChart(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, err := chart.DecodeToken(req.Token)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.saveNew(w, r, doc)
}

// saveNew stores doc under a fresh ID and replies 201.
func (s *Server) saveNew(w http.ResponseWriter, r *http.Request, doc *chart.Document) {
	doc.ID = ""
	doc.CreatedAt = time.Time{}
	id, err := s.store.Save(r.Context(), doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/charts/"+id)
	s.writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) loadChart(w http.ResponseWriter, r *http.Request) (*chart.Document, bool) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return nil, false
	}
	return doc, true
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

// handlePutChart replaces a stored chart with an edited copy. The ID and
// creation time of the stored chart are kept.
func (s *Server) handlePutChart(w http.ResponseWriter, r *http.Request) {
	existing, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	var doc chart.Document
	if err := s.decodeJSON(w, r, &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := doc.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.ID = existing.ID
	doc.CreatedAt = existing.CreatedAt
	if _, err := s.store.Save(r.Context(), &doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, &doc)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type swapRequest struct {
	A chart.Ref `json:"a"`
	B chart.Ref `json:"b"`
}

// handleSwap exchanges two seats, the drag-and-drop edit of the web editor.
func (s *Server) handleSwap(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	var req swapRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := doc.Swap(req.A, req.B); err != nil {
		s.writeError(w, r, err)
		return
	}
	if _, err := s.store.Save(r.Context(), doc); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = DefaultRenderFormat
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}
	doc, ok := s.loadChart(w, r)
	if !ok {
		return
	}

	artifacts, hit, err := s.runner.RenderWithCacheInfo(r.Context(), doc, []string{format})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	if hit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	w.Write(artifacts[format])
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.loadChart(w, r)
	if !ok {
		return
	}
	token, err := chart.EncodeToken(doc)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, importRequest{Token: token})
}
