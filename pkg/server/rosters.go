package server

import (
	"mime"
	"net/http"

	"github.com/matzehuels/seatchart/pkg/buildinfo"
	"github.com/matzehuels/seatchart/pkg/errors"
	"github.com/matzehuels/seatchart/pkg/pipeline"
	"github.com/matzehuels/seatchart/pkg/roster"
	"github.com/matzehuels/seatchart/pkg/seating"
)

type rosterResponse struct {
	Members []roster.Member `json:"members"`
	Parts   []string        `json:"parts"`
	Counts  map[string]int  `json:"counts"`
}

func newRosterResponse(members []roster.Member) rosterResponse {
	return rosterResponse{
		Members: members,
		Parts:   roster.UniqueParts(members),
		Counts:  roster.CountByPart(members),
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

// handleParseRoster reads a CSV body, or a JSON array of members when the
// content type is application/json.
func (s *Server) handleParseRoster(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)

	var (
		members []roster.Member
		err     error
	)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		members, err = pipeline.ParseRosterJSON(body)
	} else {
		members, err = pipeline.ParseRoster(body)
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, newRosterResponse(members))
}

type randomRequest struct {
	Count        int      `json:"count"`
	Parts        []string `json:"parts"`
	Distribution []int    `json:"distribution"`
	MinHeight    float64  `json:"min_height"`
	MaxHeight    float64  `json:"max_height"`
	Seed         uint64   `json:"seed"`
}

func (s *Server) handleRandomRoster(w http.ResponseWriter, r *http.Request) {
	var req randomRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if len(req.Parts) == 0 {
		req.Parts = roster.DefaultParts
	}
	if err := errors.ValidatePartOrder(req.Parts); err != nil {
		s.writeError(w, r, err)
		return
	}

	count := req.Count
	if len(req.Distribution) > 0 {
		count = 0
		for _, n := range req.Distribution {
			if n < 0 {
				s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "distribution entries must not be negative"))
				return
			}
			count += n
		}
	} else if count == 0 {
		count = roster.DefaultRandomCount
	}
	if err := roster.ValidateRandomCount(count); err != nil {
		s.writeError(w, r, err)
		return
	}

	members := roster.Generate(roster.GenerateOptions{
		Count:        count,
		Parts:        req.Parts,
		Distribution: req.Distribution,
		MinHeight:    req.MinHeight,
		MaxHeight:    req.MaxHeight,
		Seed:         req.Seed,
	})
	s.writeJSON(w, http.StatusOK, newRosterResponse(members))
}

type planRequest struct {
	Members []roster.Member  `json:"members"`
	Options pipeline.Options `json:"options"`
}

type dimensionsResponse struct {
	Rows         int    `json:"rows"`
	SeatsPerRow  int    `json:"seats_per_row"`
	MinimumWidth int    `json:"minimum_width"`
	Capacity     int    `json:"capacity"`
	Layout       string `json:"layout"`
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.withDefaults(req.Options)
	if err := opts.ValidateAndSetDefaults(req.Members); err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, seats := pipeline.ResolveDimensions(req.Members, opts)
	capacity := rows * seats
	if len(opts.RowSizes) > 0 {
		capacity = 0
		for _, n := range opts.RowSizes {
			capacity += n
		}
	}
	s.writeJSON(w, http.StatusOK, dimensionsResponse{
		Rows:         rows,
		SeatsPerRow:  seats,
		MinimumWidth: seating.MinimumWidth(req.Members, opts.PartOrder, rows),
		Capacity:     capacity,
		Layout:       opts.Layout,
	})
}
