package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/seatchart/pkg/errors"
)

// errorResponse is the body of every error reply.
type errorResponse struct {
	Error    string         `json:"error"`
	Code     errors.Code    `json:"code,omitempty"`
	Unplaced map[string]int `json:"unplaced,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encode response", "err", err)
	}
}

// writeError replies with the status for err's code. Internal errors are
// logged and their details withheld.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
		resp = errorResponse{Error: "internal error", Code: errors.ErrCodeInternal}
	}
	var capErr *errors.CapacityError
	if stderrors.As(err, &capErr) {
		resp.Unplaced = capErr.Unplaced
	}
	s.writeJSON(w, status, resp)
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidLayout,
		errors.ErrCodeInvalidDimensions,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidRoster,
		errors.ErrCodeInvalidChart:
		return http.StatusBadRequest
	case errors.ErrCodeCapacityExceeded:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound, errors.ErrCodeChartNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a JSON request body into v, rejecting unknown fields.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			return err
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}
