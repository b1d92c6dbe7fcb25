package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Neumenon/zinc/internal/logging"
	"github.com/Neumenon/zinc/zinc"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Line  int    `json:"line,omitempty"`
	Token string `json:"token,omitempty"`
}

// statusFor maps a decode error to an HTTP status and a stable code.
func statusFor(err error) (int, string) {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig), errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge, "body_too_large"
	case errors.Is(err, zinc.ErrNoFallback):
		return http.StatusUnprocessableEntity, "no_fallback"
	case errors.Is(err, zinc.ErrRejected):
		return http.StatusUnprocessableEntity, "rejected"
	case errors.Is(err, zinc.ErrMalformed):
		return http.StatusUnprocessableEntity, "malformed"
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, "bad_body"
	default:
		return http.StatusUnprocessableEntity, "fallback_failed"
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)

	logging.FromContext(r.Context(), s.logger).Warn("request error",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("code", code),
		zap.Error(err),
	)

	resp := ErrorResponse{Error: err.Error(), Code: code}
	var ze *zinc.Error
	if errors.As(err, &ze) {
		resp.Line, resp.Token = ze.Line, ze.Token
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
