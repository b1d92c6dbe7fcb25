package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Neumenon/zinc/internal/input"
	"github.com/Neumenon/zinc/zinc"
	"github.com/google/uuid"
)

var (
	errBodyTooLarge = errors.New("request body too large")
	errBadBody      = errors.New("unreadable request body")
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleGrid decodes a grid. The strategy used and a fresh parse id are
// returned as headers.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id := uuid.NewString()
	w.Header().Set(HeaderParseID, id)

	g, path, err := s.parser.ParseGridPath(text)
	w.Header().Set(HeaderPath, path.String())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// ScalarResponse is the /v1/scalar reply.
type ScalarResponse struct {
	Kind  string `json:"kind"`
	Value any    `json:"value"`
	Zinc  string `json:"zinc"`
}

func (s *Server) handleScalar(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	v, err := s.parser.ParseScalar(strings.TrimSpace(text))
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ScalarResponse{
		Kind:  v.Kind().String(),
		Value: zinc.ScalarJSON(v),
		Zinc:  v.String(),
	})
}

// CheckResponse is the /v1/check reply.
type CheckResponse struct {
	Eligible bool   `json:"eligible"`
	Fast     bool   `json:"fast"`
	Kind     string `json:"kind,omitempty"`
	Reason   string `json:"reason,omitempty"`
	Line     int    `json:"line,omitempty"`
	Token    string `json:"token,omitempty"`
	Rows     int    `json:"rows,omitempty"`
}

// handleCheck reports whether the fast path would handle the grid, and
// why not when it would not. A declined grid is still a 200.
func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := CheckResponse{Eligible: zinc.IsFastPathEligible(text)}
	g, err := s.parser.ParseFast(text)
	if err == nil {
		resp.Fast = true
		resp.Rows = len(g.Rows)
	} else {
		var ze *zinc.Error
		if errors.As(err, &ze) {
			resp.Kind = ze.Kind.String()
			resp.Reason = ze.Msg
			resp.Line = ze.Line
			resp.Token = ze.Token
		} else {
			resp.Reason = err.Error()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// readBody reads the request body up to MaxBodyBytes, decompressing gzip
// or zstd content encodings.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	limit := s.cfg.MaxBodyBytes
	body := http.MaxBytesReader(w, r.Body, limit)

	var ext string
	switch strings.ToLower(r.Header.Get("Content-Encoding")) {
	case "gzip":
		ext = ".gz"
	case "zstd":
		ext = ".zst"
	}
	rc, err := input.Decompress(body, ext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errBadBody, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", errBadBody, err)
	}
	if int64(len(data)) > limit {
		return "", errBodyTooLarge
	}
	return string(data), nil
}
