package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chiply/cn-diagrams/internal/ident"
	"github.com/chiply/cn-diagrams/internal/logger"
	"github.com/chiply/cn-diagrams/internal/registry"
	"github.com/chiply/cn-diagrams/internal/result"
)

type parseRequest struct {
	Text string `json:"text"`
}

type editRequest struct {
	Text   string          `json:"text"`
	Params json.RawMessage `json:"params"`
}

// EditResponse is the answer to an edit: the new text and its parse.
type EditResponse struct {
	result.EditResult
	Diagram result.ParseResult `json:"diagram"`
}

type idsRequest struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

type idsResponse struct {
	ID string `json:"id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleOperations(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ops.Names())
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.parse(req.Text))
}

func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	var req editRequest
	if !s.decode(w, r, &req) {
		return
	}
	op := chi.URLParam(r, "op")
	res, err := s.ops.Apply(r.Context(), op, req.Text, req.Params)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownOperation) {
			writeError(w, http.StatusNotFound, result.NewError(result.TypeUnknownOperation, err.Error(),
				"GET /api/operations lists the available operations"))
			return
		}
		writeError(w, http.StatusBadRequest, result.NewError(result.TypeInvalidInput, err.Error(), ""))
		return
	}
	writeJSON(w, http.StatusOK, EditResponse{EditResult: res, Diagram: s.parse(res.Text)})
}

func (s *Server) handleIDs(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, idsResponse{ID: ident.Allocate(req.Text, req.Label)})
}

// decode reads the JSON request body into v, answering 400 on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		logger.FromContext(r.Context()).Debug("bad request body", "err", err)
		writeError(w, http.StatusBadRequest, result.NewError(result.TypeInvalidJSON, "invalid request body: "+err.Error(), ""))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, e result.Error) {
	writeJSON(w, status, e)
}
