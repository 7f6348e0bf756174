package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/weiguanght/adocsync/document"
	"github.com/weiguanght/adocsync/serializer"
)

type serializeRequest struct {
	Tree document.Node `json:"tree"`
	// AssignIdentities backfills ULIDs on blocks that arrive without one.
	AssignIdentities bool `json:"assignIdentities,omitempty"`
}

type serializeResponse struct {
	Text      string               `json:"text"`
	SourceMap serializer.SourceMap `json:"sourceMap"`
	Warnings  []serializer.Warning `json:"warnings,omitempty"`
}

// handleSerialize converts a document tree to markup plus its source map.
func (s *Server) handleSerialize(w http.ResponseWriter, r *http.Request) {
	var req serializeRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := document.Validate(req.Tree); err != nil {
		jsonError(w, errors.Wrap(err, "invalid tree").Error(), http.StatusUnprocessableEntity)
		return
	}

	if req.AssignIdentities {
		assigned := document.EnsureIdentities(&req.Tree)
		if assigned > 0 {
			s.log.Debug("assigned identities", zap.Int("count", assigned))
		}
	}

	result, err := s.ser.Serialize(req.Tree)
	if err != nil {
		jsonError(w, errors.Wrap(err, "serialize").Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, serializeResponse{
		Text:      result.Text,
		SourceMap: result.SourceMap,
		Warnings:  result.Warnings,
	})
}

type previewRequest struct {
	Text string `json:"text"`
}

type previewResponse struct {
	HTML string `json:"html"`
}

// handlePreview renders markup to the line-attributed HTML projection.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeBody(w, r, s.cfg.MaxBodyBytes, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	html, err := s.renderer.Render(req.Text)
	if err != nil {
		jsonError(w, errors.Wrap(err, "render").Error(), http.StatusUnprocessableEntity)
		return
	}

	writeJSON(w, previewResponse{HTML: html})
}

func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Wrap(err, "invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
