package handle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"medscan/internal/extract"
	"medscan/internal/pipeline"
)

type ProcessRequest struct {
	DocumentB64 string `json:"document_b64"`
	MimeType    string `json:"mime_type,omitempty"`
}

type ProcessResponse struct {
	Record  extract.Record `json:"record"`
	RawText string         `json:"raw_text"`
}

func (h *Handle) Process(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := base64.StdEncoding.DecodeString(strings.TrimSpace(req.DocumentB64))
	if err != nil || len(doc) == 0 {
		http.Error(w, "bad document_b64", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 180*time.Second)
	defer cancel()

	rec, raw, err := h.proc.ProcessBytes(ctx, doc, req.MimeType)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnsupportedFileType) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "process error: "+err.Error(), http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, ProcessResponse{Record: rec, RawText: raw})
}
