package handle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medscan/internal/ocr"
	"medscan/internal/pipeline"
)

type stubOCR struct{ text string }

func (s stubOCR) Name() string { return "stub-ocr" }
func (s stubOCR) Recognize(ctx context.Context, data []byte, mime string) (ocr.Result, error) {
	return ocr.Result{Text: s.text, Pages: 1}, nil
}

type stubExtract struct{ out string }

func (s stubExtract) Name() string { return "stub-llm" }
func (s stubExtract) Extract(ctx context.Context, text string) (string, error) {
	return s.out, nil
}

func newTestHandle() *Handle {
	proc := pipeline.New(
		stubOCR{text: "Patient: Jane Doe"},
		stubExtract{out: "Patient Name: Jane Doe\nAge: 45\nGender: Female\nMedicine: Amoxicillin 500mg\nDosage: twice daily"},
		nil,
	)
	return New(proc)
}

func postProcess(t *testing.T, h *Handle, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader(b))
	w := httptest.NewRecorder()
	h.Process(w, req)
	return w
}

func TestProcessHandler(t *testing.T) {
	h := newTestHandle()
	doc := base64.StdEncoding.EncodeToString([]byte{0xFF, 0xD8, 0x01})

	w := postProcess(t, h, ProcessRequest{DocumentB64: doc})
	require.Equal(t, http.StatusOK, w.Code)

	var resp ProcessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Jane Doe", resp.Record.PatientName)
	assert.Contains(t, resp.RawText, "Amoxicillin")
}

func TestProcessHandlerMethodNotAllowed(t *testing.T) {
	h := newTestHandle()
	req := httptest.NewRequest(http.MethodGet, "/v1/process", nil)
	w := httptest.NewRecorder()
	h.Process(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProcessHandlerBadBase64(t *testing.T) {
	h := newTestHandle()
	w := postProcess(t, h, ProcessRequest{DocumentB64: "!!not-base64!!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessHandlerUnsupportedType(t *testing.T) {
	h := newTestHandle()
	doc := base64.StdEncoding.EncodeToString([]byte("plain text, no magic"))
	w := postProcess(t, h, ProcessRequest{DocumentB64: doc})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProcessHandlerBadJSON(t *testing.T) {
	h := newTestHandle()
	req := httptest.NewRequest(http.MethodPost, "/v1/process", bytes.NewReader([]byte("{")))
	w := httptest.NewRecorder()
	h.Process(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
