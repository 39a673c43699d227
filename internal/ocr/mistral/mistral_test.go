package mistral

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(url string) *Engine {
	e := New("test-key", "mistral-ocr-latest")
	e.BaseURL = url
	return e
}

func TestRecognizeImage(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/ocr", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"pages": []map[string]any{
				{"index": 0, "markdown": "Patient: Jane Doe"},
				{"index": 1, "markdown": "Rx: Amoxicillin 500mg"},
			},
		})
	}))
	defer srv.Close()

	res, err := newTestEngine(srv.URL).Recognize(context.Background(), []byte{0xFF, 0xD8, 0x01}, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "mistral-ocr-latest", gotBody["model"])
	doc := gotBody["document"].(map[string]any)
	assert.Equal(t, "image_url", doc["type"])
	assert.True(t, strings.HasPrefix(doc["image_url"].(string), "data:image/jpeg;base64,"))

	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "Patient: Jane Doe\n\nRx: Amoxicillin 500mg", res.Text)
}

func TestRecognizePDFUsesDocumentURL(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{"pages": []map[string]any{}})
	}))
	defer srv.Close()

	_, err := newTestEngine(srv.URL).Recognize(context.Background(), []byte("%PDF-1.7"), "application/pdf")
	require.NoError(t, err)

	doc := gotBody["document"].(map[string]any)
	assert.Equal(t, "document_url", doc["type"])
	assert.True(t, strings.HasPrefix(doc["document_url"].(string), "data:application/pdf;base64,"))
}

func TestRecognizeUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestEngine(srv.URL).Recognize(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mistral ocr 401")
}

func TestRecognizeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestEngine(srv.URL).Recognize(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad JSON")
}

func TestRecognizeNoKey(t *testing.T) {
	e := New("", "mistral-ocr-latest")
	_, err := e.Recognize(context.Background(), []byte{0xFF, 0xD8}, "image/jpeg")
	require.Error(t, err)
}
