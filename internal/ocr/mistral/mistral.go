package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medscan/internal/ocr"
	"medscan/internal/util"
)

const DefaultBaseURL = "https://api.mistral.ai/v1"

type Engine struct {
	APIKey  string
	Model   string
	BaseURL string
	httpc   *http.Client
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey:  key,
		Model:   model,
		BaseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "mistral" }

// Recognize sends the document to /ocr as a base64 data URL in a single POST.
// PDFs go under document_url, images under image_url.
func (e *Engine) Recognize(ctx context.Context, data []byte, mime string) (ocr.Result, error) {
	if e.APIKey == "" {
		return ocr.Result{}, fmt.Errorf("MISTRAL_API_KEY is empty")
	}

	dataURL := util.MakeDataURL(mime, data)
	var doc map[string]any
	if mime == "application/pdf" {
		doc = map[string]any{"type": "document_url", "document_url": dataURL}
	} else {
		doc = map[string]any{"type": "image_url", "image_url": dataURL}
	}

	body := map[string]any{
		"model":                e.Model,
		"document":             doc,
		"include_image_base64": false,
	}
	payload, _ := json.Marshal(body)

	url := strings.TrimRight(e.BaseURL, "/") + "/ocr"
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return ocr.Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return ocr.Result{}, fmt.Errorf("mistral ocr %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Pages []struct {
			Index    int    `json:"index"`
			Markdown string `json:"markdown"`
		} `json:"pages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return ocr.Result{}, fmt.Errorf("mistral ocr: bad JSON: %w", err)
	}

	parts := make([]string, 0, len(raw.Pages))
	for _, p := range raw.Pages {
		if s := strings.TrimSpace(p.Markdown); s != "" {
			parts = append(parts, s)
		}
	}
	return ocr.Result{
		Text:  strings.Join(parts, "\n\n"),
		Pages: len(raw.Pages),
	}, nil
}
