package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medscan/internal/extract"
	"medscan/internal/util"
)

const DefaultBaseURL = "https://api.groq.com/openai/v1"

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

func (e *Engine) Name() string { return "groq" }

func (e *Engine) Extract(ctx context.Context, ocrText string) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY is empty")
	}

	body := map[string]any{
		"model": e.Model,
		"messages": []any{
			map[string]any{"role": "system", "content": extract.SystemPrompt},
			map[string]any{"role": "user", "content": extract.UserPrompt(ocrText)},
		},
		"temperature": 0.3,
		"max_tokens":  1024,
	}
	payload, _ := json.Marshal(body)

	url := strings.TrimRight(e.BaseURL, "/") + "/chat/completions"
	req, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.APIKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq extract %d: %s", resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var raw struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return "", fmt.Errorf("groq extract: bad JSON: %w", err)
	}
	if len(raw.Choices) == 0 {
		return "", fmt.Errorf("groq extract: empty response")
	}
	out := util.StripCodeFences(strings.TrimSpace(raw.Choices[0].Message.Content))
	if out == "" {
		return "", fmt.Errorf("groq extract: empty completion")
	}
	return out, nil
}
