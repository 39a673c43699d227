package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"medscan/internal/extract"
	"medscan/internal/util"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(key, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(key),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string { return "gemini" }

func (e *Engine) Extract(ctx context.Context, ocrText string) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", err
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.3),
		MaxOutputTokens: ptrInt32(1024),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(extract.SystemPrompt)},
	}

	resp, err := m.GenerateContent(ctx, genai.Text(extract.UserPrompt(ocrText)))
	if err != nil {
		return "", fmt.Errorf("gemini extract: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini extract: empty response")
	}
	txt, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", errors.New("gemini extract: non-text part")
	}
	out := util.StripCodeFences(strings.TrimSpace(string(txt)))
	if out == "" {
		return "", errors.New("gemini extract: empty completion")
	}
	return out, nil
}

func ptrFloat32(v float32) *float32 { return &v }
func ptrInt32(v int32) *int32       { return &v }
