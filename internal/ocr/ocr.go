// Package ocr defines the hosted text-recognition engine contract.
package ocr

import "context"

type Result struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

type Engine interface {
	Name() string
	// Recognize submits the document bytes to the provider and returns the
	// extracted text. One provider call per invocation, no retries.
	Recognize(ctx context.Context, data []byte, mime string) (Result, error)
}
