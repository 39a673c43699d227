package pipeline

import "errors"

// Failure categories surfaced to callers. Every failure aborts the run
// immediately; nothing is retried and no partial result is persisted.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileRead            = errors.New("file read failed")
	ErrOCRRequest          = errors.New("ocr request failed")
	ErrExtractionRequest   = errors.New("extraction request failed")
	ErrOutputWrite         = errors.New("output write failed")
)
