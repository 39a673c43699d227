// Package pipeline coordinates the document processor: read the document,
// OCR it through the hosted provider, extract structured fields through the
// language model, parse, and persist the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"medscan/internal/document"
	"medscan/internal/extract"
	"medscan/internal/ocr"
	"medscan/internal/output"
	"medscan/internal/util"
)

var supportedMIMEs = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Processor runs the three-step chain. Engines and logger are fixed at
// construction; a Processor holds no per-call state and calls are independent.
type Processor struct {
	ocr     ocr.Engine
	extract extract.Engine
	logger  *slog.Logger
}

func New(o ocr.Engine, x extract.Engine, logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{ocr: o, extract: x, logger: logger}
}

// Process reads documentPath, runs OCR then extraction, writes the result to
// outputPath (overwriting), and returns the parsed record. The extension is
// validated before any network call; the output file is only touched after
// both provider calls succeed.
func (p *Processor) Process(ctx context.Context, documentPath, outputPath string) (extract.Record, error) {
	rid := uuid.New().String()

	doc, err := document.Read(documentPath)
	if err != nil {
		if errors.Is(err, document.ErrUnsupportedType) {
			return extract.Record{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(documentPath))
		}
		return extract.Record{}, fmt.Errorf("%w: %v", ErrFileRead, err)
	}
	p.logger.Info("process.start",
		"req_id", rid, "path", documentPath, "kind", doc.Kind, "bytes", len(doc.Data))

	rec, raw, err := p.run(ctx, rid, doc.Data, doc.MIME)
	if err != nil {
		return extract.Record{}, err
	}

	if err := output.Write(outputPath, raw, rec); err != nil {
		p.logger.Error("process.write_failed", "req_id", rid, "output", outputPath, "err", err)
		return extract.Record{}, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	p.logger.Info("process.ok", "req_id", rid, "output", outputPath, "medicines", len(rec.Medicines))
	return rec, nil
}

// ProcessBytes runs OCR and extraction on in-memory document bytes and
// returns the record plus the raw completion. No file is written; the HTTP
// and bot surfaces build on this.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte, mime string) (extract.Record, string, error) {
	rid := uuid.New().String()
	if mime == "" {
		mime = util.SniffMime(data)
	}
	if !supportedMIMEs[mime] {
		return extract.Record{}, "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, mime)
	}
	return p.run(ctx, rid, data, mime)
}

func (p *Processor) run(ctx context.Context, rid string, data []byte, mime string) (extract.Record, string, error) {
	res, err := p.ocr.Recognize(ctx, data, mime)
	if err != nil {
		p.logger.Error("process.ocr_failed", "req_id", rid, "provider", p.ocr.Name(), "err", err)
		return extract.Record{}, "", fmt.Errorf("%w (%s): %v", ErrOCRRequest, p.ocr.Name(), err)
	}
	p.logger.Info("process.ocr_ok",
		"req_id", rid, "provider", p.ocr.Name(), "pages", res.Pages, "text_len", len(res.Text))

	raw, err := p.extract.Extract(ctx, res.Text)
	if err != nil {
		p.logger.Error("process.extract_failed", "req_id", rid, "provider", p.extract.Name(), "err", err)
		return extract.Record{}, "", fmt.Errorf("%w (%s): %v", ErrExtractionRequest, p.extract.Name(), err)
	}

	rec := extract.ParseRecord(raw)
	p.logger.Info("process.extract_ok",
		"req_id", rid, "provider", p.extract.Name(), "completion_len", len(raw), "medicines", len(rec.Medicines))
	return rec, raw, nil
}
