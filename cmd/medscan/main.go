package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"medscan/internal/config"
	"medscan/internal/extract"
	"medscan/internal/extract/gemini"
	"medscan/internal/extract/groq"
	"medscan/internal/ocr/mistral"
	"medscan/internal/pipeline"
)

const defaultOutput = "medical_info_output.txt"

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Fprintln(os.Stderr, "usage: medscan <document> [output]")
		os.Exit(2)
	}
	docPath := os.Args[1]
	outPath := defaultOutput
	if len(os.Args) == 3 {
		outPath = os.Args[2]
	}

	cfg := config.Load()
	proc := buildProcessor(cfg, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	rec, err := proc.Process(ctx, docPath, outPath)
	if err != nil {
		logger.Error("process failed", "document", docPath, "error", err)
		os.Exit(1)
	}

	fmt.Print(extract.FormatRecord(rec))
	fmt.Fprintf(os.Stderr, "saved to %s\n", outPath)
}

func buildProcessor(cfg *config.Config, logger *slog.Logger) *pipeline.Processor {
	oc := mistral.New(cfg.MistralAPIKey, cfg.MistralModel)
	if cfg.MistralBaseURL != "" {
		oc.BaseURL = cfg.MistralBaseURL
	}

	var ex extract.Engine
	switch cfg.ExtractEngine {
	case "gemini":
		ex = gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		gq := groq.New(cfg.GroqAPIKey, cfg.GroqModel)
		if cfg.GroqBaseURL != "" {
			gq.BaseURL = cfg.GroqBaseURL
		}
		ex = gq
	}
	return pipeline.New(oc, ex, logger)
}
