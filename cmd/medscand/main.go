package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"medscan/internal/config"
	"medscan/internal/extract"
	"medscan/internal/extract/gemini"
	"medscan/internal/extract/groq"
	"medscan/internal/handle"
	"medscan/internal/ocr/mistral"
	"medscan/internal/pipeline"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	proc := buildProcessor(cfg, logger)
	h := handle.New(proc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/process", h.Process)

	addr := ":" + cfg.Port
	log.Printf("medscand listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
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
