package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"medscan/internal/config"
	"medscan/internal/extract"
	"medscan/internal/extract/gemini"
	"medscan/internal/extract/groq"
	"medscan/internal/ocr/mistral"
	"medscan/internal/pipeline"
)

var httpc = &http.Client{Timeout: 60 * time.Second}

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if cfg.TelegramToken == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}
	if cfg.WebhookURL == "" {
		log.Fatal("missing required env WEBHOOK_URL")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	proc := buildProcessor(cfg, logger)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	path := "/webhook/" + shortHash(cfg.TelegramToken)
	public := strings.TrimRight(cfg.WebhookURL, "/") + path

	whcfg, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	whcfg.DropPendingUpdates = true
	if _, err := bot.Request(whcfg); err != nil {
		log.Fatal(err)
	}

	updates := bot.ListenForWebhook(path)

	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	go func() {
		for upd := range updates {
			handleUpdate(bot, proc, upd)
		}
	}()

	addr := "0.0.0.0:" + cfg.Port
	log.Printf("bot listening on %s; webhook=%s", addr, public)
	log.Fatal(http.ListenAndServe(addr, nil))
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

func handleUpdate(bot *tgbotapi.BotAPI, proc *pipeline.Processor, upd tgbotapi.Update) {
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		switch upd.Message.Command() {
		case "start":
			send(bot, cid, "Send a photo or PDF of a prescription — I will return the patient details and medicines. Commands: /health")
		case "health":
			send(bot, cid, "OK: webhook up")
		default:
			send(bot, cid, "Unknown command")
		}
		return
	}

	fileID := ""
	switch {
	case len(upd.Message.Photo) > 0:
		fileID = upd.Message.Photo[len(upd.Message.Photo)-1].FileID
	case upd.Message.Document != nil:
		fileID = upd.Message.Document.FileID
	default:
		return
	}

	send(bot, cid, "Got the document, processing…")

	tf, err := bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		send(bot, cid, "Could not fetch the file: "+err.Error())
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", bot.Token, tf.FilePath)
	data, err := download(url)
	if err != nil {
		send(bot, cid, "Could not download the file: "+err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	rec, _, err := proc.ProcessBytes(ctx, data, "")
	if err != nil {
		send(bot, cid, "Processing error: "+err.Error())
		return
	}
	send(bot, cid, extract.FormatRecord(rec))
}

func send(bot *tgbotapi.BotAPI, chatID int64, text string) {
	_, _ = bot.Send(tgbotapi.NewMessage(chatID, text))
}

func download(url string) ([]byte, error) {
	resp, err := httpc.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:16]
}
