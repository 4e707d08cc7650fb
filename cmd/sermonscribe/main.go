// Command sermonscribe is an interactive shell for ingesting YouTube sermon
// transcripts, analyzing them, and searching the stored corpus.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"sermonscribe/engine/ai"
	"sermonscribe/engine/ingest"
	"sermonscribe/engine/store"
	"sermonscribe/engine/youtube"
	"sermonscribe/pkg/config"
)

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(envOr("SERMONSCRIBE_CONFIG_DIR", "./configs"), "config")
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("store unavailable", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	yt := youtube.NewClient(cfg.YouTube.APIKey, cfg.Ingest.RequestsPerSecond)
	pipeline := ingest.New(yt, st, ingest.Opts{
		BatchSize:           cfg.Ingest.BatchSize,
		PauseBetweenBatches: time.Duration(cfg.Ingest.PauseSeconds * float64(time.Second)),
	}, logger)

	// AI commands degrade gracefully without a key.
	var aiClient *ai.Client
	if cfg.Gemini.APIKey != "" {
		aiClient, err = ai.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, logger)
		if err != nil {
			logger.Error("gemini init failed", "error", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("no Gemini API key configured, AI commands disabled")
	}

	app := &app{store: st, pipeline: pipeline, ai: aiClient, log: logger}
	reg := newRegistry(app)

	fmt.Println("sermonscribe: type 'help' for available commands, 'quit' to exit")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		out, err := reg.run(ctx, line)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		if out != "" {
			fmt.Println(out)
		}

		if ctx.Err() != nil {
			break
		}
	}
	logger.Info("shutting down")
}
