package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/lueurxax/tweet-entities/internal/api"
	"github.com/lueurxax/tweet-entities/internal/app"
	errs "github.com/lueurxax/tweet-entities/internal/core/errors"
	"github.com/lueurxax/tweet-entities/internal/platform/config"
)

func main() {
	mode := flag.String("mode", "extract", "Service mode (extract, serve)")
	kinds := flag.String("kinds", "", "Comma-separated entity kinds to print in extract mode (url, hashtag, mention, list, cashtag)")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}

	if err := runMode(ctx, application, *mode, *kinds); err != nil {
		if errs.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).Level(lvl).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode, kinds string) error {
	switch mode {
	case "extract":
		parsed, err := api.ParseKinds(strings.Split(kinds, ","))
		if err != nil {
			return err
		}

		return application.RunExtract(ctx, flag.Args(), os.Stdin, os.Stdout, parsed)
	case "serve":
		return application.RunServe(ctx)
	default:
		log.Fatalf("Usage: %s --mode=[extract|serve] [--kinds=url,hashtag] [text...]", os.Args[0])

		return nil
	}
}
