// Package app wires configuration, the pattern set, the extraction engine
// and the validators, and runs the operational modes:
//
//   - Extract mode: reads texts from arguments or stdin and prints entities
//     as JSON lines
//   - Serve mode: HTTP API with health and metrics endpoints
package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/unicode/norm"

	"github.com/lueurxax/tweet-entities/internal/api"
	"github.com/lueurxax/tweet-entities/internal/core/entities"
	"github.com/lueurxax/tweet-entities/internal/core/regexen"
	"github.com/lueurxax/tweet-entities/internal/core/validate"
	"github.com/lueurxax/tweet-entities/internal/platform/config"
	"github.com/lueurxax/tweet-entities/internal/platform/observability"
)

const maxLineBytes = 1 << 20

var errNotReady = errors.New("pattern set not built")

type App struct {
	cfg       *config.Config
	logger    *zerolog.Logger
	set       *regexen.Set
	extractor *entities.Extractor
	validator *validate.Validator
}

// New builds the pattern set and everything that depends on it. An error
// here means the grammar itself is broken and the process must not start.
func New(cfg *config.Config, logger *zerolog.Logger) (*App, error) {
	engine := cfg.EngineCfg()

	set, err := regexen.Build(regexen.BuildOptions{
		Logger:       logger,
		MatchTimeout: engine.MatchTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("building pattern set: %w", err)
	}

	observability.PatternsCompiled.Set(float64(len(regexen.EntryPoints)))

	extractor := entities.New(set, entities.Options{
		ExtractURLsWithoutProtocol: engine.ExtractURLsWithoutProtocol,
		CheckURLOverlap:            engine.CheckURLOverlap,
	}, logger)

	validator, err := validate.New(set, extractor)
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		set:       set,
		extractor: extractor,
		validator: validator,
	}, nil
}

func (a *App) Extractor() *entities.Extractor {
	return a.extractor
}

func (a *App) Validator() *validate.Validator {
	return a.validator
}

// RunServe serves the API until ctx is done.
func (a *App) RunServe(ctx context.Context) error {
	srvCfg := a.cfg.ServerCfg()

	handler := api.NewHandler(a.extractor, a.validator, api.Options{
		MaxTextLength:  srvCfg.MaxTextLength,
		RateLimitRPS:   srvCfg.RateLimitRPS,
		RateLimitBurst: srvCfg.RateLimitBurst,
		NormalizeNFC:   a.cfg.EngineCfg().NormalizeNFC,
	}, a.logger)

	srv := observability.NewServer(observability.ServerOptions{
		Port:              srvCfg.Port,
		ReadHeaderTimeout: srvCfg.ReadHeaderTimeout,
		ShutdownTimeout:   srvCfg.ShutdownTimeout,
	}, handler, a.ready, a.logger)

	return srv.Start(ctx)
}

func (a *App) ready(context.Context) error {
	if a.set == nil || a.extractor == nil {
		return errNotReady
	}

	return nil
}

type extractRecord struct {
	Input int `json:"input"`
	api.Entity
}

// RunExtract extracts entities from every text in args, or from every line
// of in when args is empty, and writes one JSON object per entity to out.
func (a *App) RunExtract(ctx context.Context, args []string, in io.Reader, out io.Writer, kinds []entities.Kind) error {
	enc := json.NewEncoder(out)

	emit := func(i int, text string) error {
		if a.cfg.EngineCfg().NormalizeNFC {
			text = norm.NFC.String(text)
		}

		for _, ent := range api.ToEntities(text, a.extractor.ExtractKinds(text, kinds...)) {
			if err := enc.Encode(extractRecord{Input: i, Entity: ent}); err != nil {
				return fmt.Errorf("writing entity: %w", err)
			}
		}

		return nil
	}

	if len(args) > 0 {
		for i, text := range args {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := emit(i, text); err != nil {
				return err
			}
		}

		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

	for i := 0; scanner.Scan(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := emit(i, strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	a.logger.Debug().Msg("extract input exhausted")

	return nil
}
