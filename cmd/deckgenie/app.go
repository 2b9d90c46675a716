package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/config"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/export"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/gemini"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/images"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/logging"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/outline"
	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/theme"
	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
	"github.com/fredcamaral/deckgenie/internal/domain/services"
)

// sourceMode says how a command needs its content source
type sourceMode int

const (
	// sourceRequired fails when no content source can be built
	sourceRequired sourceMode = iota
	// sourceOptional runs without a content source, logging why
	sourceOptional
)

// app holds the wired pipeline for one command invocation
type app struct {
	config  *entities.Config
	logger  *logging.Logger
	source  ports.ContentSource
	deck    *services.DeckService
	closers []io.Closer
}

// Close releases the content source client and the log file
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// configOverrides turns the flags the user set into ConfigMerger overrides
func configOverrides(cmd *cobra.Command) map[string]interface{} {
	flags := make(map[string]interface{})

	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config", "outline", "output", "force":
			return
		case "no-images":
			if noImages, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags["images"] = !noImages
			}
			return
		}

		switch f.Value.Type() {
		case "int":
			if v, err := cmd.Flags().GetInt(f.Name); err == nil {
				flags[f.Name] = v
			}
		case "bool":
			if v, err := cmd.Flags().GetBool(f.Name); err == nil {
				flags[f.Name] = v
			}
		default:
			flags[f.Name] = f.Value.String()
		}
	})

	return flags
}

// newConfigLoader builds a TOML loader honoring --config
func newConfigLoader(cmd *cobra.Command) *config.TOMLLoader {
	if path, err := cmd.Flags().GetString("config"); err == nil && path != "" {
		return config.NewTOMLLoaderWithPath(path)
	}
	return config.NewTOMLLoader()
}

// newThemeService reads custom themes only when a theme directory is configured
func newThemeService(cfg *entities.Config, logger ports.Logger) *services.ThemeService {
	var loader ports.ThemeLoader
	if cfg.Theme.CustomPath != "" {
		loader = theme.NewDirectoryLoader(cfg.Theme.CustomPath)
	}
	return services.NewThemeService(loader, logger)
}

// loadConfig resolves the effective configuration for a command
func loadConfig(ctx context.Context, cmd *cobra.Command) (*entities.Config, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	service := services.NewConfigService(newConfigLoader(cmd), config.NewConfigMerger())
	cfg, err := service.LoadConfig(ctx, workingDir, configOverrides(cmd))
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newApp loads configuration and wires every adapter into a deck service.
// outlinePath selects the offline outline source over the configured provider.
func newApp(ctx context.Context, cmd *cobra.Command, outlinePath string, mode sourceMode) (*app, error) {
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &app{config: cfg, logger: logger, closers: []io.Closer{logger}}

	if err := a.wire(ctx, outlinePath, mode); err != nil {
		_ = a.Close()
		return nil, err
	}

	return a, nil
}

func (a *app) wire(ctx context.Context, outlinePath string, mode sourceMode) error {
	cfg := a.config

	client := ports.NewRealHTTPClient(ports.HTTPClientConfig{
		Timeout:    cfg.Images.GetTimeout(),
		MaxRetries: 1,
		RetryDelay: 200 * time.Millisecond,
		UserAgent:  "deckgenie/" + Version,
	})

	lookup, err := images.New(cfg.Images, client, a.logger.Component("images"))
	if err != nil {
		return fmt.Errorf("creating image lookup: %w", err)
	}

	renderer := services.NewSlideRenderer(cfg.Layout, lookup, cfg.Images.GetTimeout(), a.logger.Component("renderer"))
	assembler := services.NewDeckAssembler(renderer)

	themes := newThemeService(cfg, a.logger.Component("themes"))

	source, err := a.contentSource(ctx, outlinePath)
	if err != nil {
		if mode == sourceRequired {
			return err
		}
		a.logger.Warn("Deck generation is disabled: %v", err)
		source = nil
	}
	a.source = source

	a.deck = services.NewDeckService(source, assembler, themes, export.NewDefaultRegistry(), cfg, a.logger.Component("deck"))
	return nil
}

// contentSource picks the outline file or the configured provider
func (a *app) contentSource(ctx context.Context, outlinePath string) (ports.ContentSource, error) {
	parser := outline.NewParser(a.config.Generator.GetMaxSlides(), a.logger.Component("outline"))

	if outlinePath != "" {
		return outline.NewFileSource(outlinePath, parser), nil
	}

	switch provider := a.config.Generator.GetProvider(); provider {
	case "gemini":
		source, err := gemini.New(ctx, a.config.Generator, parser, a.logger.Component("gemini"))
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, source)
		return source, nil
	case "file":
		return nil, errors.New(`the "file" provider needs an outline (use --outline)`)
	default:
		return nil, fmt.Errorf("unknown generator provider: %s", provider)
	}
}
