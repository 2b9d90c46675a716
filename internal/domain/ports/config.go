package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// ConfigLoader reads deckgenie TOML files. There are two of them: the
// global ~/.config/deckgenie/config.toml and an optional deckgenie.toml
// in the working directory.
type ConfigLoader interface {
	// LoadGlobal reads the global file, writing the defaults there first
	// when it does not exist yet
	LoadGlobal(ctx context.Context) (*entities.Config, error)

	// LoadLocal reads deckgenie.toml from dir. A missing file yields nil, nil.
	LoadLocal(ctx context.Context, dir string) (*entities.Config, error)

	// CreateDefaults writes the default configuration to path
	CreateDefaults(ctx context.Context, path string) error

	GetGlobalPath() string
	GetLocalPath(dir string) string
}

// ConfigMerger layers configuration sources. Only values a source actually
// sets replace the ones below it.
type ConfigMerger interface {
	// Merge folds configs left to right, later ones winning
	Merge(configs ...*entities.Config) *entities.Config

	// ApplyFlags applies command-line overrides keyed by flag name
	// ("theme", "format", "max-slides", "images", ...)
	ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config

	// ApplyEnvVars applies DECKGENIE_* overrides
	ApplyEnvVars(config *entities.Config) *entities.Config
}

// ConfigService resolves the effective configuration for a command or
// server. Precedence, lowest first: built-in defaults, global file, local
// file, DECKGENIE_* environment, flags.
type ConfigService interface {
	// LoadConfig resolves and validates the layered configuration for workingDir
	LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error)

	GetDefaultConfig() *entities.Config

	// ValidateConfig reports an invalid setting
	ValidateConfig(config *entities.Config) error

	// CreateGlobalConfig writes the defaults to the global file
	CreateGlobalConfig(ctx context.Context) error
}
