package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// ConfigService resolves the effective configuration from defaults, config
// files, environment and command line flags
type ConfigService struct {
	loader ports.ConfigLoader
	merger ports.ConfigMerger
	logger ports.Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(loader ports.ConfigLoader, merger ports.ConfigMerger) *ConfigService {
	return &ConfigService{
		loader: loader,
		merger: merger,
		logger: ports.NopLogger{},
	}
}

// SetLogger replaces the service logger
func (s *ConfigService) SetLogger(logger ports.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// LoadConfig loads the complete configuration.
// Precedence: defaults, global file, local file, DECKGENIE_* env, flags.
func (s *ConfigService) LoadConfig(ctx context.Context, workingDir string, flags map[string]interface{}) (*entities.Config, error) {
	defaultConfig := s.GetDefaultConfig()

	// Load global config (creates if not exists)
	globalConfig, err := s.loader.LoadGlobal(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}

	localConfig, err := s.loader.LoadLocal(ctx, workingDir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	configs := []*entities.Config{defaultConfig}
	if globalConfig != nil {
		configs = append(configs, globalConfig)
	}
	if localConfig != nil {
		s.logger.Debug("Using local config %s", s.loader.GetLocalPath(workingDir))
		configs = append(configs, localConfig)
	}

	mergedConfig := s.merger.Merge(configs...)
	envConfig := s.merger.ApplyEnvVars(mergedConfig)
	finalConfig := s.merger.ApplyFlags(envConfig, flags)

	if err := s.ValidateConfig(finalConfig); err != nil {
		return nil, fmt.Errorf("final config validation: %w", err)
	}

	return finalConfig, nil
}

// GetDefaultConfig returns the default configuration.
// Merge with no arguments yields the defaults.
func (s *ConfigService) GetDefaultConfig() *entities.Config {
	return s.merger.Merge()
}

// ValidateConfig validates a configuration
func (s *ConfigService) ValidateConfig(config *entities.Config) error {
	if config == nil {
		return errors.New("config cannot be nil")
	}

	return config.Validate()
}

// CreateGlobalConfig creates the global configuration file with defaults
func (s *ConfigService) CreateGlobalConfig(ctx context.Context) error {
	globalPath := s.loader.GetGlobalPath()
	return s.loader.CreateDefaults(ctx, globalPath)
}

// Ensure ConfigService implements ports.ConfigService
var _ ports.ConfigService = (*ConfigService)(nil)
