package config

import (
	"os"
	"strconv"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// ConfigMerger implements the ConfigMerger interface
type ConfigMerger struct{}

// NewConfigMerger creates a new configuration merger
func NewConfigMerger() *ConfigMerger {
	return &ConfigMerger{}
}

// Merge merges multiple configurations with later configs taking precedence
func (m *ConfigMerger) Merge(configs ...*entities.Config) *entities.Config {
	if len(configs) == 0 {
		return GetDefaultConfig()
	}

	// Start with first config as base
	result := deepCopy(configs[0])

	for i := 1; i < len(configs); i++ {
		if configs[i] != nil {
			m.mergeInto(result, configs[i])
		}
	}

	return result
}

// ApplyFlags applies CLI flag overrides to a configuration.
// Keys follow the flag names: host, port, theme, theme-path, format,
// output-dir, provider, model, max-slides, images, verbose, log-level.
func (m *ConfigMerger) ApplyFlags(config *entities.Config, flags map[string]interface{}) *entities.Config {
	result := deepCopy(config)

	if port, ok := flags["port"].(int); ok && port > 0 {
		result.Server.Port = port
	}

	if host, ok := flags["host"].(string); ok && host != "" {
		result.Server.Host = host
	}

	if theme, ok := flags["theme"].(string); ok && theme != "" {
		result.Theme.Name = theme
	}

	if customPath, ok := flags["theme-path"].(string); ok && customPath != "" {
		result.Theme.CustomPath = customPath
	}

	if format, ok := flags["format"].(string); ok && format != "" {
		result.Output.Format = format
	}

	if dir, ok := flags["output-dir"].(string); ok && dir != "" {
		result.Output.Directory = dir
	}

	if provider, ok := flags["provider"].(string); ok && provider != "" {
		result.Generator.Provider = provider
	}

	if model, ok := flags["model"].(string); ok && model != "" {
		result.Generator.Model = model
	}

	if maxSlides, ok := flags["max-slides"].(int); ok && maxSlides > 0 {
		result.Generator.MaxSlides = maxSlides
	}

	if images, ok := flags["images"].(bool); ok {
		result.Images.Enabled = images
	}

	if verbose, ok := flags["verbose"].(bool); ok && verbose {
		result.Logging.Verbose = true
		result.Logging.Level = string(entities.LogLevelDebug)
	}

	if level, ok := flags["log-level"].(string); ok && level != "" {
		result.Logging.Level = level
	}

	return result
}

// ApplyEnvVars applies DECKGENIE_* environment variable overrides to a configuration
func (m *ConfigMerger) ApplyEnvVars(config *entities.Config) *entities.Config {
	result := deepCopy(config)

	if host := os.Getenv(EnvPrefix + "HOST"); host != "" {
		result.Server.Host = host
	}

	if portStr := os.Getenv(EnvPrefix + "PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			result.Server.Port = port
		}
	}

	if theme := os.Getenv(EnvPrefix + "THEME"); theme != "" {
		result.Theme.Name = theme
	}

	if themePath := os.Getenv(EnvPrefix + "THEME_PATH"); themePath != "" {
		result.Theme.CustomPath = themePath
	}

	if provider := os.Getenv(EnvPrefix + "PROVIDER"); provider != "" {
		result.Generator.Provider = provider
	}

	if model := os.Getenv(EnvPrefix + "MODEL"); model != "" {
		result.Generator.Model = model
	}

	if tempStr := os.Getenv(EnvPrefix + "TEMPERATURE"); tempStr != "" {
		if temp, err := strconv.ParseFloat(tempStr, 32); err == nil {
			result.Generator.Temperature = float32(temp)
		}
	}

	if maxStr := os.Getenv(EnvPrefix + "MAX_SLIDES"); maxStr != "" {
		if maxSlides, err := strconv.Atoi(maxStr); err == nil && maxSlides > 0 {
			result.Generator.MaxSlides = maxSlides
		}
	}

	if enabledStr := os.Getenv(EnvPrefix + "IMAGES_ENABLED"); enabledStr != "" {
		if enabled, err := strconv.ParseBool(enabledStr); err == nil {
			result.Images.Enabled = enabled
		}
	}

	if imageProvider := os.Getenv(EnvPrefix + "IMAGE_PROVIDER"); imageProvider != "" {
		result.Images.Provider = imageProvider
	}

	if format := os.Getenv(EnvPrefix + "FORMAT"); format != "" {
		result.Output.Format = format
	}

	if dir := os.Getenv(EnvPrefix + "OUTPUT_DIR"); dir != "" {
		result.Output.Directory = dir
	}

	if level := os.Getenv(EnvPrefix + "LOG_LEVEL"); level != "" {
		result.Logging.Level = level
	}

	return result
}

// mergeInto merges source configuration into target configuration
func (m *ConfigMerger) mergeInto(target, source *entities.Config) {
	// Server config
	if source.Server.Port != 0 {
		target.Server.Port = source.Server.Port
	}
	if source.Server.Host != "" {
		target.Server.Host = source.Server.Host
	}
	if source.Server.ReadTimeout != 0 {
		target.Server.ReadTimeout = source.Server.ReadTimeout
	}
	if source.Server.WriteTimeout != 0 {
		target.Server.WriteTimeout = source.Server.WriteTimeout
	}
	if source.Server.ShutdownTimeout != 0 {
		target.Server.ShutdownTimeout = source.Server.ShutdownTimeout
	}
	if source.Server.RateLimit != 0 {
		target.Server.RateLimit = source.Server.RateLimit
	}
	if source.Server.Environment != "" {
		target.Server.Environment = source.Server.Environment
	}
	if len(source.Server.CORSOrigins) > 0 {
		target.Server.CORSOrigins = copyStrings(source.Server.CORSOrigins)
	}

	// Theme config
	if source.Theme.Name != "" {
		target.Theme.Name = source.Theme.Name
	}
	if source.Theme.CustomPath != "" {
		target.Theme.CustomPath = source.Theme.CustomPath
	}

	// Generator config
	if source.Generator.Provider != "" {
		target.Generator.Provider = source.Generator.Provider
	}
	if source.Generator.Model != "" {
		target.Generator.Model = source.Generator.Model
	}
	if source.Generator.APIKeyEnv != "" {
		target.Generator.APIKeyEnv = source.Generator.APIKeyEnv
	}
	if source.Generator.Temperature != 0 {
		target.Generator.Temperature = source.Generator.Temperature
	}
	if source.Generator.MaxSlides != 0 {
		target.Generator.MaxSlides = source.Generator.MaxSlides
	}
	if source.Generator.TimeoutSeconds != 0 {
		target.Generator.TimeoutSeconds = source.Generator.TimeoutSeconds
	}

	// Images config. Booleans are always merged; the loader fills
	// booleans missing from a file with their defaults.
	target.Images.Enabled = source.Images.Enabled
	if source.Images.Provider != "" {
		target.Images.Provider = source.Images.Provider
	}
	if source.Images.TimeoutMs != 0 {
		target.Images.TimeoutMs = source.Images.TimeoutMs
	}
	if source.Images.AccessKeyEnv != "" {
		target.Images.AccessKeyEnv = source.Images.AccessKeyEnv
	}

	// Layout config
	if source.Layout.MaxBullets != 0 {
		target.Layout.MaxBullets = source.Layout.MaxBullets
	}
	if source.Layout.MaxBulletChars != 0 {
		target.Layout.MaxBulletChars = source.Layout.MaxBulletChars
	}
	if source.Layout.MaxBulletWords != 0 {
		target.Layout.MaxBulletWords = source.Layout.MaxBulletWords
	}
	target.Layout.DedupeBullets = source.Layout.DedupeBullets

	// Output config
	if source.Output.Format != "" {
		target.Output.Format = source.Output.Format
	}
	if source.Output.Directory != "" {
		target.Output.Directory = source.Output.Directory
	}

	// Logging config
	if source.Logging.Level != "" {
		target.Logging.Level = source.Logging.Level
	}
	if source.Logging.File != "" {
		target.Logging.File = source.Logging.File
	}
	target.Logging.Verbose = source.Logging.Verbose
	target.Logging.JSONFormat = source.Logging.JSONFormat
}

// deepCopy creates a deep copy of a configuration
func deepCopy(src *entities.Config) *entities.Config {
	if src == nil {
		return nil
	}

	// All sections are plain values except the CORS origin list
	dst := *src
	dst.Server.CORSOrigins = copyStrings(src.Server.CORSOrigins)

	return &dst
}

func copyStrings(src []string) []string {
	if src == nil {
		return nil
	}
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}

// Ensure ConfigMerger implements ports.ConfigMerger
var _ ports.ConfigMerger = (*ConfigMerger)(nil)
