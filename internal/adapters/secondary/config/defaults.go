package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// EnvPrefix prefixes every environment variable read by deckgenie
const EnvPrefix = "DECKGENIE_"

// GetDefaultConfig returns the default configuration with environment overrides
func GetDefaultConfig() *entities.Config {
	config := &entities.Config{
		Server: entities.ServerConfig{
			Host:            getEnvOrDefault(EnvPrefix+"HOST", "localhost"),
			Port:            getEnvIntOrDefault(EnvPrefix+"PORT", 8080),
			ReadTimeout:     getEnvIntOrDefault(EnvPrefix+"READ_TIMEOUT", 30),
			WriteTimeout:    getEnvIntOrDefault(EnvPrefix+"WRITE_TIMEOUT", 120),
			ShutdownTimeout: getEnvIntOrDefault(EnvPrefix+"SHUTDOWN_TIMEOUT", 5),
			RateLimit:       getEnvIntOrDefault(EnvPrefix+"RATE_LIMIT", 30),
			CORSOrigins: getEnvSliceOrDefault(EnvPrefix+"CORS_ORIGINS", []string{
				"http://localhost:8080",
				"http://127.0.0.1:8080",
			}),
		},
		Theme: entities.ThemeConfig{
			Name:       entities.DefaultThemeName,
			CustomPath: "",
		},
		Generator: entities.GeneratorConfig{
			Provider:       "gemini",
			Model:          "gemini-1.5-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			Temperature:    0.7,
			MaxSlides:      10,
			TimeoutSeconds: 60,
		},
		Images: entities.ImagesConfig{
			Enabled:      getEnvBoolOrDefault(EnvPrefix+"IMAGES_ENABLED", true),
			Provider:     "unsplash",
			TimeoutMs:    5000,
			AccessKeyEnv: "UNSPLASH_API_KEY",
		},
		Layout: entities.LayoutConfig{
			MaxBullets:     5,
			MaxBulletChars: 100,
			MaxBulletWords: 20,
			DedupeBullets:  true,
		},
		Output: entities.OutputConfig{
			Format:    getEnvOrDefault(EnvPrefix+"FORMAT", "pptx"),
			Directory: ".",
		},
		Logging: entities.LoggingConfig{
			Level:      getEnvOrDefault(EnvPrefix+"LOG_LEVEL", "info"),
			Verbose:    getEnvBoolOrDefault(EnvPrefix+"LOG_VERBOSE", false),
			JSONFormat: getEnvBoolOrDefault(EnvPrefix+"LOG_JSON", false),
			File:       getEnvOrDefault(EnvPrefix+"LOG_FILE", ""),
		},
	}

	// Apply additional environment-based overrides
	applyEnvironmentOverrides(config)

	return config
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvIntOrDefault returns environment variable as int or default
func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBoolOrDefault returns environment variable as bool or default
func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvSliceOrDefault returns environment variable as slice or default
func getEnvSliceOrDefault(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		// Split by comma and trim whitespace
		parts := strings.Split(value, ",")
		result := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}

// applyEnvironmentOverrides applies generator, theme and image settings from the environment
func applyEnvironmentOverrides(config *entities.Config) {
	if theme := os.Getenv(EnvPrefix + "THEME"); theme != "" {
		config.Theme.Name = theme
	}

	if customPath := os.Getenv(EnvPrefix + "THEME_PATH"); customPath != "" {
		config.Theme.CustomPath = customPath
	}

	if provider := os.Getenv(EnvPrefix + "PROVIDER"); provider != "" {
		config.Generator.Provider = provider
	}

	if model := os.Getenv(EnvPrefix + "MODEL"); model != "" {
		config.Generator.Model = model
	}

	if imageProvider := os.Getenv(EnvPrefix + "IMAGE_PROVIDER"); imageProvider != "" {
		config.Images.Provider = imageProvider
	}
}
