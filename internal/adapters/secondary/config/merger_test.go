package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

func TestConfigMerger_Merge(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("merge with no configs returns defaults", func(t *testing.T) {
		result := merger.Merge()
		assert.NotNil(t, result)
		assert.Equal(t, "localhost", result.Server.Host)
		assert.Equal(t, 8080, result.Server.Port)
		assert.Equal(t, "default", result.Theme.Name)
	})

	t.Run("merge single config", func(t *testing.T) {
		config := &entities.Config{
			Server: entities.ServerConfig{Host: "example.com", Port: 9000},
			Theme:  entities.ThemeConfig{Name: "business"},
		}

		result := merger.Merge(config)
		assert.Equal(t, "example.com", result.Server.Host)
		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, "business", result.Theme.Name)
		assert.NotSame(t, config, result)
	})

	t.Run("merge multiple configs with precedence", func(t *testing.T) {
		base := GetDefaultConfig()

		override := &entities.Config{
			Server: entities.ServerConfig{
				Host: "0.0.0.0",
				// Port not specified, should keep base value
			},
			Generator: entities.GeneratorConfig{Model: "gemini-1.5-pro"},
			Images:    entities.ImagesConfig{Enabled: false},
			Layout:    entities.LayoutConfig{MaxBullets: 4, DedupeBullets: true},
			Output:    entities.OutputConfig{Format: "pdf"},
		}

		result := merger.Merge(base, override)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, base.Server.Port, result.Server.Port)
		assert.Equal(t, "gemini-1.5-pro", result.Generator.Model)
		assert.Equal(t, base.Generator.Provider, result.Generator.Provider)
		assert.False(t, result.Images.Enabled)
		assert.Equal(t, 4, result.Layout.MaxBullets)
		assert.Equal(t, base.Layout.MaxBulletChars, result.Layout.MaxBulletChars)
		assert.Equal(t, "pdf", result.Output.Format)
	})

	t.Run("nil configs are skipped", func(t *testing.T) {
		base := GetDefaultConfig()
		result := merger.Merge(base, nil)
		assert.Equal(t, base, result)
	})

	t.Run("CORS origins replaced as a whole", func(t *testing.T) {
		base := GetDefaultConfig()
		override := &entities.Config{
			Server: entities.ServerConfig{CORSOrigins: []string{"https://decks.example.com"}},
		}

		result := merger.Merge(base, override)
		assert.Equal(t, []string{"https://decks.example.com"}, result.Server.CORSOrigins)

		override.Server.CORSOrigins[0] = "changed"
		assert.Equal(t, "https://decks.example.com", result.Server.CORSOrigins[0])
	})
}

func TestConfigMerger_ApplyFlags(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply all flags", func(t *testing.T) {
		config := GetDefaultConfig()
		flags := map[string]interface{}{
			"host":       "0.0.0.0",
			"port":       3000,
			"theme":      "executive",
			"format":     "pdf",
			"output-dir": "/tmp/decks",
			"provider":   "file",
			"model":      "gemini-1.5-pro",
			"max-slides": 7,
			"images":     false,
			"log-level":  "warn",
		}

		result := merger.ApplyFlags(config, flags)
		assert.Equal(t, "0.0.0.0", result.Server.Host)
		assert.Equal(t, 3000, result.Server.Port)
		assert.Equal(t, "executive", result.Theme.Name)
		assert.Equal(t, "pdf", result.Output.Format)
		assert.Equal(t, "/tmp/decks", result.Output.Directory)
		assert.Equal(t, "file", result.Generator.Provider)
		assert.Equal(t, "gemini-1.5-pro", result.Generator.Model)
		assert.Equal(t, 7, result.Generator.MaxSlides)
		assert.False(t, result.Images.Enabled)
		assert.Equal(t, "warn", result.Logging.Level)

		// Original untouched
		assert.Equal(t, "default", config.Theme.Name)
	})

	t.Run("verbose switches to debug", func(t *testing.T) {
		result := merger.ApplyFlags(GetDefaultConfig(), map[string]interface{}{"verbose": true})
		assert.True(t, result.Logging.Verbose)
		assert.Equal(t, "debug", result.Logging.Level)
	})

	t.Run("empty and zero flags are ignored", func(t *testing.T) {
		config := GetDefaultConfig()
		flags := map[string]interface{}{
			"host":   "",
			"port":   0,
			"theme":  "",
			"format": "",
		}

		result := merger.ApplyFlags(config, flags)
		assert.Equal(t, config, result)
	})

	t.Run("wrong flag types are ignored", func(t *testing.T) {
		config := GetDefaultConfig()
		flags := map[string]interface{}{
			"port":   "not-a-number",
			"images": "yes",
		}

		result := merger.ApplyFlags(config, flags)
		assert.Equal(t, 8080, result.Server.Port)
		assert.True(t, result.Images.Enabled)
	})
}

func TestConfigMerger_ApplyEnvVars(t *testing.T) {
	merger := NewConfigMerger()

	t.Run("apply environment variable overrides", func(t *testing.T) {
		config := GetDefaultConfig()

		t.Setenv("DECKGENIE_HOST", "env-host")
		t.Setenv("DECKGENIE_PORT", "9000")
		t.Setenv("DECKGENIE_THEME", "technical")
		t.Setenv("DECKGENIE_MODEL", "gemini-env")
		t.Setenv("DECKGENIE_TEMPERATURE", "0.2")
		t.Setenv("DECKGENIE_MAX_SLIDES", "4")
		t.Setenv("DECKGENIE_IMAGES_ENABLED", "false")
		t.Setenv("DECKGENIE_FORMAT", "pdf")

		result := merger.ApplyEnvVars(config)
		assert.Equal(t, "env-host", result.Server.Host)
		assert.Equal(t, 9000, result.Server.Port)
		assert.Equal(t, "technical", result.Theme.Name)
		assert.Equal(t, "gemini-env", result.Generator.Model)
		assert.InDelta(t, 0.2, result.Generator.Temperature, 0.0001)
		assert.Equal(t, 4, result.Generator.MaxSlides)
		assert.False(t, result.Images.Enabled)
		assert.Equal(t, "pdf", result.Output.Format)
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		config := GetDefaultConfig()

		t.Setenv("DECKGENIE_PORT", "abc")
		t.Setenv("DECKGENIE_IMAGES_ENABLED", "maybe")

		result := merger.ApplyEnvVars(config)
		assert.Equal(t, config.Server.Port, result.Server.Port)
		assert.Equal(t, config.Images.Enabled, result.Images.Enabled)
	})
}

func TestDeepCopy(t *testing.T) {
	assert.Nil(t, deepCopy(nil))

	original := GetDefaultConfig()
	copied := deepCopy(original)

	assert.Equal(t, original, copied)

	copied.Server.Port = 1
	copied.Server.CORSOrigins[0] = "http://changed"
	assert.Equal(t, 8080, original.Server.Port)
	assert.Equal(t, "http://localhost:8080", original.Server.CORSOrigins[0])
}
