package entities

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{
				Host:            "localhost",
				Port:            8080,
				ReadTimeout:     30,
				WriteTimeout:    120,
				ShutdownTimeout: 5,
			},
			Theme: ThemeConfig{
				Name: "default",
			},
			Generator: GeneratorConfig{
				Provider:    "gemini",
				Temperature: 0.4,
				MaxSlides:   8,
			},
			Images: ImagesConfig{
				Enabled:   true,
				Provider:  "unsplash",
				TimeoutMs: 5000,
			},
			Layout: LayoutConfig{
				MaxBullets:     5,
				MaxBulletChars: 100,
				MaxBulletWords: 20,
			},
			Output: OutputConfig{Format: "pptx"},
		}

		err := config.Validate()
		assert.NoError(t, err)
	})

	t.Run("invalid server config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{Port: -1},
			Theme:  ThemeConfig{Name: "default"},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "server config")
	})

	t.Run("invalid theme config", func(t *testing.T) {
		config := &Config{
			Server: ServerConfig{Port: 8080},
			Theme:  ThemeConfig{Name: ""},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "theme config")
	})

	t.Run("invalid generator config", func(t *testing.T) {
		config := &Config{
			Theme:     ThemeConfig{Name: "default"},
			Generator: GeneratorConfig{Provider: "openai"},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "generator config")
	})

	t.Run("invalid images config", func(t *testing.T) {
		config := &Config{
			Theme:  ThemeConfig{Name: "default"},
			Images: ImagesConfig{Provider: "bing"},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "images config")
	})

	t.Run("invalid output config", func(t *testing.T) {
		config := &Config{
			Theme:  ThemeConfig{Name: "default"},
			Output: OutputConfig{Format: "key"},
		}

		err := config.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "output config")
	})
}

func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  ServerConfig
		wantErr string
	}{
		{name: "valid", config: ServerConfig{Host: "127.0.0.1", Port: 8080}},
		{name: "port too high", config: ServerConfig{Port: 70000}, wantErr: "port must be between"},
		{name: "negative read timeout", config: ServerConfig{ReadTimeout: -1}, wantErr: "read timeout"},
		{name: "negative rate limit", config: ServerConfig{RateLimit: -5}, wantErr: "rate limit"},
		{name: "wildcard origin", config: ServerConfig{CORSOrigins: []string{"*"}}},
		{name: "bad origin", config: ServerConfig{CORSOrigins: []string{"localhost"}}, wantErr: "invalid CORS origin"},
		{name: "empty origin", config: ServerConfig{CORSOrigins: []string{""}}, wantErr: "cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_Defaults(t *testing.T) {
	config := ServerConfig{}

	assert.Equal(t, 30*time.Second, config.GetReadTimeout())
	assert.Equal(t, 120*time.Second, config.GetWriteTimeout())
	assert.Equal(t, 5*time.Second, config.GetShutdownTimeout())
	assert.Equal(t, 30, config.GetRateLimit())
	assert.NotEmpty(t, config.GetCORSOrigins())
	assert.True(t, config.IsDevelopment())

	config.Environment = "production"
	assert.False(t, config.IsDevelopment())
}

func TestThemeConfig_Validate(t *testing.T) {
	t.Run("relative custom path", func(t *testing.T) {
		err := ThemeConfig{Name: "default", CustomPath: "themes"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be absolute")
	})

	t.Run("missing custom path", func(t *testing.T) {
		err := ThemeConfig{Name: "default", CustomPath: "/definitely/not/here"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("existing custom path", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgenie-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		assert.NoError(t, ThemeConfig{Name: "default", CustomPath: tmpDir}.Validate())
	})
}

func TestGeneratorConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := GeneratorConfig{}
		assert.Equal(t, "gemini", config.GetProvider())
		assert.Equal(t, "gemini-1.5-flash", config.GetModel())
		assert.Equal(t, "GEMINI_API_KEY", config.GetAPIKeyEnv())
		assert.Equal(t, 10, config.GetMaxSlides())
		assert.Equal(t, 60*time.Second, config.GetTimeout())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		err := GeneratorConfig{Temperature: 3}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "temperature")
	})

	t.Run("file provider", func(t *testing.T) {
		assert.NoError(t, GeneratorConfig{Provider: "file"}.Validate())
	})
}

func TestImagesConfig(t *testing.T) {
	config := ImagesConfig{}
	assert.Equal(t, "placeholder", config.GetProvider())
	assert.Equal(t, 5*time.Second, config.GetTimeout())
	assert.Equal(t, "UNSPLASH_API_KEY", config.GetAccessKeyEnv())

	config.TimeoutMs = 250
	assert.Equal(t, 250*time.Millisecond, config.GetTimeout())

	assert.Error(t, ImagesConfig{TimeoutMs: -1}.Validate())
}

func TestLayoutConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config := LayoutConfig{}
		assert.Equal(t, 5, config.GetMaxBullets())
		assert.Equal(t, 100, config.GetMaxBulletChars())
		assert.Equal(t, 20, config.GetMaxBulletWords())
		assert.NoError(t, config.Validate())
	})

	t.Run("single bullet leaves no room for indicator", func(t *testing.T) {
		err := LayoutConfig{MaxBullets: 1}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 2")
	})

	t.Run("tiny char limit", func(t *testing.T) {
		assert.Error(t, LayoutConfig{MaxBulletChars: 5}.Validate())
	})

	t.Run("negative limits", func(t *testing.T) {
		assert.Error(t, LayoutConfig{MaxBulletWords: -1}.Validate())
	})
}

func TestOutputConfig(t *testing.T) {
	assert.Equal(t, "pptx", OutputConfig{}.GetFormat())
	assert.Equal(t, ".", OutputConfig{}.GetDirectory())
	assert.NoError(t, OutputConfig{Format: "pdf"}.Validate())
}

func TestLoggingConfig_Validate(t *testing.T) {
	t.Run("valid levels", func(t *testing.T) {
		for _, level := range []string{"", "debug", "info", "warn", "error"} {
			assert.NoError(t, LoggingConfig{Level: level}.Validate(), level)
		}
	})

	t.Run("invalid level", func(t *testing.T) {
		err := LoggingConfig{Level: "trace"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("relative log file", func(t *testing.T) {
		err := LoggingConfig{File: "deckgenie.log"}.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be absolute")
	})

	t.Run("log file in existing dir", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "deckgenie-test-*")
		require.NoError(t, err)
		defer func() { _ = os.RemoveAll(tmpDir) }()

		assert.NoError(t, LoggingConfig{File: filepath.Join(tmpDir, "app.log")}.Validate())
	})

	t.Run("default level", func(t *testing.T) {
		assert.Equal(t, LogLevelInfo, LoggingConfig{}.GetLevel())
		assert.Equal(t, LogLevelDebug, LoggingConfig{Level: "debug"}.GetLevel())
	})
}
