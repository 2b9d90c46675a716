package entities

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Theme     ThemeConfig     `toml:"theme"`
	Generator GeneratorConfig `toml:"generator"`
	Images    ImagesConfig    `toml:"images"`
	Layout    LayoutConfig    `toml:"layout"`
	Output    OutputConfig    `toml:"output"`
	Logging   LoggingConfig   `toml:"logging"`
}

// Validate validates the entire configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Theme.Validate(); err != nil {
		return fmt.Errorf("theme config: %w", err)
	}

	if err := c.Generator.Validate(); err != nil {
		return fmt.Errorf("generator config: %w", err)
	}

	if err := c.Images.Validate(); err != nil {
		return fmt.Errorf("images config: %w", err)
	}

	if err := c.Layout.Validate(); err != nil {
		return fmt.Errorf("layout config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string   `toml:"host"`
	Port            int      `toml:"port"`
	ReadTimeout     int      `toml:"read_timeout"`
	WriteTimeout    int      `toml:"write_timeout"`
	ShutdownTimeout int      `toml:"shutdown_timeout"`
	Environment     string   `toml:"environment"`
	CORSOrigins     []string `toml:"cors_origins"`
	RateLimit       int      `toml:"rate_limit"` // requests per minute per client
}

// Validate validates server configuration
func (s ServerConfig) Validate() error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New("port must be between 0 and 65535")
	}

	if s.Host != "" {
		if ip := net.ParseIP(s.Host); ip == nil {
			if _, err := net.LookupHost(s.Host); err != nil {
				return fmt.Errorf("invalid host: %w", err)
			}
		}
	}

	if s.ReadTimeout < 0 {
		return errors.New("read timeout must be non-negative")
	}

	if s.WriteTimeout < 0 {
		return errors.New("write timeout must be non-negative")
	}

	if s.ShutdownTimeout < 0 {
		return errors.New("shutdown timeout must be non-negative")
	}

	if s.RateLimit < 0 {
		return errors.New("rate limit must be non-negative")
	}

	for _, origin := range s.CORSOrigins {
		if origin == "" {
			return errors.New("CORS origin cannot be empty")
		}
		// Allow wildcard origin for development
		if origin == "*" {
			continue
		}
		if len(origin) < 7 || (!strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://")) {
			return fmt.Errorf("invalid CORS origin format: %s (must start with http:// or https://)", origin)
		}
	}

	return nil
}

// GetReadTimeout returns the read timeout as a duration
func (s ServerConfig) GetReadTimeout() time.Duration {
	if s.ReadTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(s.ReadTimeout) * time.Second
}

// GetWriteTimeout returns the write timeout as a duration.
// Generation calls a remote model, so the default is generous.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	if s.WriteTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(s.WriteTimeout) * time.Second
}

// GetShutdownTimeout returns the shutdown timeout as a duration
func (s ServerConfig) GetShutdownTimeout() time.Duration {
	if s.ShutdownTimeout <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.ShutdownTimeout) * time.Second
}

// GetCORSOrigins returns CORS origins with defaults if empty
func (s ServerConfig) GetCORSOrigins() []string {
	if len(s.CORSOrigins) == 0 {
		return []string{
			"http://localhost:8080",
			"http://127.0.0.1:8080",
		}
	}
	return s.CORSOrigins
}

// GetRateLimit returns the per-client request limit per minute
func (s ServerConfig) GetRateLimit() int {
	if s.RateLimit <= 0 {
		return 30
	}
	return s.RateLimit
}

// IsDevelopment returns true if the server is running in development mode
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == "development" || s.Environment == ""
}

// ThemeConfig contains theme configuration
type ThemeConfig struct {
	Name       string `toml:"name"`
	CustomPath string `toml:"custom_path"`
}

// Validate validates theme configuration
func (t ThemeConfig) Validate() error {
	if t.Name == "" {
		return errors.New("theme name cannot be empty")
	}

	if t.CustomPath != "" {
		if !filepath.IsAbs(t.CustomPath) {
			return errors.New("custom theme path must be absolute")
		}

		if _, err := os.Stat(t.CustomPath); os.IsNotExist(err) {
			return fmt.Errorf("custom theme path does not exist: %s", t.CustomPath)
		}
	}

	return nil
}

// GeneratorConfig configures the generative-AI content source
type GeneratorConfig struct {
	Provider       string  `toml:"provider"` // gemini or file
	Model          string  `toml:"model"`
	APIKeyEnv      string  `toml:"api_key_env"`
	Temperature    float32 `toml:"temperature"`
	MaxSlides      int     `toml:"max_slides"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Validate validates generator configuration
func (g GeneratorConfig) Validate() error {
	switch g.Provider {
	case "", "gemini", "file":
	default:
		return fmt.Errorf("unknown generator provider: %s (must be gemini or file)", g.Provider)
	}

	if g.Temperature < 0 || g.Temperature > 2 {
		return errors.New("temperature must be between 0 and 2")
	}

	if g.MaxSlides < 0 {
		return errors.New("max slides must be non-negative")
	}

	if g.TimeoutSeconds < 0 {
		return errors.New("generator timeout must be non-negative")
	}

	return nil
}

// GetProvider returns the provider with default
func (g GeneratorConfig) GetProvider() string {
	if g.Provider == "" {
		return "gemini"
	}
	return g.Provider
}

// GetModel returns the model name with default
func (g GeneratorConfig) GetModel() string {
	if g.Model == "" {
		return "gemini-1.5-flash"
	}
	return g.Model
}

// GetAPIKeyEnv returns the name of the variable holding the API key
func (g GeneratorConfig) GetAPIKeyEnv() string {
	if g.APIKeyEnv == "" {
		return "GEMINI_API_KEY"
	}
	return g.APIKeyEnv
}

// GetMaxSlides returns the slide cap with default (10)
func (g GeneratorConfig) GetMaxSlides() int {
	if g.MaxSlides <= 0 {
		return 10
	}
	return g.MaxSlides
}

// GetTimeout returns the generation timeout as a duration
func (g GeneratorConfig) GetTimeout() time.Duration {
	if g.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// ImagesConfig configures the optional image lookup
type ImagesConfig struct {
	Enabled      bool   `toml:"enabled"`
	Provider     string `toml:"provider"` // unsplash, placeholder
	TimeoutMs    int    `toml:"timeout_ms"`
	AccessKeyEnv string `toml:"access_key_env"`
}

// Validate validates images configuration
func (i ImagesConfig) Validate() error {
	switch i.Provider {
	case "", "unsplash", "placeholder":
	default:
		return fmt.Errorf("unknown image provider: %s (must be unsplash or placeholder)", i.Provider)
	}

	if i.TimeoutMs < 0 {
		return errors.New("image timeout must be non-negative")
	}

	return nil
}

// GetProvider returns the provider with default
func (i ImagesConfig) GetProvider() string {
	if i.Provider == "" {
		return "placeholder"
	}
	return i.Provider
}

// GetTimeout returns the lookup timeout as a duration
func (i ImagesConfig) GetTimeout() time.Duration {
	if i.TimeoutMs <= 0 {
		return 5 * time.Second
	}
	return time.Duration(i.TimeoutMs) * time.Millisecond
}

// GetAccessKeyEnv returns the name of the variable holding the Unsplash key
func (i ImagesConfig) GetAccessKeyEnv() string {
	if i.AccessKeyEnv == "" {
		return "UNSPLASH_API_KEY"
	}
	return i.AccessKeyEnv
}

// LayoutConfig holds the text overflow limits applied by the slide renderer
type LayoutConfig struct {
	MaxBullets     int  `toml:"max_bullets"`
	MaxBulletChars int  `toml:"max_bullet_chars"`
	MaxBulletWords int  `toml:"max_bullet_words"`
	DedupeBullets  bool `toml:"dedupe_bullets"`
}

// Validate validates layout configuration
func (l LayoutConfig) Validate() error {
	if l.MaxBullets < 0 || l.MaxBulletChars < 0 || l.MaxBulletWords < 0 {
		return errors.New("layout limits must be non-negative")
	}

	if l.MaxBullets == 1 {
		return errors.New("max bullets must be at least 2 to leave room for the overflow indicator")
	}

	if l.MaxBulletChars > 0 && l.MaxBulletChars < 10 {
		return errors.New("max bullet chars must be at least 10")
	}

	return nil
}

// GetMaxBullets returns the bullet cap with default (5)
func (l LayoutConfig) GetMaxBullets() int {
	if l.MaxBullets <= 0 {
		return 5
	}
	return l.MaxBullets
}

// GetMaxBulletChars returns the per-bullet character cap with default (100)
func (l LayoutConfig) GetMaxBulletChars() int {
	if l.MaxBulletChars <= 0 {
		return 100
	}
	return l.MaxBulletChars
}

// GetMaxBulletWords returns the per-bullet word cap with default (20)
func (l LayoutConfig) GetMaxBulletWords() int {
	if l.MaxBulletWords <= 0 {
		return 20
	}
	return l.MaxBulletWords
}

// OutputConfig controls deck serialization defaults
type OutputConfig struct {
	Format    string `toml:"format"` // pptx or pdf
	Directory string `toml:"directory"`
}

// Validate validates output configuration
func (o OutputConfig) Validate() error {
	switch o.Format {
	case "", "pptx", "pdf":
	default:
		return fmt.Errorf("unsupported output format: %s (must be pptx or pdf)", o.Format)
	}
	return nil
}

// GetFormat returns the output format with default
func (o OutputConfig) GetFormat() string {
	if o.Format == "" {
		return "pptx"
	}
	return o.Format
}

// GetDirectory returns the output directory with default
func (o OutputConfig) GetDirectory() string {
	if o.Directory == "" {
		return "."
	}
	return o.Directory
}

// LogLevel represents logging level
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // debug, info, warn, error
	Verbose    bool   `toml:"verbose"`     // Enable verbose logging
	JSONFormat bool   `toml:"json_format"` // Output logs in JSON format
	File       string `toml:"file"`        // Log to file (optional)
}

// Validate validates logging configuration
func (l LoggingConfig) Validate() error {
	switch LogLevel(l.Level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
	case "":
		// Empty is okay, will use default
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", l.Level)
	}

	if l.File != "" {
		if !filepath.IsAbs(l.File) {
			return errors.New("log file path must be absolute")
		}

		dir := filepath.Dir(l.File)
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("log file directory does not exist: %s", dir)
		}
	}

	return nil
}

// GetLevel returns the log level with default
func (l LoggingConfig) GetLevel() LogLevel {
	if l.Level == "" {
		return LogLevelInfo
	}
	return LogLevel(l.Level)
}
