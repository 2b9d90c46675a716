package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// ConfigFile is the file describing a theme inside its directory
const ConfigFile = "theme.toml"

var themeName = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// DirectoryLoader loads themes from <baseDir>/<name>/theme.toml
type DirectoryLoader struct {
	baseDir string
}

// NewDirectoryLoader creates a new directory-based theme loader
func NewDirectoryLoader(baseDir string) *DirectoryLoader {
	return &DirectoryLoader{baseDir: baseDir}
}

// Load loads a theme by name. Keys missing from theme.toml are taken from
// the parent theme, or else from the built-in preset of the same name, or
// else from the default preset.
func (l *DirectoryLoader) Load(ctx context.Context, name string) (*entities.Theme, error) {
	return l.loadWithHistory(ctx, name, make(map[string]bool))
}

// loadWithHistory loads a theme while tracking visited themes to prevent circular references
func (l *DirectoryLoader) loadWithHistory(ctx context.Context, name string, visited map[string]bool) (*entities.Theme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !themeName.MatchString(name) {
		return nil, fmt.Errorf("invalid theme name: %q", name)
	}

	// Check for circular reference
	if visited[name] {
		return nil, fmt.Errorf("circular reference detected in theme hierarchy: %s", name)
	}
	visited[name] = true

	configPath := filepath.Join(l.baseDir, name, ConfigFile)
	data, err := os.ReadFile(configPath) // #nosec G304 - name validated above
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &entities.ThemeNotFoundError{Name: name}
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}

	var header struct {
		Parent string `toml:"parent"`
	}
	if _, err := toml.Decode(string(data), &header); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}

	base, err := l.base(ctx, name, header.Parent, visited)
	if err != nil {
		return nil, err
	}

	// Decoding onto the base keeps every key the file leaves out
	theme := base
	meta, err := toml.Decode(string(data), &theme)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFile, err)
	}

	theme.Name = name
	if !meta.IsDefined("display_name") {
		theme.DisplayName = DisplayName(name)
	}
	if !meta.IsDefined("description") && header.Parent == "" {
		if _, builtIn := entities.BuiltInTheme(name); !builtIn {
			theme.Description = ""
		}
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("theme validation failed: %w", err)
	}

	return &theme, nil
}

// base resolves the theme a file is layered on
func (l *DirectoryLoader) base(ctx context.Context, name, parent string, visited map[string]bool) (entities.Theme, error) {
	if parent == "" {
		if preset, ok := entities.BuiltInTheme(name); ok {
			return preset, nil
		}
		return entities.DefaultTheme(), nil
	}

	if l.Exists(ctx, parent) {
		loaded, err := l.loadWithHistory(ctx, parent, visited)
		if err != nil {
			return entities.Theme{}, fmt.Errorf("loading parent theme '%s': %w", parent, err)
		}
		return *loaded, nil
	}

	if preset, ok := entities.BuiltInTheme(parent); ok {
		return preset, nil
	}

	return entities.Theme{}, fmt.Errorf("loading parent theme '%s': %w", parent, &entities.ThemeNotFoundError{Name: parent})
}

// List returns the names of theme directories holding a theme.toml, sorted
func (l *DirectoryLoader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading themes directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() || !themeName.MatchString(entry.Name()) {
			continue
		}
		if l.Exists(ctx, entry.Name()) {
			names = append(names, entry.Name())
		}
	}

	return names, nil
}

// Exists checks if a theme directory with a theme.toml exists
func (l *DirectoryLoader) Exists(ctx context.Context, name string) bool {
	if !themeName.MatchString(name) {
		return false
	}
	info, err := os.Stat(filepath.Join(l.baseDir, name, ConfigFile))
	return err == nil && !info.IsDir()
}

// DisplayName derives a human name from a theme identifier
func DisplayName(name string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(name, "-", " "))
}

// Ensure DirectoryLoader implements ThemeLoader
var _ ports.ThemeLoader = (*DirectoryLoader)(nil)
