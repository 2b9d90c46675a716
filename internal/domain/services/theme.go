package services

import (
	"context"
	"sort"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// ThemeService resolves theme names against custom themes first and the
// built-in presets second
type ThemeService struct {
	loader ports.ThemeLoader
	logger ports.Logger
}

// NewThemeService creates a theme service. loader may be nil when no custom
// theme directory is configured.
func NewThemeService(loader ports.ThemeLoader, logger ports.Logger) *ThemeService {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &ThemeService{
		loader: loader,
		logger: logger,
	}
}

// Get returns the named theme, or *entities.ThemeNotFoundError
func (s *ThemeService) Get(ctx context.Context, name string) (entities.Theme, error) {
	if name == "" {
		name = entities.DefaultThemeName
	}

	if s.loader != nil && s.loader.Exists(ctx, name) {
		theme, err := s.loader.Load(ctx, name)
		if err == nil {
			return *theme, nil
		}

		// A broken custom theme must not hide a built-in preset of the same name
		if builtIn, ok := entities.BuiltInTheme(name); ok {
			s.logger.Warn("Custom theme '%s' failed to load, using built-in: %v", name, err)
			return builtIn, nil
		}
		return entities.Theme{}, err
	}

	if theme, ok := entities.BuiltInTheme(name); ok {
		return theme, nil
	}

	return entities.Theme{}, &entities.ThemeNotFoundError{Name: name}
}

// List returns every available theme sorted by name. Custom themes override
// presets of the same name.
func (s *ThemeService) List(ctx context.Context) ([]entities.Theme, error) {
	themes := make(map[string]entities.Theme)
	for _, name := range entities.BuiltInThemeNames() {
		theme, _ := entities.BuiltInTheme(name)
		themes[name] = theme
	}

	if s.loader != nil {
		names, err := s.loader.List(ctx)
		if err != nil {
			s.logger.Warn("Listing custom themes failed: %v", err)
		}
		for _, name := range names {
			theme, err := s.loader.Load(ctx, name)
			if err != nil {
				s.logger.Warn("Skipping custom theme '%s': %v", name, err)
				continue
			}
			themes[name] = *theme
		}
	}

	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)

	list := make([]entities.Theme, 0, len(names))
	for _, name := range names {
		list = append(list, themes[name])
	}
	return list, nil
}

// Ensure ThemeService implements ports.ThemeRegistry
var _ ports.ThemeRegistry = (*ThemeService)(nil)
