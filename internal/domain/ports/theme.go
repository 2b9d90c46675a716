package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// ThemeLoader loads custom themes from the filesystem
type ThemeLoader interface {
	// Load loads a theme by name
	Load(ctx context.Context, name string) (*entities.Theme, error)

	// List returns the names of all custom themes found
	List(ctx context.Context) ([]string, error)

	// Exists checks if a custom theme exists
	Exists(ctx context.Context, name string) bool
}

// ThemeRegistry resolves theme names to themes, built-in and custom
type ThemeRegistry interface {
	// Get returns *entities.ThemeNotFoundError for unknown names
	Get(ctx context.Context, name string) (entities.Theme, error)

	// List returns all known themes sorted by name
	List(ctx context.Context) ([]entities.Theme, error)
}
