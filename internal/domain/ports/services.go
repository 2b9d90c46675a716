package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// DeckRequest describes one deck generation request
type DeckRequest struct {
	Topic string
	// Theme is a theme name; empty selects the configured default
	Theme string
	// Format is a serializer format name; empty selects the configured default
	Format string
}

// DeckService runs the whole pipeline from topic to serialized artifact
type DeckService interface {
	// Generate asks the content source for a plan, assembles and serializes it
	Generate(ctx context.Context, req DeckRequest) (*entities.Artifact, error)

	// Build assembles and serializes an existing plan
	Build(ctx context.Context, plan *entities.ContentPlan, themeName, format string) (*entities.Artifact, error)

	// Themes lists the available themes
	Themes(ctx context.Context) ([]entities.Theme, error)

	// Formats lists the supported output formats
	Formats() []string
}
