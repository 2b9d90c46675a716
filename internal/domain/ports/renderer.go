package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// SlideRenderer decides the layout of one slide spec and fits its text to the theme
type SlideRenderer interface {
	Render(ctx context.Context, index int, spec entities.SlideSpec, theme entities.Theme) (entities.RenderedSlide, error)
}

// DeckAssembler folds a content plan into a deck
type DeckAssembler interface {
	Assemble(ctx context.Context, plan *entities.ContentPlan, theme entities.Theme) (*entities.Deck, error)
}

// DeckSerializer encodes a deck into a file format
type DeckSerializer interface {
	// Format is the short format name, e.g. "pptx"
	Format() string
	ContentType() string
	// Extension includes the leading dot
	Extension() string
	Serialize(deck *entities.Deck) ([]byte, error)
}

// SerializerRegistry resolves output format names to serializers
type SerializerRegistry interface {
	// Get returns a *entities.ValidationError for unsupported formats
	Get(format string) (DeckSerializer, error)
	Formats() []string
}
