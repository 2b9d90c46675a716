package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// ImageLookup finds an image for a slide image hint.
// A nil image with a nil error means nothing was found.
type ImageLookup interface {
	Find(ctx context.Context, query entities.ImageQuery) (*entities.SlideImage, error)

	// Name identifies the lookup in logs and in SlideImage.Source
	Name() string
}
