package ports

import (
	"context"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// ContentSource produces a content plan for a topic.
// Errors are returned unchanged to the caller, typically
// *entities.ExternalServiceError or *entities.MalformedResponseError.
type ContentSource interface {
	Generate(ctx context.Context, topic string) (*entities.ContentPlan, error)
}

// OutlineParser turns a Markdown outline into a content plan
type OutlineParser interface {
	Parse(topic string, content []byte) (*entities.ContentPlan, error)
}
