package services

import (
	"context"
	"fmt"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// DeckAssembler folds a content plan into a deck, one rendered slide at a time
type DeckAssembler struct {
	renderer ports.SlideRenderer
}

// NewDeckAssembler creates a deck assembler around a slide renderer
func NewDeckAssembler(renderer ports.SlideRenderer) *DeckAssembler {
	return &DeckAssembler{renderer: renderer}
}

// Assemble renders every slide of the plan in order. The first failure aborts
// assembly; no partial deck is returned. Image lookups within one deck avoid
// pictures an earlier slide already uses.
func (a *DeckAssembler) Assemble(ctx context.Context, plan *entities.ContentPlan, theme entities.Theme) (*entities.Deck, error) {
	if plan.IsEmpty() {
		return nil, entities.ErrEmptyPlan
	}

	if err := theme.Validate(); err != nil {
		return nil, &entities.AssemblyError{
			Index: -1,
			Cause: fmt.Errorf("invalid theme '%s': %w", theme.Name, err),
		}
	}

	ctx = withUsedImages(ctx)

	deck := entities.NewDeck(plan.Title(), theme)
	for i, spec := range plan.Slides {
		if err := ctx.Err(); err != nil {
			return nil, &entities.AssemblyError{Index: i, Cause: err}
		}

		slide, err := a.renderer.Render(ctx, i, spec, theme)
		if err != nil {
			return nil, &entities.AssemblyError{Index: i, Cause: err}
		}

		deck = deck.Append(slide)
	}

	return deck, nil
}

// Ensure DeckAssembler implements ports.DeckAssembler
var _ ports.DeckAssembler = (*DeckAssembler)(nil)
