package builders

import (
	"fmt"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// DeckBuilder helps build rendered Deck entities for testing
type DeckBuilder struct {
	title  string
	theme  entities.Theme
	slides []entities.RenderedSlide
}

// NewDeckBuilder creates a new deck builder using the default theme
func NewDeckBuilder() *DeckBuilder {
	return &DeckBuilder{
		title: "Test Deck",
		theme: entities.DefaultTheme(),
	}
}

// WithTitle sets the deck title
func (b *DeckBuilder) WithTitle(title string) *DeckBuilder {
	b.title = title
	return b
}

// WithTheme sets the deck theme
func (b *DeckBuilder) WithTheme(theme entities.Theme) *DeckBuilder {
	b.theme = theme
	return b
}

// WithThemeName sets a built-in theme, keeping the current one if the name is unknown
func (b *DeckBuilder) WithThemeName(name string) *DeckBuilder {
	if theme, ok := entities.BuiltInTheme(name); ok {
		b.theme = theme
	}
	return b
}

// WithSlide appends a slide. Its index and layout are filled in from its
// position and bullets.
func (b *DeckBuilder) WithSlide(slide entities.RenderedSlide) *DeckBuilder {
	slide.Index = len(b.slides)
	if slide.Layout == "" {
		slide.Layout = entities.LayoutTitleOnly
		if len(slide.Bullets) > 0 {
			slide.Layout = entities.LayoutTitleContent
		}
	}
	b.slides = append(b.slides, slide)
	return b
}

// WithContentSlide appends a title and content slide
func (b *DeckBuilder) WithContentSlide(title string, bullets ...string) *DeckBuilder {
	return b.WithSlide(entities.RenderedSlide{Title: title, Bullets: bullets})
}

// WithSlideCount appends count content slides titled "Slide N"
func (b *DeckBuilder) WithSlideCount(count int) *DeckBuilder {
	start := len(b.slides)
	for i := 1; i <= count; i++ {
		b.WithContentSlide(fmt.Sprintf("Slide %d", start+i), "Point A", "Point B")
	}
	return b
}

// Build creates the final Deck through Append, so the result is built the
// same way the assembler builds decks
func (b *DeckBuilder) Build() *entities.Deck {
	deck := entities.NewDeck(b.title, b.theme)
	for _, slide := range b.slides {
		deck = deck.Append(slide)
	}
	return deck
}
