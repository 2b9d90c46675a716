package entities

import "slices"

// Layout identifies the slide layout chosen by the renderer
type Layout string

const (
	// LayoutTitleOnly is used for slides without body lines
	LayoutTitleOnly Layout = "title_only"
	// LayoutTitleContent is used for slides with a title and bullet lines
	LayoutTitleContent Layout = "title_content"
)

// ImageQuery asks an image lookup for a picture matching a slide
type ImageQuery struct {
	Hint string
	// AccentColor is the deck theme accent, used by generated images
	AccentColor string
	// Exclude lists image IDs already placed in the deck. Lookups that
	// pick from several candidates prefer one not listed here.
	Exclude []string
}

// Excludes returns true if id is listed in Exclude
func (q ImageQuery) Excludes(id string) bool {
	return slices.Contains(q.Exclude, id)
}

// SlideImage is image data attached to a rendered slide
type SlideImage struct {
	Data     []byte
	MimeType string
	// Source names the lookup that produced the image, e.g. "unsplash"
	Source string
	// ID identifies the picture at its source. Generated images leave it empty.
	ID string
}

// RenderedSlide is a slide with its layout decided and its text fitted
type RenderedSlide struct {
	// Index is the slide position in the deck (0-based)
	Index   int
	Layout  Layout
	Title   string
	Bullets []string

	// Truncated counts the body lines dropped by the overflow policy
	Truncated int

	Image *SlideImage
}

// HasImage returns true if the slide carries image data
func (s RenderedSlide) HasImage() bool {
	return s.Image != nil && len(s.Image.Data) > 0
}

// Deck is an ordered sequence of rendered slides sharing one theme
type Deck struct {
	Title  string
	Theme  Theme
	Slides []RenderedSlide
}

// NewDeck creates an empty deck
func NewDeck(title string, theme Theme) *Deck {
	return &Deck{
		Title:  title,
		Theme:  theme,
		Slides: []RenderedSlide{},
	}
}

// Append returns a new deck with the slide added at the end. The receiver is
// left unchanged.
func (d *Deck) Append(slide RenderedSlide) *Deck {
	slides := make([]RenderedSlide, len(d.Slides), len(d.Slides)+1)
	copy(slides, d.Slides)
	slides = append(slides, slide)

	return &Deck{
		Title:  d.Title,
		Theme:  d.Theme,
		Slides: slides,
	}
}

// Len returns the number of slides in the deck
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}

// Artifact is a serialized deck ready to be handed to a host
type Artifact struct {
	Format      string
	ContentType string
	FileName    string
	Data        []byte
	SlideCount  int
}

// Size returns the artifact size in bytes
func (a *Artifact) Size() int {
	return len(a.Data)
}
