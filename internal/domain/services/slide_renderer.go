package services

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// SlideRenderer maps one SlideSpec to a RenderedSlide: it picks the layout,
// cleans and fits the body text and optionally attaches an image.
// It holds only configuration and is safe for concurrent use.
type SlideRenderer struct {
	layout       entities.LayoutConfig
	images       ports.ImageLookup
	imageTimeout time.Duration
	logger       ports.Logger
}

// NewSlideRenderer creates a slide renderer. images may be nil to disable image lookup.
func NewSlideRenderer(layout entities.LayoutConfig, images ports.ImageLookup, imageTimeout time.Duration, logger ports.Logger) *SlideRenderer {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &SlideRenderer{
		layout:       layout,
		images:       images,
		imageTimeout: imageTimeout,
		logger:       logger,
	}
}

// Render lays out a single slide for the given theme
func (r *SlideRenderer) Render(ctx context.Context, index int, spec entities.SlideSpec, theme entities.Theme) (entities.RenderedSlide, error) {
	if err := spec.Validate(index); err != nil {
		return entities.RenderedSlide{}, err
	}

	lines := cleanBodyLines(spec.BodyLines())
	if r.layout.DedupeBullets {
		lines = dedupeLines(lines)
	}

	slide := entities.RenderedSlide{
		Index:  index,
		Layout: entities.LayoutTitleOnly,
		Title:  strings.Join(strings.Fields(spec.Title()), " "),
	}

	if len(lines) > 0 {
		limited, dropped := limitLines(lines, r.maxBullets(theme))
		bullets := make([]string, len(limited))
		for i, line := range limited {
			if dropped > 0 && i == len(limited)-1 {
				bullets[i] = line
				continue
			}
			bullets[i] = fitLine(line, r.layout.GetMaxBulletWords(), r.layout.GetMaxBulletChars())
		}

		slide.Layout = entities.LayoutTitleContent
		slide.Bullets = bullets
		slide.Truncated = dropped
	}

	if spec.HasImageHint() {
		slide.Image = r.lookupImage(ctx, index, spec.ImageHint(), theme)
	}

	return slide, nil
}

// maxBullets is the smaller of the theme and layout caps
func (r *SlideRenderer) maxBullets(theme entities.Theme) int {
	limit := r.layout.GetMaxBullets()
	if theme.MaxBullets > 0 && theme.MaxBullets < limit {
		limit = theme.MaxBullets
	}
	return limit
}

// lookupImage runs the image lookup under the configured timeout.
// Failures are logged and the slide renders without an image.
func (r *SlideRenderer) lookupImage(ctx context.Context, index int, hint string, theme entities.Theme) *entities.SlideImage {
	if r.images == nil {
		return nil
	}

	query := entities.ImageQuery{
		Hint:        strings.TrimSpace(hint),
		AccentColor: theme.AccentColor,
	}

	used := usedImagesFrom(ctx)
	if used != nil && len(used.ids) > 0 {
		query.Exclude = slices.Clone(used.ids)
	}

	if r.imageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.imageTimeout)
		defer cancel()
	}

	image, err := r.images.Find(ctx, query)
	if err != nil {
		r.logger.Warn("Image lookup via %s failed for slide %d: %v", r.images.Name(), index+1, err)
		return nil
	}

	if image == nil || len(image.Data) == 0 {
		r.logger.Debug("No image found for slide %d (hint %q)", index+1, hint)
		return nil
	}

	if used != nil && image.ID != "" {
		used.ids = append(used.ids, image.ID)
	}

	return image
}

// usedImages collects the image IDs placed in one deck so later slides
// can ask for different pictures. Slides of a deck render one at a time.
type usedImages struct {
	ids []string
}

type usedImagesKey struct{}

// withUsedImages starts an empty image history for one assembly
func withUsedImages(ctx context.Context) context.Context {
	return context.WithValue(ctx, usedImagesKey{}, &usedImages{})
}

func usedImagesFrom(ctx context.Context) *usedImages {
	used, _ := ctx.Value(usedImagesKey{}).(*usedImages)
	return used
}

// Ensure SlideRenderer implements ports.SlideRenderer
var _ ports.SlideRenderer = (*SlideRenderer)(nil)
