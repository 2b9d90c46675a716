package images

import (
	"context"
	"fmt"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// lastLookupTimeout bounds the final lookup once the caller's deadline has passed
const lastLookupTimeout = 2 * time.Second

// FallbackLookup tries each lookup in order and returns the first image found
type FallbackLookup struct {
	lookups []ports.ImageLookup
	logger  ports.Logger
}

// NewFallbackLookup chains lookups
func NewFallbackLookup(logger ports.Logger, lookups ...ports.ImageLookup) *FallbackLookup {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &FallbackLookup{lookups: lookups, logger: logger}
}

// Name joins the chained lookup names
func (f *FallbackLookup) Name() string {
	names := make([]string, 0, len(f.lookups))
	for _, l := range f.lookups {
		names = append(names, l.Name())
	}
	return strings.Join(names, "+")
}

// Find returns the first image found. When nothing is found the last
// lookup error, if any, is returned.
//
// An expired deadline does not skip the last lookup: a slow remote lookup
// that used up the time still falls back to the final one, which then runs
// under its own short timeout. Cancellation stops the chain.
func (f *FallbackLookup) Find(ctx context.Context, query entities.ImageQuery) (*entities.SlideImage, error) {
	var lastErr error

	for i, lookup := range f.lookups {
		lookupCtx := ctx
		if err := ctx.Err(); err != nil {
			if !errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if i < len(f.lookups)-1 {
				lastErr = err
				continue
			}

			var cancel context.CancelFunc
			lookupCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), lastLookupTimeout)
			defer cancel()
		}

		img, err := lookup.Find(lookupCtx, query)
		if err != nil {
			f.logger.Warn("image lookup %s failed for %q: %v", lookup.Name(), query.Hint, err)
			lastErr = err
			continue
		}
		if img != nil {
			return img, nil
		}
	}

	return nil, lastErr
}

// New builds the image lookup described by the configuration. It returns
// nil when images are disabled. The Unsplash key is read from the
// environment variable named in the configuration; without it only
// placeholders are produced.
func New(cfg entities.ImagesConfig, client ports.HTTPClient, logger ports.Logger) (ports.ImageLookup, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	if logger == nil {
		logger = ports.NopLogger{}
	}

	placeholder, err := NewPlaceholderLookup()
	if err != nil {
		return nil, err
	}

	switch cfg.GetProvider() {
	case "placeholder":
		return placeholder, nil
	case "unsplash":
		key := os.Getenv(cfg.GetAccessKeyEnv())
		if key == "" {
			logger.Info("%s not set, using placeholder images", cfg.GetAccessKeyEnv())
			return placeholder, nil
		}
		unsplash := NewUnsplashLookup(client, key, WithLogger(logger))
		return NewFallbackLookup(logger, unsplash, placeholder), nil
	default:
		return nil, fmt.Errorf("unknown image provider: %s", cfg.Provider)
	}
}

// Ensure FallbackLookup implements ports.ImageLookup
var _ ports.ImageLookup = (*FallbackLookup)(nil)
