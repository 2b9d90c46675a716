package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

const (
	// DefaultUnsplashURL is the Unsplash API root
	DefaultUnsplashURL = "https://api.unsplash.com"

	// fallbackQuery replaces hints too short to search for
	fallbackQuery = "business professional"

	// maxImageBytes caps downloaded image size
	maxImageBytes = 10 << 20
)

// UnsplashLookup searches Unsplash for a landscape photo matching the hint
type UnsplashLookup struct {
	client    ports.HTTPClient
	accessKey string
	baseURL   string
	logger    ports.Logger
}

// UnsplashOption configures an UnsplashLookup
type UnsplashOption func(*UnsplashLookup)

// WithBaseURL points the lookup at another API root
func WithBaseURL(baseURL string) UnsplashOption {
	return func(u *UnsplashLookup) {
		u.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger ports.Logger) UnsplashOption {
	return func(u *UnsplashLookup) {
		if logger != nil {
			u.logger = logger
		}
	}
}

// NewUnsplashLookup creates an Unsplash lookup authenticated with accessKey
func NewUnsplashLookup(client ports.HTTPClient, accessKey string, opts ...UnsplashOption) *UnsplashLookup {
	u := &UnsplashLookup{
		client:    client,
		accessKey: accessKey,
		baseURL:   DefaultUnsplashURL,
		logger:    ports.NopLogger{},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Name returns "unsplash"
func (u *UnsplashLookup) Name() string {
	return "unsplash"
}

type searchResponse struct {
	Results []struct {
		ID   string `json:"id"`
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// Find searches for the hint and downloads the first result not listed in
// query.Exclude. Results come back in a stable order, so one deck asks for
// the same photos every time.
func (u *UnsplashLookup) Find(ctx context.Context, query entities.ImageQuery) (*entities.SlideImage, error) {
	if u.accessKey == "" {
		u.logger.Debug("no Unsplash access key configured")
		return nil, nil
	}

	search := SearchQuery(query.Hint)

	endpoint := u.baseURL + "/search/photos?" + url.Values{
		"query":       {search},
		"orientation": {"landscape"},
		"per_page":    {"5"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "search request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.ExternalServiceError{
			Service: u.Name(),
			Message: fmt.Sprintf("search returned status %d", resp.StatusCode),
		}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "decoding search response", Cause: err}
	}

	id, imageURL := pickResult(result, query)
	if imageURL == "" {
		u.logger.Debug("no Unsplash results for %q", search)
		return nil, nil
	}

	img, err := u.download(ctx, imageURL)
	if img != nil {
		img.ID = id
	}
	return img, err
}

// pickResult returns the first result the deck has not used yet. When every
// result is used the first one is repeated rather than leaving the slide bare.
func pickResult(result searchResponse, query entities.ImageQuery) (id, imageURL string) {
	for _, r := range result.Results {
		if r.URLs.Regular == "" {
			continue
		}
		if imageURL == "" {
			id, imageURL = r.ID, r.URLs.Regular
		}
		if !query.Excludes(r.ID) {
			return r.ID, r.URLs.Regular
		}
	}
	return id, imageURL
}

func (u *UnsplashLookup) download(ctx context.Context, imageURL string) (*entities.SlideImage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating image request: %w", err)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "image download failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &entities.ExternalServiceError{
			Service: u.Name(),
			Message: fmt.Sprintf("image download returned status %d", resp.StatusCode),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "reading image", Cause: err}
	}
	if len(data) > maxImageBytes {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "image exceeds size limit"}
	}
	if len(data) == 0 {
		return nil, nil
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, &entities.ExternalServiceError{Service: u.Name(), Message: "download is not an image: " + mimeType}
	}

	return &entities.SlideImage{Data: data, MimeType: mimeType, Source: u.Name()}, nil
}

// SearchQuery normalizes an image hint into a search string
func SearchQuery(hint string) string {
	query := strings.Join(strings.Fields(hint), " ")
	if utf8.RuneCountInString(query) < 3 {
		return fallbackQuery
	}
	return query
}

// Ensure UnsplashLookup implements ports.ImageLookup
var _ ports.ImageLookup = (*UnsplashLookup)(nil)
