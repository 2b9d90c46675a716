package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

type MockImageLookup struct {
	mock.Mock
}

func (m *MockImageLookup) Find(ctx context.Context, query entities.ImageQuery) (*entities.SlideImage, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SlideImage), args.Error(1)
}

func (m *MockImageLookup) Name() string {
	return "mock"
}

type MockSlideRenderer struct {
	mock.Mock
}

func (m *MockSlideRenderer) Render(ctx context.Context, index int, spec entities.SlideSpec, theme entities.Theme) (entities.RenderedSlide, error) {
	args := m.Called(ctx, index, spec, theme)
	return args.Get(0).(entities.RenderedSlide), args.Error(1)
}

type MockContentSource struct {
	mock.Mock
}

func (m *MockContentSource) Generate(ctx context.Context, topic string) (*entities.ContentPlan, error) {
	args := m.Called(ctx, topic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ContentPlan), args.Error(1)
}

type MockThemeLoader struct {
	mock.Mock
}

func (m *MockThemeLoader) Load(ctx context.Context, name string) (*entities.Theme, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Theme), args.Error(1)
}

func (m *MockThemeLoader) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockThemeLoader) Exists(ctx context.Context, name string) bool {
	args := m.Called(ctx, name)
	return args.Bool(0)
}

// stubSerializer writes slide titles one per line
type stubSerializer struct {
	format string
	err    error
}

func (s *stubSerializer) Format() string      { return s.format }
func (s *stubSerializer) ContentType() string { return "text/plain" }
func (s *stubSerializer) Extension() string   { return "." + s.format }

func (s *stubSerializer) Serialize(deck *entities.Deck) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []byte
	for _, slide := range deck.Slides {
		out = append(out, slide.Title...)
		out = append(out, '\n')
	}
	return out, nil
}

type stubRegistry struct {
	serializers map[string]ports.DeckSerializer
}

func newStubRegistry(serializers ...ports.DeckSerializer) *stubRegistry {
	r := &stubRegistry{serializers: make(map[string]ports.DeckSerializer)}
	for _, s := range serializers {
		r.serializers[s.Format()] = s
	}
	return r
}

func (r *stubRegistry) Get(format string) (ports.DeckSerializer, error) {
	s, ok := r.serializers[format]
	if !ok {
		return nil, &entities.ValidationError{Index: -1, Field: "format", Reason: "is not supported: " + format}
	}
	return s, nil
}

func (r *stubRegistry) Formats() []string {
	formats := make([]string, 0, len(r.serializers))
	for format := range r.serializers {
		formats = append(formats, format)
	}
	return formats
}
