package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// MaxTopicLength is the longest topic accepted, in runes
const MaxTopicLength = 500

// DeckService runs the pipeline: content source, assembler, serializer
type DeckService struct {
	source        ports.ContentSource
	assembler     ports.DeckAssembler
	themes        ports.ThemeRegistry
	serializers   ports.SerializerRegistry
	defaultTheme  string
	defaultFormat string
	logger        ports.Logger
}

// NewDeckService creates a deck service. source may be nil for hosts that
// only build decks from existing plans.
func NewDeckService(
	source ports.ContentSource,
	assembler ports.DeckAssembler,
	themes ports.ThemeRegistry,
	serializers ports.SerializerRegistry,
	config *entities.Config,
	logger ports.Logger,
) *DeckService {
	if logger == nil {
		logger = ports.NopLogger{}
	}

	service := &DeckService{
		source:        source,
		assembler:     assembler,
		themes:        themes,
		serializers:   serializers,
		defaultTheme:  entities.DefaultThemeName,
		defaultFormat: entities.OutputConfig{}.GetFormat(),
		logger:        logger,
	}

	if config != nil {
		if config.Theme.Name != "" {
			service.defaultTheme = config.Theme.Name
		}
		service.defaultFormat = config.Output.GetFormat()
	}

	return service
}

// ValidateTopic trims a topic and checks it is non-empty and not too long
func ValidateTopic(topic string) (string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "", &entities.ValidationError{Index: -1, Field: "topic", Reason: "must not be empty"}
	}
	if utf8.RuneCountInString(topic) > MaxTopicLength {
		return "", &entities.ValidationError{
			Index:  -1,
			Field:  "topic",
			Reason: fmt.Sprintf("must be at most %d characters", MaxTopicLength),
		}
	}
	return topic, nil
}

// Generate produces a deck for a topic. Content source errors are returned unchanged.
func (s *DeckService) Generate(ctx context.Context, req ports.DeckRequest) (*entities.Artifact, error) {
	topic, err := ValidateTopic(req.Topic)
	if err != nil {
		return nil, err
	}

	if s.source == nil {
		return nil, &entities.ExternalServiceError{Service: "content", Message: "no content source configured"}
	}

	// Resolve theme and format before spending a generation call
	theme, serializer, err := s.resolve(ctx, req.Theme, req.Format)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	plan, err := s.source.Generate(ctx, topic)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("Content plan with %d slides generated in %v", plan.Len(), time.Since(start))

	return s.build(ctx, plan, theme, serializer)
}

// Build assembles and serializes an existing plan
func (s *DeckService) Build(ctx context.Context, plan *entities.ContentPlan, themeName, format string) (*entities.Artifact, error) {
	theme, serializer, err := s.resolve(ctx, themeName, format)
	if err != nil {
		return nil, err
	}
	return s.build(ctx, plan, theme, serializer)
}

// Themes lists the available themes
func (s *DeckService) Themes(ctx context.Context) ([]entities.Theme, error) {
	return s.themes.List(ctx)
}

// Formats lists the supported output formats
func (s *DeckService) Formats() []string {
	return s.serializers.Formats()
}

func (s *DeckService) resolve(ctx context.Context, themeName, format string) (entities.Theme, ports.DeckSerializer, error) {
	if themeName == "" {
		themeName = s.defaultTheme
	}
	if format == "" {
		format = s.defaultFormat
	}

	theme, err := s.themes.Get(ctx, themeName)
	if err != nil {
		return entities.Theme{}, nil, err
	}

	serializer, err := s.serializers.Get(format)
	if err != nil {
		return entities.Theme{}, nil, err
	}

	return theme, serializer, nil
}

func (s *DeckService) build(ctx context.Context, plan *entities.ContentPlan, theme entities.Theme, serializer ports.DeckSerializer) (*entities.Artifact, error) {
	deck, err := s.assembler.Assemble(ctx, plan, theme)
	if err != nil {
		return nil, err
	}

	data, err := serializer.Serialize(deck)
	if err != nil {
		return nil, &entities.AssemblyError{
			Index: -1,
			Cause: fmt.Errorf("serializing %s: %w", serializer.Format(), err),
		}
	}

	artifact := &entities.Artifact{
		Format:      serializer.Format(),
		ContentType: serializer.ContentType(),
		FileName:    Slugify(deck.Title) + serializer.Extension(),
		Data:        data,
		SlideCount:  deck.Len(),
	}

	s.logger.Info("Built %s deck '%s' with %d slides (%d bytes, theme %s)",
		artifact.Format, deck.Title, artifact.SlideCount, artifact.Size(), theme.Name)

	return artifact, nil
}

// Ensure DeckService implements ports.DeckService
var _ ports.DeckService = (*DeckService)(nil)
