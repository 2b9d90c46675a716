package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
	"github.com/fredcamaral/deckgenie/internal/test/builders"
)

func newTestDeckService(source ports.ContentSource, serializers ...ports.DeckSerializer) *DeckService {
	if len(serializers) == 0 {
		serializers = []ports.DeckSerializer{&stubSerializer{format: "pptx"}}
	}
	return NewDeckService(
		source,
		newAssembler(),
		NewThemeService(nil, nil),
		newStubRegistry(serializers...),
		nil,
		nil,
	)
}

func examplePlan() *entities.ContentPlan {
	return builders.NewPlanBuilder().
		WithTopic("Remote work").
		WithSlide("Remote Work Today", "Point A", "Point B").
		WithSlide("Next Steps").
		Build()
}

func TestValidateTopic(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		want    string
		wantErr bool
	}{
		{name: "trimmed", topic: "  Remote work  ", want: "Remote work"},
		{name: "empty", topic: "   ", wantErr: true},
		{name: "at limit", topic: strings.Repeat("é", MaxTopicLength), want: strings.Repeat("é", MaxTopicLength)},
		{name: "too long", topic: strings.Repeat("x", MaxTopicLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateTopic(tt.topic)
			if tt.wantErr {
				var validationErr *entities.ValidationError
				require.True(t, errors.As(err, &validationErr))
				assert.Equal(t, "topic", validationErr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeckService_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("builds artifact", func(t *testing.T) {
		source := &MockContentSource{}
		source.On("Generate", mock.Anything, "Remote work").Return(examplePlan(), nil)

		artifact, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: " Remote work "})

		require.NoError(t, err)
		assert.Equal(t, "pptx", artifact.Format)
		assert.Equal(t, "remote-work-today.pptx", artifact.FileName)
		assert.Equal(t, 2, artifact.SlideCount)
		assert.Equal(t, "Remote Work Today\nNext Steps\n", string(artifact.Data))
		source.AssertExpectations(t)
	})

	t.Run("source errors pass through unchanged", func(t *testing.T) {
		sourceErrs := []error{
			&entities.ExternalServiceError{Service: "gemini", Message: "quota exceeded"},
			&entities.MalformedResponseError{Reason: "no slide headings"},
		}

		for _, sourceErr := range sourceErrs {
			source := &MockContentSource{}
			source.On("Generate", mock.Anything, "topic").Return(nil, sourceErr)

			artifact, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: "topic"})

			assert.Nil(t, artifact)
			assert.Same(t, sourceErr, err)
		}
	})

	t.Run("empty plan from source", func(t *testing.T) {
		source := &MockContentSource{}
		source.On("Generate", mock.Anything, "topic").Return(entities.NewContentPlan("topic"), nil)

		artifact, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: "topic"})

		assert.Nil(t, artifact)
		assert.ErrorIs(t, err, entities.ErrEmptyPlan)
	})

	t.Run("invalid topic skips source", func(t *testing.T) {
		source := &MockContentSource{}

		_, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: ""})

		assert.True(t, entities.IsClientError(err))
		source.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("unknown theme skips source", func(t *testing.T) {
		source := &MockContentSource{}

		_, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: "topic", Theme: "neon"})

		var themeErr *entities.ThemeNotFoundError
		require.True(t, errors.As(err, &themeErr))
		source.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("unsupported format", func(t *testing.T) {
		source := &MockContentSource{}

		_, err := newTestDeckService(source).Generate(ctx, ports.DeckRequest{Topic: "topic", Format: "key"})

		assert.True(t, entities.IsClientError(err))
	})

	t.Run("no source configured", func(t *testing.T) {
		_, err := newTestDeckService(nil).Generate(ctx, ports.DeckRequest{Topic: "topic"})

		var serviceErr *entities.ExternalServiceError
		assert.True(t, errors.As(err, &serviceErr))
	})
}

func TestDeckService_Build(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit format", func(t *testing.T) {
		service := newTestDeckService(nil, &stubSerializer{format: "pptx"}, &stubSerializer{format: "pdf"})

		artifact, err := service.Build(ctx, examplePlan(), "business", "pdf")

		require.NoError(t, err)
		assert.Equal(t, "pdf", artifact.Format)
		assert.Equal(t, "remote-work-today.pdf", artifact.FileName)
	})

	t.Run("serializer failure", func(t *testing.T) {
		service := newTestDeckService(nil, &stubSerializer{format: "pptx", err: errors.New("disk full")})

		artifact, err := service.Build(ctx, examplePlan(), "", "")

		assert.Nil(t, artifact)
		var assemblyErr *entities.AssemblyError
		require.True(t, errors.As(err, &assemblyErr))
		assert.Equal(t, -1, assemblyErr.Index)
	})

	t.Run("configured defaults", func(t *testing.T) {
		config := &entities.Config{
			Theme:  entities.ThemeConfig{Name: "executive"},
			Output: entities.OutputConfig{Format: "pdf"},
		}
		service := NewDeckService(nil, newAssembler(), NewThemeService(nil, nil),
			newStubRegistry(&stubSerializer{format: "pdf"}), config, nil)

		artifact, err := service.Build(ctx, examplePlan(), "", "")

		require.NoError(t, err)
		assert.Equal(t, "pdf", artifact.Format)
	})
}

func TestDeckService_Themes(t *testing.T) {
	themes, err := newTestDeckService(nil).Themes(context.Background())

	require.NoError(t, err)
	assert.Len(t, themes, len(entities.BuiltInThemeNames()))
}
