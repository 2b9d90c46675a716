package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgenie/internal/adapters/secondary/outline"
	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// MockGenerator is a mock of the Gemini model
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	args := m.Called(ctx, parts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*genai.GenerateContentResponse), args.Error(1)
}

func textResponse(texts ...string) *genai.GenerateContentResponse {
	parts := make([]genai.Part, 0, len(texts))
	for _, t := range texts {
		parts = append(parts, genai.Text(t))
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestContentSource_Generate(t *testing.T) {
	parser := outline.NewParser(10, nil)

	t.Run("parses the outline", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.Anything, []genai.Part{genai.Text("Create a presentation about: remote work")}).
			Return(textResponse("---\ntitle: Remote Work\n---\n", "## Overview\n- Flexible\nimage: laptop on desk\n## Wrap Up\n"), nil)

		source := NewWithGenerator(model, parser, time.Second, nil)
		plan, err := source.Generate(context.Background(), "remote work")
		require.NoError(t, err)

		require.Equal(t, 3, plan.Len())
		assert.Equal(t, "Remote Work", plan.Slides[0].Title())
		assert.Equal(t, []string{"Flexible"}, plan.Slides[1].BodyLines())
		assert.Equal(t, "laptop on desk", plan.Slides[1].ImageHint())
		model.AssertExpectations(t)
	})

	t.Run("transport failure", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.Anything, mock.Anything).Return(nil, errors.New("quota exceeded"))

		_, err := NewWithGenerator(model, parser, 0, nil).Generate(context.Background(), "x")

		var extErr *entities.ExternalServiceError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, "gemini", extErr.Service)
		assert.Contains(t, err.Error(), "quota exceeded")
	})

	t.Run("blocked prompt", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.Anything, mock.Anything).
			Return(nil, &genai.BlockedError{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}})

		_, err := NewWithGenerator(model, parser, 0, nil).Generate(context.Background(), "x")

		var malformedErr *entities.MalformedResponseError
		require.ErrorAs(t, err, &malformedErr)
		assert.Contains(t, malformedErr.Reason, "blocked")
	})

	t.Run("no candidates", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.Anything, mock.Anything).Return(&genai.GenerateContentResponse{}, nil)

		_, err := NewWithGenerator(model, parser, 0, nil).Generate(context.Background(), "x")

		var malformedErr *entities.MalformedResponseError
		require.ErrorAs(t, err, &malformedErr)
		assert.Equal(t, "empty response", malformedErr.Reason)
	})

	t.Run("unparsable text", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.Anything, mock.Anything).Return(textResponse("Sorry, I cannot help."), nil)

		_, err := NewWithGenerator(model, parser, 0, nil).Generate(context.Background(), "x")

		var malformedErr *entities.MalformedResponseError
		require.ErrorAs(t, err, &malformedErr)
		assert.Equal(t, "Sorry, I cannot help.", malformedErr.Raw)
	})

	t.Run("timeout applies to the call", func(t *testing.T) {
		model := new(MockGenerator)
		model.On("GenerateContent", mock.MatchedBy(func(ctx context.Context) bool {
			_, ok := ctx.Deadline()
			return ok
		}), mock.Anything).Return(textResponse("## One\n"), nil)

		_, err := NewWithGenerator(model, parser, time.Minute, nil).Generate(context.Background(), "x")
		require.NoError(t, err)
		model.AssertExpectations(t)
	})
}

func TestResponseText(t *testing.T) {
	assert.Empty(t, responseText(nil))

	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{
		nil,
		{Content: nil},
		{Content: &genai.Content{Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}}},
		{Content: &genai.Content{Parts: []genai.Part{genai.Text("a"), genai.Text("b")}}},
	}}
	assert.Equal(t, "ab", responseText(resp))
}

func TestConfigureModel(t *testing.T) {
	model := new(genai.Client).GenerativeModel("gemini-1.5-flash")

	ConfigureModel(model, entities.GeneratorConfig{Temperature: 0.4, MaxSlides: 6})

	require.NotNil(t, model.Temperature)
	assert.InDelta(t, 0.4, *model.Temperature, 0.0001)
	require.NotNil(t, model.SystemInstruction)
	require.Len(t, model.SystemInstruction.Parts, 1)
	assert.Contains(t, string(model.SystemInstruction.Parts[0].(genai.Text)), "at most 6 slides")
}

func TestNew_MissingKey(t *testing.T) {
	t.Setenv("DECKGENIE_TEST_GEMINI_KEY", "")

	_, err := New(context.Background(), entities.GeneratorConfig{APIKeyEnv: "DECKGENIE_TEST_GEMINI_KEY"}, outline.NewParser(0, nil), nil)

	var extErr *entities.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Message, "DECKGENIE_TEST_GEMINI_KEY")
}
