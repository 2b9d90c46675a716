package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

const serviceName = "gemini"

const systemPrompt = `You write presentation outlines in Markdown.
Reply with the outline only, no commentary.
Start with YAML frontmatter holding the deck title:
---
title: <deck title>
---
Then write at most %d slides. Each slide starts with a "## " heading holding
its title, followed by 3 to 5 "- " bullet points of at most 12 words each.
Optionally add one line "image: <2-4 word photo search phrase>" to a slide
that would benefit from a picture. The last slide is a short conclusion.`

// generator is the part of *genai.GenerativeModel the source needs
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ContentSource asks a Gemini model for a Markdown outline and parses it
// into a content plan
type ContentSource struct {
	model   generator
	parser  ports.OutlineParser
	client  *genai.Client
	timeout time.Duration
	logger  ports.Logger
}

// New connects to Gemini with the API key found in the environment variable
// named by the configuration
func New(ctx context.Context, cfg entities.GeneratorConfig, parser ports.OutlineParser, logger ports.Logger) (*ContentSource, error) {
	key := os.Getenv(cfg.GetAPIKeyEnv())
	if key == "" {
		return nil, &entities.ExternalServiceError{
			Service: serviceName,
			Message: cfg.GetAPIKeyEnv() + " is not set",
		}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(key))
	if err != nil {
		return nil, &entities.ExternalServiceError{Service: serviceName, Message: "creating client", Cause: err}
	}

	model := client.GenerativeModel(cfg.GetModel())
	ConfigureModel(model, cfg)

	source := NewWithGenerator(model, parser, cfg.GetTimeout(), logger)
	source.client = client
	return source, nil
}

// ConfigureModel applies temperature and the system instruction
func ConfigureModel(model *genai.GenerativeModel, cfg entities.GeneratorConfig) {
	if cfg.Temperature > 0 {
		model.SetTemperature(cfg.Temperature)
	}
	model.SystemInstruction = genai.NewUserContent(genai.Text(fmt.Sprintf(systemPrompt, cfg.GetMaxSlides())))
}

// NewWithGenerator creates a source over an existing model
func NewWithGenerator(model generator, parser ports.OutlineParser, timeout time.Duration, logger ports.Logger) *ContentSource {
	if logger == nil {
		logger = ports.NopLogger{}
	}
	return &ContentSource{
		model:   model,
		parser:  parser,
		timeout: timeout,
		logger:  logger,
	}
}

// Generate requests an outline for the topic. Transport, auth and quota
// failures are *entities.ExternalServiceError; blocked or unusable output is
// *entities.MalformedResponseError.
func (s *ContentSource) Generate(ctx context.Context, topic string) (*entities.ContentPlan, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.model.GenerateContent(ctx, genai.Text("Create a presentation about: "+topic))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, &entities.MalformedResponseError{Reason: "response blocked: " + blocked.Error()}
		}
		return nil, &entities.ExternalServiceError{Service: serviceName, Message: "generating outline", Cause: err}
	}
	s.logger.Debug("Gemini responded in %v", time.Since(start))

	text := responseText(resp)
	if strings.TrimSpace(text) == "" {
		return nil, &entities.MalformedResponseError{Reason: "empty response"}
	}

	return s.parser.Parse(topic, []byte(text))
}

// Close releases the Gemini client
func (s *ContentSource) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// responseText concatenates the text parts of the first candidate with content
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}

		var sb strings.Builder
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}

	return ""
}

// Ensure ContentSource implements ports.ContentSource
var _ ports.ContentSource = (*ContentSource)(nil)
