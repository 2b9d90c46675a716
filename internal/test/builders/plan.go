package builders

import (
	"fmt"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

// PlanBuilder helps build ContentPlan entities for testing
type PlanBuilder struct {
	topic  string
	slides []entities.SlideSpec
}

// NewPlanBuilder creates a new plan builder with sensible defaults
func NewPlanBuilder() *PlanBuilder {
	return &PlanBuilder{
		topic: "Test Topic",
	}
}

// WithTopic sets the plan topic
func (b *PlanBuilder) WithTopic(topic string) *PlanBuilder {
	b.topic = topic
	return b
}

// WithSlide adds a slide without an image hint
func (b *PlanBuilder) WithSlide(title string, bodyLines ...string) *PlanBuilder {
	b.slides = append(b.slides, entities.NewSlideSpec(title, bodyLines, ""))
	return b
}

// WithImageSlide adds a slide carrying an image hint
func (b *PlanBuilder) WithImageSlide(title, imageHint string, bodyLines ...string) *PlanBuilder {
	b.slides = append(b.slides, entities.NewSlideSpec(title, bodyLines, imageHint))
	return b
}

// WithSlideCount adds count slides titled "Slide N", each with two body lines
func (b *PlanBuilder) WithSlideCount(count int) *PlanBuilder {
	start := len(b.slides)
	for i := 1; i <= count; i++ {
		n := start + i
		b.slides = append(b.slides, entities.NewSlideSpec(
			fmt.Sprintf("Slide %d", n),
			[]string{fmt.Sprintf("Point %d.1", n), fmt.Sprintf("Point %d.2", n)},
			"",
		))
	}
	return b
}

// Build creates the final ContentPlan entity
func (b *PlanBuilder) Build() *entities.ContentPlan {
	return entities.NewContentPlan(b.topic, b.slides...)
}

// Common plans for testing

// MinimalPlan creates a one-slide plan
func MinimalPlan() *entities.ContentPlan {
	return NewPlanBuilder().
		WithTopic("Minimal").
		WithSlide("Minimal").
		Build()
}

// LargePlan creates a plan with many slides
func LargePlan() *entities.ContentPlan {
	return NewPlanBuilder().
		WithTopic("Large Plan").
		WithSlideCount(50).
		Build()
}

// OverflowPlan creates a plan whose body lines exceed the default layout limits
func OverflowPlan() *entities.ContentPlan {
	return NewPlanBuilder().
		WithTopic("Overflow").
		WithSlide("Too Much",
			"One", "Two", "Three", "Four", "Five", "Six", "Seven",
		).
		Build()
}
