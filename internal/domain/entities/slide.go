package entities

import (
	"strings"
)

// SlideSpec describes the intended content of one slide, independent of layout
type SlideSpec struct {
	title     string
	bodyLines []string
	imageHint string
}

// NewSlideSpec creates a slide description. The body slice is copied so the
// spec cannot be changed through the caller's slice afterwards.
func NewSlideSpec(title string, bodyLines []string, imageHint string) SlideSpec {
	return SlideSpec{
		title:     title,
		bodyLines: copyLines(bodyLines),
		imageHint: imageHint,
	}
}

// Title returns the slide title as supplied by the content source
func (s SlideSpec) Title() string {
	return s.title
}

// BodyLines returns a copy of the body lines in presentation order
func (s SlideSpec) BodyLines() []string {
	return copyLines(s.bodyLines)
}

// ImageHint returns the optional image search hint
func (s SlideSpec) ImageHint() string {
	return s.imageHint
}

// HasImageHint returns true if an image hint was supplied
func (s SlideSpec) HasImageHint() bool {
	return strings.TrimSpace(s.imageHint) != ""
}

// Validate checks the structural requirements of a slide spec
func (s SlideSpec) Validate(index int) error {
	if strings.TrimSpace(s.title) == "" {
		return &ValidationError{Index: index, Field: "title", Reason: "must not be empty"}
	}
	return nil
}

// ContentPlan is the ordered list of slide specs forming one deck
type ContentPlan struct {
	// Topic is the user input the plan was generated from
	Topic  string
	Slides []SlideSpec
}

// NewContentPlan creates a plan over a copy of the given slides
func NewContentPlan(topic string, slides ...SlideSpec) *ContentPlan {
	copied := make([]SlideSpec, len(slides))
	copy(copied, slides)
	return &ContentPlan{
		Topic:  topic,
		Slides: copied,
	}
}

// Len returns the number of slides in the plan
func (p *ContentPlan) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Slides)
}

// IsEmpty returns true if the plan has no slides
func (p *ContentPlan) IsEmpty() bool {
	return p.Len() == 0
}

// Validate checks the plan is non-empty and every slide has a title.
// The first offending slide is reported.
func (p *ContentPlan) Validate() error {
	if p.IsEmpty() {
		return ErrEmptyPlan
	}

	for i, spec := range p.Slides {
		if err := spec.Validate(i); err != nil {
			return err
		}
	}

	return nil
}

// Title returns the deck title: the first slide title, falling back to the topic
func (p *ContentPlan) Title() string {
	if !p.IsEmpty() {
		if title := strings.TrimSpace(p.Slides[0].Title()); title != "" {
			return title
		}
	}
	return strings.TrimSpace(p.Topic)
}

func copyLines(lines []string) []string {
	if lines == nil {
		return nil
	}
	copied := make([]string, len(lines))
	copy(copied, lines)
	return copied
}
