package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlideSpec_Validate(t *testing.T) {
	tests := []struct {
		name    string
		spec    SlideSpec
		wantErr bool
	}{
		{
			name: "valid slide",
			spec: NewSlideSpec("Overview", []string{"Point A"}, ""),
		},
		{
			name: "title only",
			spec: NewSlideSpec("Next Steps", nil, ""),
		},
		{
			name:    "empty title",
			spec:    NewSlideSpec("", []string{"Point A"}, ""),
			wantErr: true,
		},
		{
			name:    "whitespace only title",
			spec:    NewSlideSpec("   \n\t  ", nil, ""),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.spec.Validate(2)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, 2, validationErr.Index)
			assert.Equal(t, "title", validationErr.Field)
		})
	}
}

func TestSlideSpec_Immutable(t *testing.T) {
	lines := []string{"Point A", "Point B"}
	spec := NewSlideSpec("Overview", lines, "chart")

	lines[0] = "changed"
	assert.Equal(t, []string{"Point A", "Point B"}, spec.BodyLines())

	returned := spec.BodyLines()
	returned[1] = "changed"
	assert.Equal(t, []string{"Point A", "Point B"}, spec.BodyLines())
}

func TestSlideSpec_ImageHint(t *testing.T) {
	assert.True(t, NewSlideSpec("A", nil, "city skyline").HasImageHint())
	assert.False(t, NewSlideSpec("A", nil, "  ").HasImageHint())
	assert.Equal(t, "city skyline", NewSlideSpec("A", nil, "city skyline").ImageHint())
}

func TestContentPlan_Validate(t *testing.T) {
	t.Run("empty plan", func(t *testing.T) {
		plan := NewContentPlan("topic")
		err := plan.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyPlan))
	})

	t.Run("nil plan", func(t *testing.T) {
		var plan *ContentPlan
		assert.True(t, plan.IsEmpty())
		assert.True(t, errors.Is(plan.Validate(), ErrEmptyPlan))
	})

	t.Run("reports first blank title", func(t *testing.T) {
		plan := NewContentPlan("topic",
			NewSlideSpec("One", nil, ""),
			NewSlideSpec(" ", nil, ""),
			NewSlideSpec("", nil, ""),
		)

		err := plan.Validate()
		var validationErr *ValidationError
		require.True(t, errors.As(err, &validationErr))
		assert.Equal(t, 1, validationErr.Index)
	})

	t.Run("valid plan", func(t *testing.T) {
		plan := NewContentPlan("topic",
			NewSlideSpec("Overview", []string{"Point A", "Point B"}, ""),
			NewSlideSpec("Next Steps", nil, ""),
		)
		assert.NoError(t, plan.Validate())
		assert.Equal(t, 2, plan.Len())
	})
}

func TestContentPlan_Title(t *testing.T) {
	plan := NewContentPlan("Cloud costs", NewSlideSpec("Taming Cloud Spend", nil, ""))
	assert.Equal(t, "Taming Cloud Spend", plan.Title())

	plan = NewContentPlan(" Cloud costs ", NewSlideSpec(" ", nil, ""))
	assert.Equal(t, "Cloud costs", plan.Title())
}
