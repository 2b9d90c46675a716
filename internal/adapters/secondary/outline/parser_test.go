package outline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
)

const sampleOutline = `---
title: Remote Work
---

## Overview
- Flexible hours
- Fewer commutes
image: home office desk

## Challenges
1. Isolation
2. Time zones
   - Async updates

Plain paragraph line
second line

## Next Steps
`

func titles(plan *entities.ContentPlan) []string {
	var out []string
	for _, s := range plan.Slides {
		out = append(out, s.Title())
	}
	return out
}

func TestParser_Parse(t *testing.T) {
	parser := NewParser(0, nil)

	t.Run("full outline", func(t *testing.T) {
		plan, err := parser.Parse("remote work", []byte(sampleOutline))
		require.NoError(t, err)

		assert.Equal(t, "remote work", plan.Topic)
		assert.Equal(t, []string{"Remote Work", "Overview", "Challenges", "Next Steps"}, titles(plan))

		assert.Empty(t, plan.Slides[0].BodyLines())

		overview := plan.Slides[1]
		assert.Equal(t, []string{"Flexible hours", "Fewer commutes"}, overview.BodyLines())
		assert.Equal(t, "home office desk", overview.ImageHint())

		challenges := plan.Slides[2]
		assert.Equal(t, []string{"Isolation", "Time zones", "Async updates", "Plain paragraph line", "second line"}, challenges.BodyLines())
		assert.False(t, challenges.HasImageHint())

		assert.Empty(t, plan.Slides[3].BodyLines())
	})

	t.Run("frontmatter title matching first heading is not duplicated", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("---\ntitle: Intro\n---\n# Intro\n## Agenda\n- one\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Intro", "Agenda"}, titles(plan))
	})

	t.Run("empty topic uses frontmatter title", func(t *testing.T) {
		plan, err := parser.Parse("  ", []byte("---\ntitle: Quarterly Review\n---\n## Numbers\n"))
		require.NoError(t, err)
		assert.Equal(t, "Quarterly Review", plan.Topic)
	})

	t.Run("inline markup is stripped", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("## The **Big** Picture\n- Use `go test` often\n- See <https://go.dev>\n"))
		require.NoError(t, err)
		assert.Equal(t, "The Big Picture", plan.Slides[0].Title())
		assert.Equal(t, []string{"Use go test often", "See https://go.dev"}, plan.Slides[0].BodyLines())
	})

	t.Run("fenced response is unwrapped", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("```markdown\n## One\n- a\n## Two\n```"))
		require.NoError(t, err)
		assert.Equal(t, []string{"One", "Two"}, titles(plan))
	})

	t.Run("first image line wins", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("## One\nImage: first\n\nimage: second\n"))
		require.NoError(t, err)
		assert.Equal(t, "first", plan.Slides[0].ImageHint())
		assert.Empty(t, plan.Slides[0].BodyLines())
	})

	t.Run("text before first heading is ignored", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("Here is your outline:\n\n## One\n- a\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"One"}, titles(plan))
		assert.Equal(t, []string{"a"}, plan.Slides[0].BodyLines())
	})

	t.Run("sub headings become body lines", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("## One\n### Detail\n- a\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"Detail", "a"}, plan.Slides[0].BodyLines())
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		plan, err := parser.Parse("x", []byte("## One\r\n- a\r\n- b\r\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b"}, plan.Slides[0].BodyLines())
	})
}

func TestParser_ParseMalformed(t *testing.T) {
	parser := NewParser(0, nil)

	tests := []struct {
		name    string
		content string
		reason  string
	}{
		{"empty", "   \n", "empty outline"},
		{"no headings", "just some text\n- a bullet\n", "no slide headings found"},
		{"blank heading", "## One\n##\n- a\n", "blank heading"},
		{"unterminated frontmatter", "---\ntitle: x\n## One\n", "unterminated frontmatter"},
		{"invalid frontmatter", "---\ntitle: [unclosed\n---\n## One\n", "invalid frontmatter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := parser.Parse("x", []byte(tt.content))
			assert.Nil(t, plan)

			var malformedErr *entities.MalformedResponseError
			require.ErrorAs(t, err, &malformedErr)
			assert.Contains(t, malformedErr.Reason, tt.reason)
		})
	}

	t.Run("raw excerpt is bounded", func(t *testing.T) {
		_, err := parser.Parse("x", []byte(strings.Repeat("word ", 500)))
		var malformedErr *entities.MalformedResponseError
		require.ErrorAs(t, err, &malformedErr)
		assert.Len(t, []rune(malformedErr.Raw), maxRawExcerpt)
	})
}

func TestParser_MaxSlides(t *testing.T) {
	parser := NewParser(2, nil)

	plan, err := parser.Parse("x", []byte("## One\n## Two\n## Three\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, titles(plan))
}

func TestFileSource_Generate(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "deckgenie-test-*")
	require.NoError(t, err)
	defer func() { _ = os.RemoveAll(tempDir) }()

	path := filepath.Join(tempDir, "outline.md")
	require.NoError(t, os.WriteFile(path, []byte(sampleOutline), 0600))

	t.Run("reads and parses", func(t *testing.T) {
		source := NewFileSource(path, NewParser(0, nil))
		plan, err := source.Generate(context.Background(), "")
		require.NoError(t, err)
		assert.Equal(t, "Remote Work", plan.Topic)
		assert.Equal(t, 4, plan.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		source := NewFileSource(filepath.Join(tempDir, "missing.md"), NewParser(0, nil))
		_, err := source.Generate(context.Background(), "x")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory", func(t *testing.T) {
		source := NewFileSource(tempDir, NewParser(0, nil))
		_, err := source.Generate(context.Background(), "x")
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFileSource(path, NewParser(0, nil)).Generate(ctx, "x")
		assert.ErrorIs(t, err, context.Canceled)
	})
}
