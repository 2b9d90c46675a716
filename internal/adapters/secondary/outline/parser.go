package outline

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"gopkg.in/yaml.v3"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// maxRawExcerpt bounds the response text kept in a MalformedResponseError
const maxRawExcerpt = 400

var imageLine = regexp.MustCompile(`(?i)^image\s*:\s*(.*)$`)

// Frontmatter holds the optional YAML header of an outline
type Frontmatter struct {
	Title string `yaml:"title"`
	Theme string `yaml:"theme"`
}

// Parser turns a Markdown outline into a content plan. Each level 1 or 2
// heading starts a slide; list items and paragraph lines below it become
// body lines; a line "image: <hint>" sets the slide image hint.
type Parser struct {
	md        goldmark.Markdown
	maxSlides int
	logger    ports.Logger
}

// NewParser creates an outline parser. maxSlides <= 0 disables the cap.
func NewParser(maxSlides int, logger ports.Logger) *Parser {
	if logger == nil {
		logger = ports.NopLogger{}
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
		),
	)

	return &Parser{md: md, maxSlides: maxSlides, logger: logger}
}

// Parse parses the outline. Output without slide headings or with a blank
// heading is a *entities.MalformedResponseError.
func (p *Parser) Parse(topic string, content []byte) (*entities.ContentPlan, error) {
	content = unwrapFence(bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n")))
	if len(bytes.TrimSpace(content)) == 0 {
		return nil, malformed("empty outline", content)
	}

	front, body, err := extractFrontmatter(content)
	if err != nil {
		return nil, malformed(err.Error(), content)
	}

	slides, err := p.parseSlides(body)
	if err != nil {
		return nil, malformed(err.Error(), content)
	}
	if len(slides) == 0 {
		return nil, malformed("no slide headings found", content)
	}

	if front.Title != "" && !strings.EqualFold(strings.TrimSpace(front.Title), slides[0].Title()) {
		slides = append([]entities.SlideSpec{entities.NewSlideSpec(strings.TrimSpace(front.Title), nil, "")}, slides...)
	}

	if p.maxSlides > 0 && len(slides) > p.maxSlides {
		p.logger.Warn("outline has %d slides, keeping the first %d", len(slides), p.maxSlides)
		slides = slides[:p.maxSlides]
	}

	if strings.TrimSpace(topic) == "" {
		topic = front.Title
	}

	return entities.NewContentPlan(strings.TrimSpace(topic), slides...), nil
}

// draft collects a slide while its section is walked
type draft struct {
	title string
	lines []string
	hint  string
}

func (d *draft) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	if m := imageLine.FindStringSubmatch(line); m != nil {
		if d.hint == "" {
			d.hint = strings.TrimSpace(m[1])
		}
		return
	}
	d.lines = append(d.lines, line)
}

func (p *Parser) parseSlides(source []byte) ([]entities.SlideSpec, error) {
	doc := p.md.Parser().Parse(text.NewReader(source))

	var drafts []*draft
	var current *draft

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		if heading, ok := node.(*ast.Heading); ok && heading.Level <= 2 {
			title := strings.Join(inlineLines(heading, source), " ")
			if strings.TrimSpace(title) == "" {
				return nil, fmt.Errorf("slide %d has a blank heading", len(drafts)+1)
			}
			current = &draft{title: strings.TrimSpace(title)}
			drafts = append(drafts, current)
			continue
		}

		// Text before the first heading has no slide to go to
		if current == nil {
			continue
		}

		for _, line := range blockLines(node, source) {
			current.add(line)
		}
	}

	slides := make([]entities.SlideSpec, 0, len(drafts))
	for _, d := range drafts {
		slides = append(slides, entities.NewSlideSpec(d.title, d.lines, d.hint))
	}
	return slides, nil
}

// blockLines flattens a block node into body lines
func blockLines(node ast.Node, source []byte) []string {
	switch n := node.(type) {
	case *ast.List:
		var lines []string
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			for child := item.FirstChild(); child != nil; child = child.NextSibling() {
				if _, nested := child.(*ast.List); nested {
					lines = append(lines, blockLines(child, source)...)
					continue
				}
				lines = append(lines, joinWrapped(inlineLines(child, source))...)
			}
		}
		return lines
	case *ast.Paragraph:
		return inlineLines(n, source)
	case *ast.Heading:
		return joinWrapped(inlineLines(n, source))
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		var lines []string
		segments := n.Lines()
		for i := 0; i < segments.Len(); i++ {
			seg := segments.At(i)
			lines = append(lines, string(seg.Value(source)))
		}
		return lines
	case *ast.Blockquote:
		var lines []string
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			lines = append(lines, blockLines(child, source)...)
		}
		return lines
	default:
		return nil
	}
}

// joinWrapped joins the wrapped lines of one list item or heading. An image
// line continuing the item is kept apart.
func joinWrapped(lines []string) []string {
	var out []string
	var text []string
	for _, line := range lines {
		if imageLine.MatchString(line) {
			out = append(out, line)
			continue
		}
		text = append(text, line)
	}
	if len(text) > 0 {
		out = append([]string{strings.Join(text, " ")}, out...)
	}
	return out
}

// inlineLines collects the plain text of a node's inline content, split at
// line breaks
func inlineLines(node ast.Node, source []byte) []string {
	var lines []string
	var sb strings.Builder

	flush := func() {
		if line := strings.TrimSpace(sb.String()); line != "" {
			lines = append(lines, line)
		}
		sb.Reset()
	}

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				flush()
			}
		case *ast.String:
			sb.Write(t.Value)
		case *ast.AutoLink:
			sb.Write(t.Label(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	flush()

	return lines
}

// extractFrontmatter splits a leading YAML block delimited by "---" lines
func extractFrontmatter(content []byte) (Frontmatter, []byte, error) {
	var front Frontmatter

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return front, content, nil
	}

	lines := bytes.Split(content, []byte("\n"))
	endIndex := -1
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			endIndex = i
			break
		}
	}

	if endIndex == -1 {
		return front, nil, fmt.Errorf("unterminated frontmatter")
	}

	header := bytes.Join(lines[1:endIndex], []byte("\n"))
	if err := yaml.Unmarshal(header, &front); err != nil {
		return front, nil, fmt.Errorf("invalid frontmatter: %v", err)
	}

	return front, bytes.Join(lines[endIndex+1:], []byte("\n")), nil
}

// unwrapFence strips a ``` fence wrapping the whole outline, as generated
// text often has one
func unwrapFence(content []byte) []byte {
	trimmed := bytes.TrimSpace(content)
	if !bytes.HasPrefix(trimmed, []byte("```")) || !bytes.HasSuffix(trimmed, []byte("```")) || len(trimmed) < 6 {
		return content
	}

	firstNewline := bytes.IndexByte(trimmed, '\n')
	if firstNewline < 0 {
		return content
	}

	inner := trimmed[firstNewline+1 : len(trimmed)-3]
	return append(bytes.TrimSpace(inner), '\n')
}

func malformed(reason string, raw []byte) *entities.MalformedResponseError {
	excerpt := []rune(string(raw))
	if len(excerpt) > maxRawExcerpt {
		excerpt = excerpt[:maxRawExcerpt]
	}
	return &entities.MalformedResponseError{Reason: reason, Raw: string(excerpt)}
}

// Ensure Parser implements ports.OutlineParser
var _ ports.OutlineParser = (*Parser)(nil)
