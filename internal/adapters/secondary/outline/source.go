package outline

import (
	"context"
	"fmt"
	"os"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// maxOutlineBytes caps the size of an outline file
const maxOutlineBytes = 1 << 20

// FileSource is a content source reading a Markdown outline from disk
type FileSource struct {
	path   string
	parser ports.OutlineParser
}

// NewFileSource creates a content source for the outline at path
func NewFileSource(path string, parser ports.OutlineParser) *FileSource {
	return &FileSource{path: path, parser: parser}
}

// Generate reads and parses the outline. The topic names the plan; when it
// is empty the outline's frontmatter title is used.
func (s *FileSource) Generate(ctx context.Context, topic string) (*entities.ContentPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("reading outline: %s is a directory", s.path)
	}
	if info.Size() > maxOutlineBytes {
		return nil, &entities.ValidationError{Index: -1, Field: "outline", Reason: "exceeds 1 MiB"}
	}

	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading outline: %w", err)
	}

	return s.parser.Parse(topic, content)
}

// Ensure FileSource implements ports.ContentSource
var _ ports.ContentSource = (*FileSource)(nil)
