package export

import (
	"sort"
	"strings"

	"github.com/fredcamaral/deckgenie/internal/domain/entities"
	"github.com/fredcamaral/deckgenie/internal/domain/ports"
)

// Registry maps format names to serializers
type Registry struct {
	serializers map[string]ports.DeckSerializer
}

// NewRegistry creates a registry holding the given serializers
func NewRegistry(serializers ...ports.DeckSerializer) *Registry {
	r := &Registry{serializers: make(map[string]ports.DeckSerializer, len(serializers))}
	for _, s := range serializers {
		r.Register(s)
	}
	return r
}

// NewDefaultRegistry creates a registry with the PPTX and PDF serializers
func NewDefaultRegistry() *Registry {
	return NewRegistry(NewPPTXSerializer(), NewPDFSerializer())
}

// Register adds or replaces a serializer for its format
func (r *Registry) Register(s ports.DeckSerializer) {
	r.serializers[strings.ToLower(s.Format())] = s
}

// Get returns the serializer for a format name. Names are case-insensitive
// and may carry a leading dot.
func (r *Registry) Get(format string) (ports.DeckSerializer, error) {
	key := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))

	s, ok := r.serializers[key]
	if !ok {
		return nil, &entities.ValidationError{
			Index:  -1,
			Field:  "format",
			Reason: "must be one of " + strings.Join(r.Formats(), ", "),
		}
	}
	return s, nil
}

// Formats returns the registered format names, sorted
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.serializers))
	for format := range r.serializers {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Ensure Registry implements ports.SerializerRegistry
var _ ports.SerializerRegistry = (*Registry)(nil)
