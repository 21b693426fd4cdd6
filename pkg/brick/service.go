package brick

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/ontology"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/vocabulary"
)

// Type aliases so callers can use results without importing internal packages.
type (
	Kind                = apptype.Kind
	Suggestion          = apptype.Suggestion
	ValidationResult    = apptype.ValidationResult
	TagValidationResult = apptype.TagValidationResult
	PropertyPair        = apptype.PropertyPair
)

const (
	KindClass    = apptype.KindClass
	KindProperty = apptype.KindProperty
	KindTag      = apptype.KindTag
	KindUnknown  = apptype.KindUnknown
)

// Service provides a library-first API for Brick term resolution without MCP transport.
type Service struct {
	store    *ontology.Store
	resolver *vocabulary.Resolver
}

// NewService opens the store, loads the ontology and builds the vocabulary
// snapshot. Any failure is returned and nothing is left open.
func NewService(ctx context.Context, cfg *Config) (*Service, error) {
	scorer, err := vocabulary.NewScorer(cfg.Scorer)
	if err != nil {
		return nil, err
	}
	store, err := ontology.Open(ctx, cfg.toInternal())
	if err != nil {
		return nil, err
	}
	snap, err := vocabulary.Build(ctx, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to build vocabulary: %w", err)
	}
	return &Service{
		store:    store,
		resolver: vocabulary.NewResolver(snap, vocabulary.WithScorer(scorer)),
	}, nil
}

// Close releases resources.
func (s *Service) Close() error { return s.store.Close() }

// ValidateTerm checks a class or property name; conceptType may be empty.
func (s *Service) ValidateTerm(term string, conceptType Kind) (ValidationResult, error) {
	return s.resolver.ValidateTerm(term, conceptType)
}

// ValidateTag checks a tag name.
func (s *Service) ValidateTag(tag string) (TagValidationResult, error) {
	return s.resolver.ValidateTag(tag)
}

// ExpandAbbreviation returns the closest class labels.
func (s *Service) ExpandAbbreviation(abbr string) ([]string, error) {
	return s.resolver.ExpandAbbreviation(abbr)
}

// ClassForLabel maps a label from ExpandAbbreviation back to its class.
func (s *Service) ClassForLabel(label string) (string, bool) {
	return s.resolver.Snapshot().LookupLabel(label)
}

// Vocabulary listings
func (s *Service) Classes() []string    { return s.resolver.Snapshot().Classes() }
func (s *Service) Properties() []string { return s.resolver.Snapshot().Properties() }
func (s *Service) Tags() []string       { return s.resolver.Snapshot().Tags() }

// Structural queries
func (s *Service) Subclasses(ctx context.Context, parent string) ([]string, error) {
	return s.store.SubclassesOf(ctx, parent)
}
func (s *Service) TagsOf(ctx context.Context, term string) ([]string, error) {
	return s.store.TagsOf(ctx, term)
}
func (s *Service) PossibleProperties(ctx context.Context, class string) ([]PropertyPair, error) {
	return s.store.PossibleProperties(ctx, class)
}

// Definition returns the Turtle definition of term, or "" when unknown.
func (s *Service) Definition(ctx context.Context, term string) (string, error) {
	return s.store.DefinitionOf(ctx, term)
}
