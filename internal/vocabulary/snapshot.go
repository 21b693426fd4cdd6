// Package vocabulary resolves candidate names against an immutable snapshot
// of the ontology's classes, properties and tags, and suggests close
// alternatives when no exact match exists.
package vocabulary

import (
	"context"
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"golang.org/x/sync/errgroup"
)

// Source is the part of the ontology store a snapshot is built from
type Source interface {
	ListClasses(ctx context.Context) ([]string, error)
	ListProperties(ctx context.Context) ([]string, error)
	AllTags(ctx context.Context) ([]string, error)
	LabelOf(ctx context.Context, class string) (string, bool, error)
}

// Snapshot is a read-only copy of the vocabularies taken once at startup.
// It is safe for concurrent use.
type Snapshot struct {
	classes    []string
	properties []string
	tags       []string

	classSet    map[string]struct{}
	propertySet map[string]struct{}
	tagSet      map[string]struct{}

	labels     map[string]string
	labelNames []string
}

// Build queries src for every vocabulary and the class labels. Any failure
// aborts the whole build; no partial snapshot is returned.
func Build(ctx context.Context, src Source) (*Snapshot, error) {
	var classes, properties, tags []string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if classes, err = src.ListClasses(gctx); err != nil {
			return fmt.Errorf("failed to list classes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if properties, err = src.ListProperties(gctx); err != nil {
			return fmt.Errorf("failed to list properties: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if tags, err = src.AllTags(gctx); err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	labels, err := buildLabels(ctx, src, classes)
	if err != nil {
		return nil, err
	}
	return newSnapshot(classes, properties, tags, labels), nil
}

// NewSnapshot builds a snapshot from in-memory vocabularies. Class labels
// default to the class names themselves.
func NewSnapshot(classes, properties, tags []string) *Snapshot {
	labels := make(map[string]string, len(classes))
	for _, c := range classes {
		labels[c] = c
	}
	return newSnapshot(classes, properties, tags, labels)
}

func newSnapshot(classes, properties, tags []string, labels map[string]string) *Snapshot {
	s := &Snapshot{labels: labels}
	s.classes, s.classSet = dedupe(classes)
	s.properties, s.propertySet = dedupe(properties)
	s.tags, s.tagSet = dedupe(tags)
	s.labelNames = make([]string, 0, len(labels))
	for l := range labels {
		s.labelNames = append(s.labelNames, l)
	}
	sort.Strings(s.labelNames)
	return s
}

func dedupe(in []string) ([]string, map[string]struct{}) {
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := set[v]; ok {
			continue
		}
		set[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, set
}

// Classes returns the sorted class terms. The slice must not be modified.
func (s *Snapshot) Classes() []string { return s.classes }

// Properties returns the sorted property terms. The slice must not be modified.
func (s *Snapshot) Properties() []string { return s.properties }

// Tags returns the sorted tags. The slice must not be modified.
func (s *Snapshot) Tags() []string { return s.tags }

// Labels returns the sorted display labels of the label mapping
func (s *Snapshot) Labels() []string { return s.labelNames }

// LookupLabel returns the class a display label maps to
func (s *Snapshot) LookupLabel(label string) (string, bool) {
	c, ok := s.labels[label]
	return c, ok
}

// Has reports whether term is a member of the given vocabulary
func (s *Snapshot) Has(kind apptype.Kind, term string) bool {
	var ok bool
	switch kind {
	case apptype.KindClass:
		_, ok = s.classSet[term]
	case apptype.KindProperty:
		_, ok = s.propertySet[term]
	case apptype.KindTag:
		_, ok = s.tagSet[term]
	}
	return ok
}

// Size returns the number of terms in the given vocabulary
func (s *Snapshot) Size(kind apptype.Kind) int {
	switch kind {
	case apptype.KindClass:
		return len(s.classes)
	case apptype.KindProperty:
		return len(s.properties)
	case apptype.KindTag:
		return len(s.tags)
	}
	return 0
}
