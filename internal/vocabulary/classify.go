package vocabulary

import (
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
)

// Resolver answers exact-match and suggestion queries over a snapshot
type Resolver struct {
	snap   *Snapshot
	scorer Scorer
	limit  int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithScorer replaces the default similarity metric
func WithScorer(s Scorer) Option {
	return func(r *Resolver) {
		if s != nil {
			r.scorer = s
		}
	}
}

// NewResolver creates a resolver over snap using the default scorer
// unless one is supplied.
func NewResolver(snap *Snapshot, opts ...Option) *Resolver {
	def, _ := NewScorer(DefaultScorer)
	r := &Resolver{snap: snap, scorer: def, limit: DefaultLimit}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Snapshot returns the vocabularies the resolver reads from
func (r *Resolver) Snapshot() *Snapshot { return r.snap }

// Scorer returns the metric used for ranking
func (r *Resolver) Scorer() Scorer { return r.scorer }

// Classify checks term against the class vocabulary and then the property
// vocabulary, stopping at the first hit. restrictTo limits the check to one
// of them; any other value checks both.
func (r *Resolver) Classify(term string, restrictTo apptype.Kind) (bool, apptype.Kind) {
	restrictTo = apptype.ParseKind(string(restrictTo))
	if restrictTo != apptype.KindProperty && r.snap.Has(apptype.KindClass, term) {
		return true, apptype.KindClass
	}
	if restrictTo != apptype.KindClass && r.snap.Has(apptype.KindProperty, term) {
		return true, apptype.KindProperty
	}
	return false, apptype.KindUnknown
}
