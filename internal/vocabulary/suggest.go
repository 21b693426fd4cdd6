package vocabulary

import (
	"sort"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
)

// DefaultLimit is the suggestion budget used everywhere on the public surface
const DefaultLimit = 5

type scored struct {
	term  string
	kind  apptype.Kind
	score float64
}

func kindOrder(k apptype.Kind) int {
	switch k {
	case apptype.KindClass:
		return 0
	case apptype.KindProperty:
		return 1
	default:
		return 2
	}
}

func less(a, b scored) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	if a.term != b.term {
		return a.term < b.term
	}
	return kindOrder(a.kind) < kindOrder(b.kind)
}

func rank(scorer Scorer, query string, candidates []string, kind apptype.Kind, k int) ([]scored, error) {
	if k <= 0 || len(candidates) == 0 {
		return nil, nil
	}
	all := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		d, err := scorer.Distance(query, c)
		if err != nil {
			return nil, err
		}
		all = append(all, scored{term: c, kind: kind, score: d})
	}
	sort.Slice(all, func(i, j int) bool { return less(all[i], all[j]) })
	if len(all) > k {
		all = all[:k]
	}
	return all, nil
}

// Suggest returns the k candidates closest to query, ordered by score and
// then lexicographically. Every candidate is scored on every call.
func Suggest(scorer Scorer, query string, candidates []string, k int) ([]string, error) {
	top, err := rank(scorer, query, candidates, "", k)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(top))
	for i, s := range top {
		out[i] = s.term
	}
	return out, nil
}

// Pool is one vocabulary taking part in a merged suggestion
type Pool struct {
	Kind  apptype.Kind
	Terms []string
}

// SuggestMerged takes the top k of each pool, tags each with its kind, and
// re-ranks the union against query. A pool may end up with no entries when
// the others score better; there is no per-kind quota.
func SuggestMerged(scorer Scorer, query string, pools []Pool, k int) ([]apptype.Suggestion, error) {
	var merged []scored
	for _, p := range pools {
		top, err := rank(scorer, query, p.Terms, p.Kind, k)
		if err != nil {
			return nil, err
		}
		merged = append(merged, top...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return less(merged[i], merged[j]) })
	if k >= 0 && len(merged) > k {
		merged = merged[:k]
	}
	out := make([]apptype.Suggestion, len(merged))
	for i, s := range merged {
		out[i] = apptype.Suggestion{Term: s.term, Type: s.kind}
	}
	return out, nil
}
