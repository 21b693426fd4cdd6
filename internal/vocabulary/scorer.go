package vocabulary

import (
	"fmt"
	"sort"

	"github.com/hbollon/go-edlib"
)

// DefaultScorer is the metric used when none is configured
const DefaultScorer = "levenshtein"

// Scorer ranks how far a candidate is from a query. Lower is closer,
// identical strings must score no higher than any other pair, and the
// result must depend only on the two inputs.
type Scorer interface {
	Name() string
	Distance(query, candidate string) (float64, error)
}

// ScorerFunc adapts a plain function to the Scorer interface
type ScorerFunc func(query, candidate string) (float64, error)

// Name implements Scorer.
func (f ScorerFunc) Name() string { return "func" }

// Distance implements Scorer.
func (f ScorerFunc) Distance(query, candidate string) (float64, error) {
	return f(query, candidate)
}

var algorithms = map[string]edlib.Algorithm{
	"levenshtein":         edlib.Levenshtein,
	"damerau-levenshtein": edlib.DamerauLevenshtein,
	"osa":                 edlib.OSADamerauLevenshtein,
	"lcs":                 edlib.Lcs,
	"jaro":                edlib.Jaro,
	"jaro-winkler":        edlib.JaroWinkler,
	"cosine":              edlib.Cosine,
	"jaccard":             edlib.Jaccard,
	"sorensen-dice":       edlib.SorensenDice,
	"qgram":               edlib.Qgram,
}

// edlibScorer turns an edlib similarity in [0,1] into a distance
type edlibScorer struct {
	name string
	algo edlib.Algorithm
}

func (s *edlibScorer) Name() string { return s.name }

func (s *edlibScorer) Distance(query, candidate string) (float64, error) {
	// edlib divides by the longer length, which is zero for two empty strings
	if query == candidate {
		return 0, nil
	}
	sim, err := edlib.StringsSimilarity(query, candidate, s.algo)
	if err != nil {
		return 0, fmt.Errorf("%s similarity failed: %w", s.name, err)
	}
	return 1 - float64(sim), nil
}

// NewScorer returns the named edlib-backed scorer
func NewScorer(name string) (Scorer, error) {
	if name == "" {
		name = DefaultScorer
	}
	algo, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unknown scorer %q (expected one of %v)", name, ScorerNames())
	}
	return &edlibScorer{name: name, algo: algo}, nil
}

// ScorerNames lists the accepted scorer names in sorted order
func ScorerNames() []string {
	names := make([]string, 0, len(algorithms))
	for n := range algorithms {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
