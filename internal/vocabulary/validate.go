package vocabulary

import (
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
)

// ValidateTerm reports whether term names a class or property. When it does
// not, suggestions come from the vocabularies allowed by conceptType, merged
// and re-ranked when both are allowed.
func (r *Resolver) ValidateTerm(term string, conceptType apptype.Kind) (apptype.ValidationResult, error) {
	restrict := apptype.ParseKind(string(conceptType))
	valid, kind := r.Classify(term, restrict)
	res := apptype.ValidationResult{
		Valid:       valid,
		Type:        kind,
		Term:        term,
		Suggestions: []apptype.Suggestion{},
	}
	if valid {
		return res, nil
	}

	var pools []Pool
	if restrict != apptype.KindProperty {
		pools = append(pools, Pool{Kind: apptype.KindClass, Terms: r.snap.Classes()})
	}
	if restrict != apptype.KindClass {
		pools = append(pools, Pool{Kind: apptype.KindProperty, Terms: r.snap.Properties()})
	}
	suggestions, err := SuggestMerged(r.scorer, term, pools, r.limit)
	if err != nil {
		return apptype.ValidationResult{}, err
	}
	res.Suggestions = suggestions
	return res, nil
}

// ValidateTag reports whether tag is a known tag, suggesting close tags
// when it is not. Matching is case-sensitive.
func (r *Resolver) ValidateTag(tag string) (apptype.TagValidationResult, error) {
	res := apptype.TagValidationResult{Tag: tag, Suggestions: []string{}}
	if r.snap.Has(apptype.KindTag, tag) {
		res.Valid = true
		return res, nil
	}
	suggestions, err := Suggest(r.scorer, tag, r.snap.Tags(), r.limit)
	if err != nil {
		return apptype.TagValidationResult{}, err
	}
	res.Suggestions = suggestions
	return res, nil
}
