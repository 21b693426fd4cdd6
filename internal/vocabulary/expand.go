package vocabulary

// ExpandAbbreviation returns the class display labels closest to abbr.
// The result holds labels, not class terms; use Snapshot.LookupLabel to
// map them back.
func (r *Resolver) ExpandAbbreviation(abbr string) ([]string, error) {
	labels, err := Suggest(r.scorer, abbr, r.snap.Labels(), r.limit)
	if err != nil {
		return nil, err
	}
	return labels, nil
}
