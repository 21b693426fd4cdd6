package vocabulary

import (
	"context"
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testClasses = []string{
		"Air_Handling_Unit",
		"Air_Temperature_Sensor",
		"Boiler",
		"Chiller",
		"Temperature",
		"Temperature_Sensor",
		"Zone",
	}
	testProperties = []string{
		"feeds",
		"hasLocation",
		"hasPart",
		"hasPoint",
		"hasTag",
		"isPointOf",
	}
	testTags = []string{"Air", "Point", "Sensor", "Temperature", "Zone"}
)

func newTestResolver(opts ...Option) *Resolver {
	return NewResolver(NewSnapshot(testClasses, testProperties, testTags), opts...)
}

type fakeSource struct {
	classes    []string
	properties []string
	tags       []string
	labels     map[string]string
	err        error
}

func (f *fakeSource) ListClasses(ctx context.Context) ([]string, error) {
	return f.classes, f.err
}

func (f *fakeSource) ListProperties(ctx context.Context) ([]string, error) {
	return f.properties, nil
}

func (f *fakeSource) AllTags(ctx context.Context) ([]string, error) {
	return f.tags, nil
}

func (f *fakeSource) LabelOf(ctx context.Context, class string) (string, bool, error) {
	l, ok := f.labels[class]
	return l, ok, nil
}

func TestValidateTerm_ExactClass(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("Air_Handling_Unit", "")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, apptype.KindClass, res.Type)
	assert.Equal(t, "Air_Handling_Unit", res.Term)
	assert.Empty(t, res.Suggestions)
	assert.NotNil(t, res.Suggestions)
}

func TestValidateTerm_ClassWinsOverProperty(t *testing.T) {
	r := NewResolver(NewSnapshot([]string{"feeds"}, []string{"feeds"}, nil))
	res, err := r.ValidateTerm("feeds", "")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, apptype.KindClass, res.Type)

	res, err = r.ValidateTerm("feeds", apptype.KindProperty)
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, apptype.KindProperty, res.Type)
}

func TestValidateTerm_RestrictedToClass(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("hasPoint", apptype.KindClass)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, apptype.KindUnknown, res.Type)
	require.NotEmpty(t, res.Suggestions)
	for _, s := range res.Suggestions {
		assert.Equal(t, apptype.KindClass, s.Type)
	}
}

func TestValidateTerm_MissingSeparators(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("AirHandlingUnit", "")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, apptype.KindUnknown, res.Type)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, apptype.Suggestion{Term: "Air_Handling_Unit", Type: apptype.KindClass}, res.Suggestions[0])
	assert.LessOrEqual(t, len(res.Suggestions), DefaultLimit)
}

func TestValidateTerm_Misspelling(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("Temprature", apptype.KindClass)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Temperature", res.Suggestions[0].Term)
}

func TestValidateTerm_CrossVocabularyMerge(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("hasPoin", "")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.Len(t, res.Suggestions, DefaultLimit)
	assert.Equal(t, apptype.Suggestion{Term: "hasPoint", Type: apptype.KindProperty}, res.Suggestions[0])

	kinds := map[apptype.Kind]bool{}
	for _, s := range res.Suggestions {
		kinds[s.Type] = true
	}
	// property candidates dominate this query
	assert.False(t, kinds[apptype.KindClass])
}

func TestValidateTerm_UnknownConceptTypeChecksBoth(t *testing.T) {
	r := newTestResolver()
	res, err := r.ValidateTerm("hasPoint", "equipment")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, apptype.KindProperty, res.Type)

	both, err := r.ValidateTerm("Temprature", "")
	require.NoError(t, err)
	other, err := r.ValidateTerm("Temprature", "something-else")
	require.NoError(t, err)
	assert.Equal(t, both, other)
}

func TestValidateTerm_Deterministic(t *testing.T) {
	r := newTestResolver()
	first, err := r.ValidateTerm("Sensr", "")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := r.ValidateTerm("Sensr", "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestValidateTerm_EmptyVocabulary(t *testing.T) {
	r := NewResolver(NewSnapshot(nil, nil, nil))
	res, err := r.ValidateTerm("Anything", "")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Equal(t, apptype.KindUnknown, res.Type)
	assert.NotNil(t, res.Suggestions)
	assert.Empty(t, res.Suggestions)

	tag, err := r.ValidateTag("Air")
	require.NoError(t, err)
	assert.False(t, tag.Valid)
	assert.NotNil(t, tag.Suggestions)
	assert.Empty(t, tag.Suggestions)
}

func TestValidateTerm_ScorerErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := newTestResolver(WithScorer(ScorerFunc(func(a, b string) (float64, error) {
		return 0, boom
	})))
	_, err := r.ValidateTerm("Nope", "")
	require.ErrorIs(t, err, boom)

	_, err = r.ValidateTag("Nope")
	require.ErrorIs(t, err, boom)

	_, err = r.ExpandAbbreviation("AHU")
	require.ErrorIs(t, err, boom)
}

func TestValidateTag(t *testing.T) {
	r := newTestResolver()

	res, err := r.ValidateTag("Air")
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, "Air", res.Tag)
	assert.Empty(t, res.Suggestions)

	res, err = r.ValidateTag("air")
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "Air", res.Suggestions[0])
	assert.LessOrEqual(t, len(res.Suggestions), DefaultLimit)
}

func TestSuggest_TiesBreakLexicographically(t *testing.T) {
	constant := ScorerFunc(func(a, b string) (float64, error) { return 1, nil })
	got, err := Suggest(constant, "x", []string{"g", "c", "a", "f", "b", "e", "d"}, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, got)
}

func TestSuggest_ZeroLimit(t *testing.T) {
	s, err := NewScorer(DefaultScorer)
	require.NoError(t, err)
	got, err := Suggest(s, "x", []string{"a"}, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSuggestMerged_TieKeepsClassFirst(t *testing.T) {
	constant := ScorerFunc(func(a, b string) (float64, error) { return 0.5, nil })
	got, err := SuggestMerged(constant, "x", []Pool{
		{Kind: apptype.KindProperty, Terms: []string{"same"}},
		{Kind: apptype.KindClass, Terms: []string{"same"}},
	}, DefaultLimit)
	require.NoError(t, err)
	assert.Equal(t, []apptype.Suggestion{
		{Term: "same", Type: apptype.KindClass},
		{Term: "same", Type: apptype.KindProperty},
	}, got)
}

func TestScorers_SelfMatchIsMinimal(t *testing.T) {
	for _, name := range ScorerNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewScorer(name)
			require.NoError(t, err)
			assert.Equal(t, name, s.Name())

			self, err := s.Distance("Temperature", "Temperature")
			require.NoError(t, err)
			other, err := s.Distance("Temperature", "Pressure")
			require.NoError(t, err)
			assert.LessOrEqual(t, self, other)

			empty, err := s.Distance("", "")
			require.NoError(t, err)
			assert.Equal(t, 0.0, empty)
		})
	}
}

func TestNewScorer_Unknown(t *testing.T) {
	_, err := NewScorer("smash")
	require.Error(t, err)

	s, err := NewScorer("")
	require.NoError(t, err)
	assert.Equal(t, DefaultScorer, s.Name())
}

func TestExpandAbbreviation_ReturnsLabels(t *testing.T) {
	src := &fakeSource{
		classes: []string{"Air_Handling_Unit", "Variable_Air_Volume_Box", "Chiller"},
		labels: map[string]string{
			"Air_Handling_Unit":       "Air Handling Unit",
			"Variable_Air_Volume_Box": "Variable Air Volume Box",
		},
	}
	snap, err := Build(context.Background(), src)
	require.NoError(t, err)
	r := NewResolver(snap)

	got, err := r.ExpandAbbreviation("Air Handlng Unit")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Air Handling Unit", got[0])
	assert.Contains(t, got, "Chiller")

	class, ok := snap.LookupLabel(got[0])
	require.True(t, ok)
	assert.Equal(t, "Air_Handling_Unit", class)
}

func TestBuild_DuplicateLabelLastWins(t *testing.T) {
	src := &fakeSource{
		classes: []string{"AHU_A", "AHU_B"},
		labels: map[string]string{
			"AHU_A": "Air Handler",
			"AHU_B": "Air Handler",
		},
	}
	snap, err := Build(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Air Handler"}, snap.Labels())
	class, ok := snap.LookupLabel("Air Handler")
	require.True(t, ok)
	assert.Equal(t, "AHU_B", class)
}

func TestBuild_FailsAsAWhole(t *testing.T) {
	src := &fakeSource{err: errors.New("store down")}
	snap, err := Build(context.Background(), src)
	require.Error(t, err)
	assert.Nil(t, snap)
}

func TestSnapshot_Membership(t *testing.T) {
	snap := NewSnapshot([]string{"b", "a", "a"}, nil, []string{"Air"})
	assert.Equal(t, []string{"a", "b"}, snap.Classes())
	assert.Equal(t, 2, snap.Size(apptype.KindClass))
	assert.True(t, snap.Has(apptype.KindTag, "Air"))
	assert.False(t, snap.Has(apptype.KindTag, "air"))
	assert.False(t, snap.Has(apptype.KindUnknown, "a"))
}
