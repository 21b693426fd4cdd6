package apptype

// Kind identifies which vocabulary a term belongs to
type Kind string

const (
	KindClass    Kind = "class"
	KindProperty Kind = "property"
	KindTag      Kind = "tag"
	KindUnknown  Kind = "unknown"
)

// ParseKind maps a concept type argument onto a Kind. Anything other than
// class or property (including the empty string) yields the empty Kind,
// which callers treat as "no restriction".
func ParseKind(s string) Kind {
	switch Kind(s) {
	case KindClass, KindProperty:
		return Kind(s)
	default:
		return ""
	}
}

// Suggestion is a ranked alternative for an unrecognized term
type Suggestion struct {
	Term string `json:"term" jsonschema:"Suggested vocabulary term."`
	Type Kind   `json:"type" jsonschema:"Vocabulary the term comes from (class or property)."`
}

// ValidationResult is the outcome of validating a class or property name
type ValidationResult struct {
	Valid       bool         `json:"valid" jsonschema:"True when the term exactly matches a known class or property."`
	Type        Kind         `json:"type" jsonschema:"class, property, or unknown."`
	Term        string       `json:"term" jsonschema:"The term as given."`
	Suggestions []Suggestion `json:"suggestions" jsonschema:"Up to 5 ranked alternatives; empty when valid."`
}

// TagValidationResult is the outcome of validating a tag name
type TagValidationResult struct {
	Valid       bool     `json:"valid" jsonschema:"True when the tag exactly matches a known tag."`
	Tag         string   `json:"tag" jsonschema:"The tag as given."`
	Suggestions []string `json:"suggestions" jsonschema:"Up to 5 ranked alternative tags; empty when valid."`
}

// PropertyPair is a SHACL property path with its optional expected type
type PropertyPair struct {
	Path string `json:"path" jsonschema:"IRI of the property path."`
	Type string `json:"type,omitempty" jsonschema:"IRI of the expected node or class, when declared."`
}
