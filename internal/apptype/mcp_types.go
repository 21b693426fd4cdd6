package apptype

// ExpandAbbreviationArgs represents the arguments for the expand_abbreviation tool
type ExpandAbbreviationArgs struct {
	Abbreviation string `json:"abbreviation" jsonschema:"Abbreviation or partial name to expand, e.g. AHU."`
}

// ExpandAbbreviationResult lists the closest class labels
type ExpandAbbreviationResult struct {
	Labels []string `json:"labels" jsonschema:"Up to 5 class labels ranked by similarity."`
}

// ListArgs is used by tools that take no arguments
type ListArgs struct{}

// TermsResult wraps a list of vocabulary terms
type TermsResult struct {
	Terms []string `json:"terms" jsonschema:"Term local names."`
}

// TagsResult wraps a list of tags
type TagsResult struct {
	Tags []string `json:"tags" jsonschema:"Tag local names."`
}

// GetSubclassesArgs represents the arguments for the get_subclasses tool
type GetSubclassesArgs struct {
	ParentClass string `json:"parent_class" jsonschema:"Local name of the parent class, e.g. Equipment."`
}

// GetBrickTagsArgs represents the arguments for the get_brick_tags tool
type GetBrickTagsArgs struct {
	Term string `json:"term" jsonschema:"Local name of the class whose associated tags are requested."`
}

// ValidateTermArgs represents the arguments for the validate_brick_term tool
type ValidateTermArgs struct {
	Term        string `json:"term" jsonschema:"Candidate class or property name (case-sensitive)."`
	ConceptType string `json:"concept_type,omitempty" jsonschema:"Restrict to class or property. Any other value checks both."`
}

// ValidateTagArgs represents the arguments for the validate_brick_tag tool
type ValidateTagArgs struct {
	Tag string `json:"tag" jsonschema:"Candidate tag name (case-sensitive)."`
}

// ClassArgs represents the arguments for tools keyed by a single class
type ClassArgs struct {
	Class string `json:"class_" jsonschema:"Local name of the class, e.g. Air_Handling_Unit."`
}

// PossiblePropertiesResult wraps the SHACL property pairs of a class
type PossiblePropertiesResult struct {
	Pairs []PropertyPair `json:"pairs" jsonschema:"Property paths and expected types applicable to the class."`
}

// HealthArgs represents the arguments for the health_check tool
type HealthArgs struct{}

// HealthResult reports server build and vocabulary information
type HealthResult struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Revision   string `json:"revision"`
	BuildDate  string `json:"build_date"`
	Source     string `json:"source" jsonschema:"Ontology source the store was loaded from."`
	Scorer     string `json:"scorer" jsonschema:"Similarity metric used for suggestions."`
	Classes    int    `json:"classes"`
	Properties int    `json:"properties"`
	Tags       int    `json:"tags"`
	Labels     int    `json:"labels"`
}
