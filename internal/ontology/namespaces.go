package ontology

import "strings"

// Well-known namespaces
const (
	BrickNS = "https://brickschema.org/schema/Brick#"
	TagNS   = "https://brickschema.org/schema/BrickTag#"
	RDFNS   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNS  = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNS   = "http://www.w3.org/2002/07/owl#"
	SHNS    = "http://www.w3.org/ns/shacl#"
	SKOSNS  = "http://www.w3.org/2004/02/skos/core#"
	XSDNS   = "http://www.w3.org/2001/XMLSchema#"
)

const (
	rdfType             = RDFNS + "type"
	rdfsClass           = RDFSNS + "Class"
	rdfsLabel           = RDFSNS + "label"
	rdfsSubClassOf      = RDFSNS + "subClassOf"
	rdfsSubPropertyOf   = RDFSNS + "subPropertyOf"
	owlClass            = OWLNS + "Class"
	owlDeprecated       = OWLNS + "deprecated"
	owlObjectProperty   = OWLNS + "ObjectProperty"
	owlDatatypeProperty = OWLNS + "DatatypeProperty"
	owlDataProperty     = OWLNS + "DataProperty"
	shNodeShape         = SHNS + "NodeShape"
	shTargetClass       = SHNS + "targetClass"
	shProperty          = SHNS + "property"
	shPath              = SHNS + "path"
	shNode              = SHNS + "node"
	shClass             = SHNS + "class"
	brickAliasOfLocal   = "aliasOf"
	brickHasTagLocal    = "hasAssociatedTag"
	brickTagLocal       = "Tag"
)

// Prefixes used when serializing definitions, keyed by namespace IRI
func (s *Store) prefixes() map[string]string {
	return map[string]string{
		s.ns:    "brick",
		s.tagNS: "tag",
		RDFNS:   "rdf",
		RDFSNS:  "rdfs",
		OWLNS:   "owl",
		SHNS:    "sh",
		SKOSNS:  "skos",
		XSDNS:   "xsd",
	}
}

// LocalName returns the part of an IRI after the last '#', or after the
// last '/' when there is no '#'.
func LocalName(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
