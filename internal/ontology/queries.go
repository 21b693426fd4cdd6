package ontology

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
)

// lit renders a constant as an SQL string literal. Only IRIs known to the
// store go through here; caller supplied values are always bound.
func lit(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// notDeprecated filters out subjects in col carrying owl:deprecated true
func notDeprecated(col string) string {
	return fmt.Sprintf(`NOT EXISTS (
		SELECT 1 FROM triples d
		WHERE d.subject = %s AND d.predicate = %s AND d.object_kind = 2 AND lower(d.object) IN ('true', '1')
	)`, col, lit(owlDeprecated))
}

func (s *Store) aliasOf() string { return s.iri(brickAliasOfLocal) }

func (s *Store) hasTag() string { return s.iri(brickHasTagLocal) }

// localNames maps IRIs to their local names, deduplicated and sorted
func localNames(iris []string) []string {
	seen := make(map[string]struct{}, len(iris))
	out := make([]string, 0, len(iris))
	for _, iri := range iris {
		n := LocalName(iri)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func requireName(arg, v string) error {
	if v == "" {
		return fmt.Errorf("%s cannot be empty", arg)
	}
	return nil
}

// ListClasses returns every class that is neither deprecated nor an alias
func (s *Store) ListClasses(ctx context.Context) ([]string, error) {
	done := metrics.TimeOp("list_classes")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`SELECT DISTINCT t.subject FROM triples t
		WHERE t.subject_kind = 1 AND t.predicate = %s AND t.object IN (%s, %s)
		AND %s
		AND NOT EXISTS (SELECT 1 FROM triples a WHERE a.subject = t.subject AND a.predicate = %s)`,
		lit(rdfType), lit(owlClass), lit(rdfsClass),
		notDeprecated("t.subject"),
		lit(s.aliasOf()))
	iris, err := s.queryStrings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	success = true
	return localNames(iris), nil
}

// ListProperties returns every sub-property and every declared object or
// datatype property
func (s *Store) ListProperties(ctx context.Context) ([]string, error) {
	done := metrics.TimeOp("list_properties")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`SELECT subject FROM triples WHERE subject_kind = 1 AND predicate = %s
		UNION
		SELECT subject FROM triples WHERE subject_kind = 1 AND predicate = %s AND object IN (%s, %s, %s)`,
		lit(rdfsSubPropertyOf),
		lit(rdfType), lit(owlObjectProperty), lit(owlDatatypeProperty), lit(owlDataProperty))
	iris, err := s.queryStrings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	success = true
	return localNames(iris), nil
}

// LabelOf returns the rdfs:label of a class, preferring untagged or English
// labels. ok is false when the class has no label.
func (s *Store) LabelOf(ctx context.Context, class string) (string, bool, error) {
	q := fmt.Sprintf(`SELECT object FROM triples
		WHERE subject = ? AND predicate = %s AND object_kind = 2
		ORDER BY CASE WHEN lang = '' OR lang LIKE 'en%%' THEN 0 ELSE 1 END, id
		LIMIT 1`, lit(rdfsLabel))
	labels, err := s.queryStrings(ctx, q, s.iri(class))
	if err != nil {
		return "", false, fmt.Errorf("failed to get label: %w", err)
	}
	if len(labels) == 0 {
		return "", false, nil
	}
	return labels[0], true, nil
}

// SubclassesOf returns the transitive, non-deprecated subclasses of parent,
// excluding parent itself
func (s *Store) SubclassesOf(ctx context.Context, parent string) ([]string, error) {
	if err := requireName("parent_class", parent); err != nil {
		return nil, err
	}
	done := metrics.TimeOp("subclasses_of")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`WITH RECURSIVE sub(iri) AS (
			SELECT ?
			UNION
			SELECT t.subject FROM triples t JOIN sub ON t.object = sub.iri
			WHERE t.predicate = %s AND t.object_kind = 1 AND t.subject_kind = 1
		)
		SELECT sub.iri FROM sub
		WHERE sub.iri != ?
		AND EXISTS (SELECT 1 FROM triples c WHERE c.subject = sub.iri AND c.predicate = %s AND c.object = %s)
		AND %s`,
		lit(rdfsSubClassOf), lit(rdfType), lit(owlClass), notDeprecated("sub.iri"))
	root := s.iri(parent)
	iris, err := s.queryStrings(ctx, q, root, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get subclasses of %s: %w", parent, err)
	}
	success = true
	return localNames(iris), nil
}

// TagsOf returns the tags associated with term
func (s *Store) TagsOf(ctx context.Context, term string) ([]string, error) {
	if err := requireName("term", term); err != nil {
		return nil, err
	}
	done := metrics.TimeOp("tags_of")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`SELECT DISTINCT object FROM triples WHERE subject = ? AND predicate = %s AND object_kind = 1`,
		lit(s.hasTag()))
	iris, err := s.queryStrings(ctx, q, s.iri(term))
	if err != nil {
		return nil, fmt.Errorf("failed to get tags of %s: %w", term, err)
	}
	success = true
	return localNames(iris), nil
}

// AllTags returns every tag used by a class or declared as a brick:Tag
func (s *Store) AllTags(ctx context.Context) ([]string, error) {
	done := metrics.TimeOp("all_tags")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`SELECT object FROM triples WHERE predicate = %s AND object_kind = 1
		UNION
		SELECT subject FROM triples WHERE subject_kind = 1 AND predicate = %s AND object = %s`,
		lit(s.hasTag()), lit(rdfType), lit(s.iri(brickTagLocal)))
	iris, err := s.queryStrings(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	success = true
	return localNames(iris), nil
}

// PossibleProperties returns the SHACL property paths, with their expected
// node or class when declared, of the shapes applying to class. Shapes are
// found through the class, the class it aliases, and all their
// superclasses.
func (s *Store) PossibleProperties(ctx context.Context, class string) ([]apptype.PropertyPair, error) {
	if err := requireName("class_", class); err != nil {
		return nil, err
	}
	done := metrics.TimeOp("possible_properties")
	success := false
	defer func() { done(success) }()

	q := fmt.Sprintf(`WITH RECURSIVE
		start(iri) AS (
			SELECT ?
			UNION
			SELECT object FROM triples WHERE subject = ? AND predicate = %[1]s AND object_kind = 1
		),
		sup(iri) AS (
			SELECT iri FROM start
			UNION
			SELECT t.object FROM triples t JOIN sup ON t.subject = sup.iri
			WHERE t.predicate = %[2]s AND t.object_kind = 1
		),
		shapes(shape, kind) AS (
			SELECT t.subject, t.subject_kind FROM triples t JOIN sup ON t.object = sup.iri
			WHERE t.predicate = %[3]s
			UNION
			SELECT a.subject, a.subject_kind FROM triples a
			JOIN triples t ON a.object = t.subject
			JOIN sup ON t.object = sup.iri
			WHERE a.predicate = %[1]s AND t.predicate = %[3]s
			UNION
			SELECT sup.iri, 1 FROM sup JOIN triples n ON n.subject = sup.iri
			WHERE n.predicate = %[4]s AND n.object = %[5]s
		)
		SELECT DISTINCT path.object, COALESCE(typ.object, '') FROM shapes
		JOIN triples p ON p.subject = shapes.shape AND p.subject_kind = shapes.kind AND p.predicate = %[6]s
		JOIN triples path ON path.subject = p.object AND path.subject_kind = p.object_kind
			AND path.predicate = %[7]s AND path.object_kind != 0
		LEFT JOIN triples typ ON typ.subject = p.object AND typ.subject_kind = p.object_kind
			AND typ.predicate IN (%[8]s, %[9]s)
		ORDER BY 1, 2`,
		lit(s.aliasOf()), lit(rdfsSubClassOf), lit(shTargetClass),
		lit(rdfType), lit(shNodeShape), lit(shProperty), lit(shPath),
		lit(shNode), lit(shClass))

	stmt, err := s.getPreparedStmt(ctx, q)
	if err != nil {
		return nil, err
	}
	root := s.iri(class)
	rows, err := stmt.QueryContext(ctx, root, root)
	if err != nil {
		return nil, fmt.Errorf("failed to get properties of %s: %w", class, err)
	}
	defer rows.Close()

	pairs := []apptype.PropertyPair{}
	for rows.Next() {
		var p apptype.PropertyPair
		if err := rows.Scan(&p.Path, &p.Type); err != nil {
			return nil, fmt.Errorf("failed to scan property pair: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate property pairs: %w", err)
	}
	success = true
	return pairs, nil
}
