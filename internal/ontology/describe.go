package ontology

import (
	"bytes"
	"context"
	"fmt"

	"github.com/knakk/rdf"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
)

const subjectTriplesSQL = `SELECT subject, subject_kind, predicate, object, object_kind, datatype, lang
	FROM triples WHERE subject = ? AND subject_kind = ? ORDER BY id`

type node struct {
	value string
	kind  int
}

// DescribeTriples returns the concise bounded description of term: every
// triple with term as subject, plus recursively those of any blank node
// reached as an object.
func (s *Store) DescribeTriples(ctx context.Context, term string) ([]rdf.Triple, error) {
	stmt, err := s.getPreparedStmt(ctx, subjectTriplesSQL)
	if err != nil {
		return nil, err
	}

	start := node{value: s.iri(term), kind: kindIRI}
	seen := map[node]bool{start: true}
	queue := []node{start}
	var out []rdf.Triple

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		rows, err := stmt.QueryContext(ctx, n.value, n.kind)
		if err != nil {
			return nil, fmt.Errorf("failed to query triples of %s: %w", n.value, err)
		}
		var batch []tripleRow
		for rows.Next() {
			var r tripleRow
			if err := rows.Scan(&r.subject, &r.subjectKind, &r.predicate, &r.object, &r.objectKind, &r.datatype, &r.lang); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan triple: %w", err)
			}
			batch = append(batch, r)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to iterate triples: %w", err)
		}
		rows.Close()

		for _, r := range batch {
			t, err := decodeTriple(r)
			if err != nil {
				return nil, fmt.Errorf("failed to decode stored triple: %w", err)
			}
			out = append(out, t)
			if r.objectKind == kindBlank {
				next := node{value: r.object, kind: kindBlank}
				if !seen[next] {
					seen[next] = true
					queue = append(queue, next)
				}
			}
		}
	}
	return out, nil
}

// DefinitionOf serializes the concise bounded description of term as
// Turtle. Unknown terms yield an empty string.
func (s *Store) DefinitionOf(ctx context.Context, term string) (string, error) {
	if err := requireName("class_", term); err != nil {
		return "", err
	}
	done := metrics.TimeOp("definition_of")
	success := false
	defer func() { done(success) }()

	triples, err := s.DescribeTriples(ctx, term)
	if err != nil {
		return "", err
	}
	if len(triples) == 0 {
		success = true
		return "", nil
	}

	var buf bytes.Buffer
	enc := rdf.NewTripleEncoder(&buf, rdf.Turtle)
	for ns, prefix := range s.prefixes() {
		enc.Namespaces[ns] = prefix
	}
	if err := enc.EncodeAll(triples); err != nil {
		return "", fmt.Errorf("failed to serialize definition of %s: %w", term, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to flush definition of %s: %w", term, err)
	}
	success = true
	return buf.String(), nil
}
