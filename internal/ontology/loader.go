package ontology

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/knakk/rdf"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
)

const insertTripleSQL = `INSERT INTO triples (subject, subject_kind, predicate, object, object_kind, datatype, lang) VALUES (?, ?, ?, ?, ?, ?, ?)`

// Load fetches and parses source into the store, replacing whatever was
// loaded before. When reload is false and source is already recorded with
// at least one triple, the stored triples are reused as they are.
func (s *Store) Load(ctx context.Context, source string, reload bool) (int, error) {
	if !reload {
		n, err := s.loadedCount(ctx, source)
		if err != nil {
			return 0, err
		}
		if n > 0 {
			s.setSource(source)
			log.Printf("Reusing %d stored triples from %s", n, source)
			return n, nil
		}
	}

	if s.config.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.FetchTimeout)
		defer cancel()
	}
	r, err := openSource(ctx, source)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := s.LoadReader(ctx, source, r, FormatFor(source))
	if err != nil {
		return 0, err
	}
	log.Printf("Loaded %d triples from %s", n, source)
	return n, nil
}

// LoadReader parses an RDF document in the given format and replaces the
// store's content with its triples in a single transaction.
func (s *Store) LoadReader(ctx context.Context, source string, r io.Reader, format rdf.Format) (int, error) {
	done := metrics.TimeOp("store_load")
	success := false
	defer func() { done(success) }()

	dec := rdf.NewTripleDecoder(r, format)
	if format != rdf.NTriples {
		if base, err := rdf.NewIRI(source); err == nil {
			_ = dec.SetOption(rdf.Base, base)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM triples`); err != nil {
		return 0, fmt.Errorf("failed to clear triples: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sources`); err != nil {
		return 0, fmt.Errorf("failed to clear sources: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertTripleSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for {
		t, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse %s: %w", source, err)
		}
		row := encodeTriple(t)
		if _, err := stmt.ExecContext(ctx, row.subject, row.subjectKind, row.predicate, row.object, row.objectKind, row.datatype, row.lang); err != nil {
			return 0, fmt.Errorf("failed to insert triple: %w", err)
		}
		count++
		if count%50000 == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO sources (uri, triple_count) VALUES (?, ?)`, source, count); err != nil {
		return 0, fmt.Errorf("failed to record source: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit load: %w", err)
	}
	s.setSource(source)
	success = true
	return count, nil
}

func (s *Store) loadedCount(ctx context.Context, source string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT triple_count FROM sources WHERE uri = ?`, source).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read sources: %w", err)
	}
	return n, nil
}

func (s *Store) setSource(source string) {
	s.mu.Lock()
	s.source = source
	s.mu.Unlock()
}

// Count returns the number of stored triples
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM triples`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count triples: %w", err)
	}
	return n, nil
}

type tripleRow struct {
	subject     string
	subjectKind int
	predicate   string
	object      string
	objectKind  int
	datatype    string
	lang        string
}

func encodeTriple(t rdf.Triple) tripleRow {
	row := tripleRow{
		subject:     t.Subj.String(),
		subjectKind: int(t.Subj.Type()),
		predicate:   t.Pred.String(),
		object:      t.Obj.String(),
		objectKind:  int(t.Obj.Type()),
	}
	if lit, ok := t.Obj.(rdf.Literal); ok {
		row.lang = lit.Lang()
		if row.lang == "" {
			row.datatype = lit.DataType.String()
		}
	}
	return row
}

// decodeTriple rebuilds an rdf.Triple from a stored row
func decodeTriple(row tripleRow) (rdf.Triple, error) {
	subj, err := decodeTerm(row.subject, row.subjectKind, "", "")
	if err != nil {
		return rdf.Triple{}, err
	}
	pred, err := rdf.NewIRI(row.predicate)
	if err != nil {
		return rdf.Triple{}, err
	}
	obj, err := decodeTerm(row.object, row.objectKind, row.datatype, row.lang)
	if err != nil {
		return rdf.Triple{}, err
	}
	s, ok := subj.(rdf.Subject)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("term %q cannot be a subject", row.subject)
	}
	o, ok := obj.(rdf.Object)
	if !ok {
		return rdf.Triple{}, fmt.Errorf("term %q cannot be an object", row.object)
	}
	return rdf.Triple{Subj: s, Pred: pred, Obj: o}, nil
}

func decodeTerm(value string, kind int, datatype, lang string) (rdf.Term, error) {
	switch kind {
	case kindBlank:
		return rdf.NewBlank(value)
	case kindIRI:
		return rdf.NewIRI(value)
	case kindLiteral:
		if lang != "" {
			return rdf.NewLangLiteral(value, lang)
		}
		if datatype == "" {
			datatype = XSDNS + "string"
		}
		dt, err := rdf.NewIRI(datatype)
		if err != nil {
			return nil, err
		}
		return rdf.NewTypedLiteral(value, dt), nil
	default:
		return nil, fmt.Errorf("unknown term kind %d", kind)
	}
}
