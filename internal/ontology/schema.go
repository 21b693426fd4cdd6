package ontology

// Term kinds stored in subject_kind/object_kind. The values match rdf.TermType.
const (
	kindBlank   = 0
	kindIRI     = 1
	kindLiteral = 2
)

// schema returns the DDL executed when a store is opened
func schema() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS triples (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			subject TEXT NOT NULL,
			subject_kind INTEGER NOT NULL,
			predicate TEXT NOT NULL,
			object TEXT NOT NULL,
			object_kind INTEGER NOT NULL,
			datatype TEXT NOT NULL DEFAULT '',
			lang TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_sp ON triples(subject, predicate)`,
		`CREATE INDEX IF NOT EXISTS idx_triples_po ON triples(predicate, object)`,
		`CREATE TABLE IF NOT EXISTS sources (
			uri TEXT PRIMARY KEY,
			triple_count INTEGER NOT NULL,
			loaded_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
}
