// Package ontology persists RDF triples of a Brick ontology in libSQL and
// answers the structural queries the server needs over them.
package ontology

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
)

// Store is a triple store backed by a libSQL database
type Store struct {
	config *Config
	db     *sql.DB

	ns    string
	tagNS string

	stmtMu    sync.RWMutex
	stmtCache map[string]*sql.Stmt

	mu     sync.RWMutex
	source string
}

// NewStore opens the database described by config and makes sure the
// schema exists. It does not load any ontology.
func NewStore(config *Config) (*Store, error) {
	db, err := openDB(config)
	if err != nil {
		return nil, err
	}
	s := &Store{
		config:    config,
		db:        db,
		ns:        config.Namespace,
		tagNS:     config.TagNamespace,
		stmtCache: make(map[string]*sql.Stmt),
	}
	if s.ns == "" {
		s.ns = BrickNS
	}
	if s.tagNS == "" {
		s.tagNS = TagNS
	}
	if err := s.initialize(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	stats := db.Stats()
	metrics.Default().ObservePoolStats(stats.InUse, stats.Idle)
	return s, nil
}

// Open creates a store and loads config.Source into it, reusing triples
// already loaded from the same source unless config.Reload is set.
func Open(ctx context.Context, config *Config) (*Store, error) {
	s, err := NewStore(config)
	if err != nil {
		return nil, err
	}
	if config.Source != "" {
		if _, err := s.Load(ctx, config.Source, config.Reload); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func openDB(config *Config) (*sql.DB, error) {
	dbURL := config.URL
	if !strings.HasPrefix(dbURL, "file:") && config.AuthToken != "" {
		if u, perr := url.Parse(dbURL); perr == nil {
			q := u.Query()
			q.Set("authToken", config.AuthToken)
			u.RawQuery = q.Encode()
			dbURL = u.String()
		} else if strings.Contains(dbURL, "?") {
			dbURL = dbURL + "&authToken=" + url.QueryEscape(config.AuthToken)
		} else {
			dbURL = dbURL + "?authToken=" + url.QueryEscape(config.AuthToken)
		}
	}

	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connector: %w", err)
	}

	if config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(config.MaxOpenConns)
	}
	if config.MaxIdleConns > 0 {
		db.SetMaxIdleConns(config.MaxIdleConns)
	}
	if config.ConnMaxIdleSec > 0 {
		db.SetConnMaxIdleTime(time.Duration(config.ConnMaxIdleSec) * time.Second)
	}
	if config.ConnMaxLifeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(config.ConnMaxLifeSec) * time.Second)
	}
	return db, nil
}

// initialize creates tables and indexes if they don't exist
func (s *Store) initialize(ctx context.Context) error {
	done := metrics.TimeOp("store_initialize")
	success := false
	defer func() { done(success) }()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for initialization: %w", err)
	}
	defer tx.Rollback()

	for _, statement := range schema() {
		if _, err := tx.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	success = true
	return nil
}

// Close releases cached statements and the database handle
func (s *Store) Close() error {
	s.stmtMu.Lock()
	for k, stmt := range s.stmtCache {
		_ = stmt.Close()
		delete(s.stmtCache, k)
	}
	s.stmtMu.Unlock()
	return s.db.Close()
}

// Config returns the configuration the store was opened with
func (s *Store) Config() *Config { return s.config }

// Source returns the ontology source currently held by the store
func (s *Store) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// PoolStats returns connection pool usage
func (s *Store) PoolStats() (inUse, idle int) {
	stats := s.db.Stats()
	return stats.InUse, stats.Idle
}

// iri expands a Brick local name into a full IRI
func (s *Store) iri(local string) string {
	return s.ns + local
}
