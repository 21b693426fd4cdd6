package ontology

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ZanzyTHEbar/mcp-brick-libsql-go/internal/metrics"
)

// getPreparedStmt returns or prepares and caches a statement
func (s *Store) getPreparedStmt(ctx context.Context, sqlText string) (*sql.Stmt, error) {
	// fast path read
	s.stmtMu.RLock()
	if stmt, ok := s.stmtCache[sqlText]; ok {
		s.stmtMu.RUnlock()
		metrics.Default().IncStmtCacheHit("prepare")
		return stmt, nil
	}
	s.stmtMu.RUnlock()
	metrics.Default().IncStmtCacheMiss("prepare")

	stmt, err := s.db.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	s.stmtMu.Lock()
	if existing, ok := s.stmtCache[sqlText]; ok {
		s.stmtMu.Unlock()
		_ = stmt.Close()
		return existing, nil
	}
	s.stmtCache[sqlText] = stmt
	s.stmtMu.Unlock()
	return stmt, nil
}

// queryStrings runs a cached single-column query and collects the results
func (s *Store) queryStrings(ctx context.Context, sqlText string, args ...any) ([]string, error) {
	stmt, err := s.getPreparedStmt(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}
	return out, nil
}
