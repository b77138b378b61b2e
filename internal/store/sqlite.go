package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"esg-screener/internal/logging"
)

// SQLiteStore implements Store using SQLite. The same file survives
// process restarts, which is what lets cached ESG records and the catalog
// snapshot outlive a session.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewSQLiteStore creates a new SQLite-based cache store.
func NewSQLiteStore(dbPath string, logger zerolog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &SQLiteStore{
		db:     db,
		logger: logger,
		now:    time.Now,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		payload    BLOB NOT NULL,
		written_at INTEGER NOT NULL, -- unix nanoseconds
		ttl_ns     INTEGER NOT NULL,
		PRIMARY KEY (namespace, key)
	);
	CREATE INDEX IF NOT EXISTS idx_cache_namespace ON cache_entries(namespace);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Get returns the payload for key while now - written_at < ttl. Expired
// rows are left in place; deletion happens on the next Set or on Prune.
func (s *SQLiteStore) Get(ctx context.Context, namespace, key string) ([]byte, bool) {
	var payload []byte
	var writtenAt, ttlNs int64

	err := s.db.QueryRowContext(ctx,
		`SELECT payload, written_at, ttl_ns FROM cache_entries WHERE namespace = ? AND key = ?`,
		namespace, key,
	).Scan(&payload, &writtenAt, &ttlNs)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		logging.LogCacheFailure(s.logger, namespace, "get", err)
		return nil, false
	}

	age := s.clock().UnixNano() - writtenAt
	if age >= ttlNs {
		return nil, false
	}
	return payload, true
}

// Set writes payload, replacing any previous entry for the key.
func (s *SQLiteStore) Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration) {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO cache_entries (namespace, key, payload, written_at, ttl_ns)
		 VALUES (?, ?, ?, ?, ?)`,
		namespace, key, payload, s.clock().UnixNano(), int64(ttl),
	)
	if err != nil {
		logging.LogCacheFailure(s.logger, namespace, "set", err)
	}
}

// Clear removes a single entry.
func (s *SQLiteStore) Clear(ctx context.Context, namespace, key string) {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE namespace = ? AND key = ?`, namespace, key)
	if err != nil {
		logging.LogCacheFailure(s.logger, namespace, "clear", err)
	}
}

// ClearAll removes every entry in a namespace.
func (s *SQLiteStore) ClearAll(ctx context.Context, namespace string) {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE namespace = ?`, namespace)
	if err != nil {
		logging.LogCacheFailure(s.logger, namespace, "clear_all", err)
	}
}

// Prune deletes every expired row. Called from maintenance paths only;
// reads never trigger deletion.
func (s *SQLiteStore) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM cache_entries WHERE ? - written_at >= ttl_ns`, s.clock().UnixNano())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) clock() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now()
}

// setClock overrides the time source. Test hook.
func (s *SQLiteStore) setClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
