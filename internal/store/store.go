// Package store persists keywords, site plans and search history in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/starford/seoscout/internal/models"
)

// DefaultLimit is used by list reads when the caller passes a limit below one.
const DefaultLimit = 100

const schemaSQL = `
CREATE TABLE IF NOT EXISTS keywords (
	word              TEXT PRIMARY KEY,
	search_volume     INTEGER,
	trend_score       REAL,
	intent_type       TEXT,
	competition_level TEXT,
	updated_at        DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS site_plans (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	analysis_id  TEXT NOT NULL DEFAULT '',
	keyword      TEXT NOT NULL,
	site_type    TEXT NOT NULL DEFAULT '',
	outline_kind TEXT NOT NULL DEFAULT '',
	core_feature TEXT NOT NULL DEFAULT '',
	tech_stack   TEXT NOT NULL DEFAULT '',
	headline     TEXT NOT NULL DEFAULT '',
	structure    TEXT NOT NULL DEFAULT '[]',
	created_at   DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS search_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	keyword       TEXT NOT NULL,
	engine        TEXT NOT NULL DEFAULT '',
	results_count INTEGER NOT NULL DEFAULT 0,
	timestamp     DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_site_plans_keyword ON site_plans(keyword);
CREATE INDEX IF NOT EXISTS idx_search_history_keyword ON search_history(keyword);
`

// Repository is the persistence contract used by the analysis service.
// Consumers depend on it rather than on *DB so tests can swap in fakes.
type Repository interface {
	SaveKeyword(ctx context.Context, k models.Keyword) error
	Keywords(ctx context.Context, limit int) ([]models.Keyword, error)
	AddPlan(ctx context.Context, p models.SitePlan) (int64, error)
	Plans(ctx context.Context, limit int) ([]models.SitePlan, error)
	PlansFor(ctx context.Context, keyword string, limit int) ([]models.SitePlan, error)
	RecordSearch(ctx context.Context, keyword, engine string, results int) error
	History(ctx context.Context, limit int) ([]models.Search, error)
	Clear(ctx context.Context) error
	Close() error
}

var _ Repository = (*DB)(nil)

// DB wraps a sql.DB with the seoscout tables.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Clear deletes every row from every table.
func (db *DB) Clear(ctx context.Context) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, table := range []string{"keywords", "site_plans", "search_history"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("store: clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func limitOrDefault(limit int) int {
	if limit < 1 {
		return DefaultLimit
	}
	return limit
}
