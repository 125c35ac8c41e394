package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLite is a Ledger backed by a local SQLite file, one row per month key.
// Because rows are keyed by month, rollover never rewrites existing state:
// a new month simply starts from a fresh row, so concurrent first requests
// of a month cannot clobber each other's spend.
type SQLite struct {
	db *sql.DB
}

var _ Ledger = (*SQLite)(nil)

// OpenSQLite opens (and initializes) the ledger database at path. All
// goroutines serialize through a single connection, which keeps the
// read-modify-write commits free of SQLITE_BUSY errors.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	db.SetMaxOpenConns(1)

	const ddl = `CREATE TABLE IF NOT EXISTS monthly_usage (
		month_key TEXT PRIMARY KEY,
		spent_usd REAL NOT NULL DEFAULT 0
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Current(ctx context.Context, now time.Time) (Snapshot, error) {
	key := Key(now)

	var spent float64
	err := s.db.QueryRowContext(ctx,
		`SELECT spent_usd FROM monthly_usage WHERE month_key = ?`, key,
	).Scan(&spent)
	if err == sql.ErrNoRows {
		return Snapshot{MonthKey: key, SpentUSD: 0}, nil
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("read ledger: %w", err)
	}
	return Snapshot{MonthKey: key, SpentUSD: spent}, nil
}

func (s *SQLite) Commit(ctx context.Context, now time.Time, deltaUSD float64) (Snapshot, error) {
	key := Key(now)

	var spent float64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO monthly_usage (month_key, spent_usd) VALUES (?, ?)
		 ON CONFLICT(month_key) DO UPDATE SET spent_usd = spent_usd + excluded.spent_usd
		 RETURNING spent_usd`,
		key, deltaUSD,
	).Scan(&spent)
	if err != nil {
		return Snapshot{}, fmt.Errorf("commit ledger: %w", err)
	}
	return Snapshot{MonthKey: key, SpentUSD: spent}, nil
}
