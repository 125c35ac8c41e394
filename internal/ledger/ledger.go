// Package ledger tracks month-to-date provider spend. The ledger is the one
// piece of shared mutable state in the service; implementations must make
// rollover detection and commits safe under concurrent requests.
package ledger

import (
	"context"
	"time"
)

// Snapshot is the ledger state for one calendar month.
type Snapshot struct {
	MonthKey string
	SpentUSD float64
}

// Ledger accumulates spend per calendar month. Both methods detect month
// rollover from now, so a request arriving in a new month is never charged
// against the previous month's total.
type Ledger interface {
	// Current returns the snapshot for the month containing now.
	Current(ctx context.Context, now time.Time) (Snapshot, error)
	// Commit atomically adds deltaUSD to the month containing now and
	// returns the updated snapshot.
	Commit(ctx context.Context, now time.Time, deltaUSD float64) (Snapshot, error)
}

// Key returns the ledger key for the month containing t.
func Key(t time.Time) string {
	return t.Format("2006-01")
}
