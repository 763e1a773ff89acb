package opslog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ginjaninja78/ops-labels/internal/config"
)

// timestampLayout is how timestamps are stored as text: UTC, no zone suffix.
const timestampLayout = "2006-01-02T15:04:05"

// dayLayout selects one calendar day (UTC) of entries.
const dayLayout = "2006-01-02"

// DefaultRecentLimit is how many entries Recent returns when asked for 0.
const DefaultRecentLimit = 200

// Store persists log entries. Each Append is a single insert.
type Store interface {
	// Append inserts e and sets its ID.
	Append(ctx context.Context, e *Entry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Entry, error)

	// Day returns every entry whose UTC timestamp falls on day, oldest first.
	Day(ctx context.Context, day time.Time) ([]Entry, error)

	Close() error
}

// Open returns the store selected by cfg.
func Open(cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return NewSQLStore(cfg.DSN)
	case config.DriverPostgres:
		return NewGormStore(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultRecentLimit
	}
	return limit
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
