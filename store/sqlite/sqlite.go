/*
Package sqlite provides a SQLite-backed event store.

PURPOSE:

	Persists calendar events and serves range queries for the provider
	layer. The same patterns apply to PostgreSQL (see store/postgres) -
	only minor SQL dialect differences.

KEY TABLE:

	events: id, title, begin_at, end_at, created_at

	Instants are stored as fixed-width RFC 3339 text in UTC with the
	fractional seconds zero-padded to nanoseconds, so lexicographic
	order matches chronological order and the overlap query runs on
	plain text comparisons. Variable-width layouts (RFC3339Nano trims
	trailing zeros) would break that ordering at sub-second boundaries.

WAL MODE:

	SQLite is opened with WAL (Write-Ahead Logging) so readers do not
	block the single writer.

USAGE:

	store, err := sqlite.New("./data/calendar.db")  // or ":memory:"
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	manager.Register(provider.NewStoreProvider(store), "store")

SEE ALSO:
  - provider/provider.go: EventStore interface and StoreProvider
  - store/postgres: pgx implementation of the same interface
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/meridian/calendar-engine/calendar"
)

// timeLayout is fixed-width: always 9 fractional digits and a literal Z
// (all stored instants are UTC), so text comparison is a total order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store implements the event store on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		begin_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_begin_at ON events(begin_at);
	CREATE INDEX IF NOT EXISTS idx_events_end_at   ON events(end_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveEvent inserts or replaces an event.
func (s *Store) SaveEvent(ctx context.Context, e calendar.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO events (id, title, begin_at, end_at, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		e.ID, e.Title,
		e.Begin.UTC().Format(timeLayout),
		e.End.UTC().Format(timeLayout),
		time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save event %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEvent removes an event by ID. Deleting an absent event is a no-op.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// LoadRange returns events overlapping [from, to), ordered by begin.
func (s *Store) LoadRange(ctx context.Context, from, to time.Time) ([]calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, begin_at, end_at FROM events
		WHERE begin_at < ? AND end_at > ?
		ORDER BY begin_at`,
		to.UTC().Format(timeLayout),
		from.UTC().Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

// LoadAll returns every stored event, ordered by begin.
func (s *Store) LoadAll(ctx context.Context) ([]calendar.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, begin_at, end_at FROM events ORDER BY begin_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]calendar.Event, error) {
	events := []calendar.Event{}
	for rows.Next() {
		var e calendar.Event
		var beginStr, endStr string
		if err := rows.Scan(&e.ID, &e.Title, &beginStr, &endStr); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		begin, err := time.Parse(timeLayout, beginStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse begin_at: %w", err)
		}
		end, err := time.Parse(timeLayout, endStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse end_at: %w", err)
		}
		e.Begin, e.End = begin, end
		events = append(events, e)
	}
	return events, rows.Err()
}
