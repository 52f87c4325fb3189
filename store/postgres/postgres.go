/*
Package postgres provides a PostgreSQL-backed event store on pgx.

Implements the same event store surface as store/sqlite; deployments
pick one through configuration. Connections come from a pgxpool, so a
single Store is safe for concurrent use without extra locking.
*/
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian/calendar-engine/calendar"
)

// Store implements the event store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New connects to the database at url and ensures the schema exists.
func New(ctx context.Context, url string) (*Store, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}

	store := &Store{pool: pool}
	if err := store.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			begin_at   TIMESTAMPTZ NOT NULL,
			end_at     TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS idx_events_begin_at ON events(begin_at);
		CREATE INDEX IF NOT EXISTS idx_events_end_at   ON events(end_at);
	`)
	return err
}

// SaveEvent inserts or replaces an event.
func (s *Store) SaveEvent(ctx context.Context, e calendar.Event) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO events (id, title, begin_at, end_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, begin_at = EXCLUDED.begin_at, end_at = EXCLUDED.end_at`,
		e.ID, e.Title, e.Begin, e.End,
	)
	if err != nil {
		return fmt.Errorf("failed to save event %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEvent removes an event by ID. Deleting an absent event is a no-op.
func (s *Store) DeleteEvent(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return nil
}

// LoadRange returns events overlapping [from, to), ordered by begin.
func (s *Store) LoadRange(ctx context.Context, from, to time.Time) ([]calendar.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, begin_at, end_at FROM events
		WHERE begin_at < $1 AND end_at > $2
		ORDER BY begin_at`,
		to, from,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	events := []calendar.Event{}
	for rows.Next() {
		var e calendar.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Begin, &e.End); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// LoadAll returns every stored event, ordered by begin.
func (s *Store) LoadAll(ctx context.Context) ([]calendar.Event, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, begin_at, end_at FROM events ORDER BY begin_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	events := []calendar.Event{}
	for rows.Next() {
		var e calendar.Event
		if err := rows.Scan(&e.ID, &e.Title, &e.Begin, &e.End); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
