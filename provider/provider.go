/*
Package provider defines the event-provider contract and the manager that
fans queries out to every registered provider.

A provider is anything that can supply events for a period: the in-memory
indexed collection, a SQL-backed store, an ICS subscription. The manager
merges their results in registration order.
*/
package provider

import (
	"context"
	"time"

	"github.com/meridian/calendar-engine/calendar"
)

// Provider supplies events for a period.
type Provider interface {
	FindEvents(ctx context.Context, p calendar.Period) ([]calendar.Event, error)
}

// =============================================================================
// COLLECTION PROVIDER - The indexed collection as one possible backend
// =============================================================================

// CollectionProvider serves events straight from a calendar.Collection. The
// lookup follows the collection's reduction rule: the period is reduced to
// its begin instant and re-indexed, so with the default day index a Day
// period maps onto exactly one bucket.
type CollectionProvider struct {
	collection *calendar.Collection
}

// NewCollectionProvider wraps an existing collection.
func NewCollectionProvider(c *calendar.Collection) *CollectionProvider {
	return &CollectionProvider{collection: c}
}

// Collection exposes the backing collection for direct Add/Remove.
func (p *CollectionProvider) Collection() *calendar.Collection {
	return p.collection
}

func (p *CollectionProvider) FindEvents(_ context.Context, period calendar.Period) ([]calendar.Event, error) {
	// FindPeriod already hands back a copy the caller may keep.
	return p.collection.FindPeriod(period), nil
}

// =============================================================================
// STORE PROVIDER - Persistent stores as backends
// =============================================================================

// EventStore is the slice of a persistent store the provider layer needs.
// Implemented by store/sqlite and store/postgres.
type EventStore interface {
	// LoadRange returns events overlapping [from, to), ordered by begin.
	LoadRange(ctx context.Context, from, to time.Time) ([]calendar.Event, error)
}

// StoreProvider adapts an EventStore to the Provider contract. Unlike the
// collection reduction, a store query covers the period's full span.
type StoreProvider struct {
	store EventStore
}

// NewStoreProvider wraps a persistent event store.
func NewStoreProvider(s EventStore) *StoreProvider {
	return &StoreProvider{store: s}
}

func (p *StoreProvider) FindEvents(ctx context.Context, period calendar.Period) ([]calendar.Event, error) {
	return p.store.LoadRange(ctx, period.Begin(), period.End())
}
