/*
collection.go - Event collection indexed by a pluggable key function

PURPOSE:

	Buckets events under string keys computed from each event's begin
	instant by a caller-supplied index function. The default function
	keys by calendar date ("2006-01-02"), so a Day period's begin maps
	straight onto a bucket.

INVARIANTS:
  - Every stored event sits in exactly the bucket index(event.Begin).
  - Count() equals the sum of all bucket sizes at all times.
  - Insertion order is preserved within a bucket; ordering across
    buckets is unspecified (map iteration).

REMOVAL POLICY:

	Remove scans only the event's own bucket and removes at most one
	entry with a matching ID. Removing an absent event is a silent no-op,
	not an error. If the same ID somehow appears twice in one bucket,
	only the first match is removed.

CONCURRENCY:

	No internal locking. The collection targets single-threaded use;
	concurrent callers must serialize access externally.
*/
package calendar

import "time"

// IndexFunc maps an instant to a bucket key. It must be pure and total:
// the collection relies on it returning the same key for the same instant
// at Add and Remove time.
type IndexFunc func(t time.Time) string

// DefaultIndex keys by calendar date of the instant.
func DefaultIndex(t time.Time) string {
	return t.Format("2006-01-02")
}

// Collection stores events bucketed by an index function.
type Collection struct {
	buckets map[string][]Event
	count   int
	index   IndexFunc
}

// NewCollection creates an empty collection. A nil index function falls back
// to DefaultIndex.
func NewCollection(index IndexFunc) *Collection {
	if index == nil {
		index = DefaultIndex
	}
	return &Collection{
		buckets: make(map[string][]Event),
		index:   index,
	}
}

// Add appends the event to the bucket keyed by its begin instant.
func (c *Collection) Add(e Event) {
	key := c.index(e.Begin)
	c.buckets[key] = append(c.buckets[key], e)
	c.count++
}

// Remove deletes at most one event with a matching ID from the event's own
// bucket. Absence is a no-op; the count only decreases on an actual match.
func (c *Collection) Remove(e Event) {
	key := c.index(e.Begin)
	bucket, ok := c.buckets[key]
	if !ok {
		return
	}
	for i, stored := range bucket {
		if stored.ID == e.ID {
			bucket = append(bucket[:i], bucket[i+1:]...)
			if len(bucket) == 0 {
				delete(c.buckets, key)
			} else {
				c.buckets[key] = bucket
			}
			c.count--
			return
		}
	}
}

// =============================================================================
// LOOKUPS - Never fail; absence is an empty result
// =============================================================================

// FindKey returns the events stored under a raw bucket key. The result is
// the caller's to keep: mutating it never touches the bucket.
func (c *Collection) FindKey(key string) []Event {
	bucket := c.buckets[key]
	if len(bucket) == 0 {
		return nil
	}
	out := make([]Event, len(bucket))
	copy(out, bucket)
	return out
}

// FindAt returns the events in the bucket the instant indexes to.
func (c *Collection) FindAt(t time.Time) []Event {
	return c.FindKey(c.index(t))
}

// FindPeriod reduces the period to its begin instant and re-indexes.
func (c *Collection) FindPeriod(p Period) []Event {
	return c.FindAt(p.Begin())
}

// Has reports whether the bucket under key holds any events.
func (c *Collection) Has(key string) bool {
	return len(c.buckets[key]) > 0
}

// All returns every stored event, bucket by bucket. Order across buckets is
// unspecified; insertion order within a bucket is preserved.
func (c *Collection) All() []Event {
	out := make([]Event, 0, c.count)
	for _, bucket := range c.buckets {
		out = append(out, bucket...)
	}
	return out
}

// Count returns the maintained total in O(1).
func (c *Collection) Count() int {
	return c.count
}
