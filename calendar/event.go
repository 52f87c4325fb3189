package calendar

import "time"

// =============================================================================
// EVENT - Opaque record with a begin/end span
// =============================================================================

// Event is the record stored and served by this module. Beyond ID, Begin and
// End it is opaque: indexing uses Begin only, overlap checks use both.
type Event struct {
	ID    string
	Title string
	Begin time.Time
	End   time.Time
}

// Overlaps reports whether the event's [Begin, End) span shares any instant
// with the period.
func (e Event) Overlaps(p Period) bool {
	return e.Begin.Before(p.End()) && p.Begin().Before(e.End)
}
