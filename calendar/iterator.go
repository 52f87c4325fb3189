/*
iterator.go - Lazy traversal of a period's immediate children

PURPOSE:

	A ChildIterator walks the immediate sub-periods of a parent in
	chronological order: Year→Month, Month→Day, Week→Day, Day→Hour.
	Hour is the floor of the hierarchy and yields an empty sequence.

	Children are built lazily through the factory: the first child is the
	child-granularity period at the parent's begin, and each advance asks
	the current child for its successor, stopping as soon as the
	successor's begin falls outside the parent.

STATE MACHINE:

	NotStarted -> Next() -> child_0 -> Next() -> child_1 -> ... -> Exhausted
	Rewind() restarts and immediately positions at child_0, so Current()
	is valid right after a rewind without a further Next().

CONCURRENCY:

	An iterator is single-traversal mutable state. Concurrent traversals
	of the same parent must each use their own iterator.

CHILD INDEXES:

	Index() is granularity-specific:
	  Year→Month:  month-of-year, 1..12
	  Month→Day:   day-of-month, 1..31
	  Week→Day:    offset from the week's first day, 0..6
	  Day→Hour:    hour-of-day, 0..23
*/
package calendar

// ChildIterator enumerates the immediate sub-periods of a parent period.
// Obtain one from Factory.Children.
type ChildIterator struct {
	factory *Factory
	parent  Period
	child   Granularity

	current   Period
	pos       int // ordinal of current child, 0-based
	started   bool
	exhausted bool
}

// Children returns an iterator over the immediate children of p. A parent at
// the floor of the hierarchy (Hour) yields an empty sequence.
func (f *Factory) Children(p Period) *ChildIterator {
	return &ChildIterator{factory: f, parent: p, child: p.Granularity().child()}
}

// Next advances to the next child and reports whether one is available.
// The first call positions the iterator at the first child.
func (it *ChildIterator) Next() bool {
	if it.exhausted || it.child == "" {
		it.exhausted = true
		return false
	}

	if !it.started {
		first, err := it.factory.CreatePeriod(it.child, it.parent.Begin())
		if err != nil {
			// child is always a member of the closed granularity set
			it.exhausted = true
			return false
		}
		it.current = first
		it.started = true
		it.pos = 0
		return true
	}

	succ := it.current.Next()
	if !it.parent.Contains(succ.Begin()) {
		it.exhausted = true
		return false
	}
	it.current = succ
	it.pos++
	return true
}

// Current returns the child the iterator is positioned at. It is only valid
// after Next has returned true or after Rewind on a non-empty sequence.
func (it *ChildIterator) Current() Period {
	return it.current
}

// Index returns the granularity-specific index of the current child (see the
// file header for the per-pairing meaning).
func (it *ChildIterator) Index() int {
	if it.current == nil {
		return 0
	}
	begin := it.current.Begin()
	switch it.parent.Granularity() {
	case GranularityYear:
		return int(begin.Month())
	case GranularityMonth:
		return begin.Day()
	case GranularityWeek:
		return it.pos
	case GranularityDay:
		return begin.Hour()
	default:
		return it.pos
	}
}

// Valid reports whether the iterator is positioned at a child.
func (it *ChildIterator) Valid() bool {
	return it.started && !it.exhausted
}

// Rewind restarts the traversal and positions the iterator at the first
// child, so Current is usable immediately. On an empty sequence the iterator
// goes straight to exhausted.
func (it *ChildIterator) Rewind() {
	it.current = nil
	it.pos = 0
	it.started = false
	it.exhausted = false
	it.Next()
}

// CollectChildren drains a fresh traversal of p and returns all children.
// Convenience for callers that do not need lazy iteration.
func (f *Factory) CollectChildren(p Period) []Period {
	var out []Period
	it := f.Children(p)
	for it.Next() {
		out = append(out, it.Current())
	}
	return out
}
