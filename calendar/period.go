/*
period.go - Period variants and their boundary rules

PURPOSE:

	Defines the Period capability and the five concrete variants
	(Hour, Day, Week, Month, Year). A period is a half-open span
	[begin, end) of fixed granularity; containment is defined purely
	by instant comparison, never by object identity.

BOUNDARY RULES:

	Hour:  minute, second and nanosecond are zero
	Day:   midnight
	Week:  midnight on the configured first weekday
	Month: the 1st at midnight
	Year:  January 1st at midnight

	Direct constructors (NewHour, NewDay, ...) validate these rules and
	fail with ErrInvalidBoundary; they never normalize. Use the Factory
	when you want total, normalizing construction.

CALENDAR ARITHMETIC:

	Next/Previous use time.AddDate so month lengths, leap years and DST
	transitions follow the host calendar rather than fixed durations.
	The exception is Hour, whose span genuinely is one wall-clock hour.

SEE ALSO:
  - factory.go: Normalizing construction and navigation
  - iterator.go: Child traversal (Year→Month→Day→Hour)
*/
package calendar

import (
	"fmt"
	"strconv"
	"time"
)

// =============================================================================
// PERIOD - The core capability
// =============================================================================

// Period is a contiguous half-open time span [Begin, End) of a fixed
// granularity. Implementations are immutable value types; navigation
// returns new values.
type Period interface {
	Granularity() Granularity

	// Begin is inclusive, End is exclusive.
	Begin() time.Time
	End() time.Time

	// Contains reports whether Begin <= t < End.
	Contains(t time.Time) bool

	// Format formats the begin instant with the given layout.
	Format(layout string) string

	// DisplayString returns the variant-specific human label:
	// day name, month name, "Week N", the year number, or "HH:MM".
	DisplayString() string

	// Next and Previous return the adjacent period of the same granularity.
	Next() Period
	Previous() Period
}

// contains is the shared half-open containment rule.
func contains(begin, end, t time.Time) bool {
	return !t.Before(begin) && t.Before(end)
}

// =============================================================================
// BOUNDARY PREDICATES
// =============================================================================

// IsHourBegin reports whether t sits on an hour boundary.
func IsHourBegin(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// IsDayBegin reports whether t is midnight.
func IsDayBegin(t time.Time) bool {
	return t.Hour() == 0 && IsHourBegin(t)
}

// IsWeekBegin reports whether t is midnight on the given first weekday.
func IsWeekBegin(t time.Time, firstWeekday time.Weekday) bool {
	return t.Weekday() == firstWeekday && IsDayBegin(t)
}

// IsMonthBegin reports whether t is the first of a month at midnight.
func IsMonthBegin(t time.Time) bool {
	return t.Day() == 1 && IsDayBegin(t)
}

// IsYearBegin reports whether t is January 1st at midnight.
func IsYearBegin(t time.Time) bool {
	return t.Month() == time.January && IsMonthBegin(t)
}

// ValidBegin dispatches to the variant's boundary predicate. firstWeekday
// only matters for weeks; an unknown granularity is never a valid begin.
func ValidBegin(g Granularity, t time.Time, firstWeekday time.Weekday) bool {
	switch g {
	case GranularityHour:
		return IsHourBegin(t)
	case GranularityDay:
		return IsDayBegin(t)
	case GranularityWeek:
		return IsWeekBegin(t, firstWeekday)
	case GranularityMonth:
		return IsMonthBegin(t)
	case GranularityYear:
		return IsYearBegin(t)
	default:
		return false
	}
}

// =============================================================================
// HOUR
// =============================================================================

// Hour is a single wall-clock hour.
type Hour struct {
	begin time.Time
}

// NewHour constructs an Hour starting at begin. Fails with a *BoundaryError
// if begin is not on an hour boundary.
func NewHour(begin time.Time) (Hour, error) {
	if !IsHourBegin(begin) {
		return Hour{}, &BoundaryError{Granularity: GranularityHour, Instant: begin}
	}
	return Hour{begin: begin}, nil
}

func (h Hour) Granularity() Granularity    { return GranularityHour }
func (h Hour) Begin() time.Time            { return h.begin }
func (h Hour) End() time.Time              { return h.begin.Add(time.Hour) }
func (h Hour) Contains(t time.Time) bool   { return contains(h.Begin(), h.End(), t) }
func (h Hour) Format(layout string) string { return h.begin.Format(layout) }
func (h Hour) DisplayString() string       { return h.begin.Format("15:04") }
func (h Hour) Next() Period                { return Hour{begin: h.begin.Add(time.Hour)} }
func (h Hour) Previous() Period            { return Hour{begin: h.begin.Add(-time.Hour)} }

// =============================================================================
// DAY
// =============================================================================

// Day is one calendar day. Its span is midnight to next midnight, which is
// not always 24h on DST transition days.
type Day struct {
	begin time.Time
}

// NewDay constructs a Day starting at begin. Fails with a *BoundaryError
// if begin is not midnight.
func NewDay(begin time.Time) (Day, error) {
	if !IsDayBegin(begin) {
		return Day{}, &BoundaryError{Granularity: GranularityDay, Instant: begin}
	}
	return Day{begin: begin}, nil
}

func (d Day) Granularity() Granularity    { return GranularityDay }
func (d Day) Begin() time.Time            { return d.begin }
func (d Day) End() time.Time              { return d.begin.AddDate(0, 0, 1) }
func (d Day) Contains(t time.Time) bool   { return contains(d.Begin(), d.End(), t) }
func (d Day) Format(layout string) string { return d.begin.Format(layout) }
func (d Day) DisplayString() string       { return d.begin.Format("Monday") }
func (d Day) Next() Period                { return Day{begin: d.begin.AddDate(0, 0, 1)} }
func (d Day) Previous() Period            { return Day{begin: d.begin.AddDate(0, 0, -1)} }

// =============================================================================
// WEEK
// =============================================================================

// Week is seven calendar days starting on a configured first weekday.
// The first weekday travels with the value so navigation stays aligned.
type Week struct {
	begin        time.Time
	firstWeekday time.Weekday
}

// NewWeek constructs a Week starting at begin. Fails with a *BoundaryError
// if begin is not midnight on firstWeekday.
func NewWeek(begin time.Time, firstWeekday time.Weekday) (Week, error) {
	if !IsWeekBegin(begin, firstWeekday) {
		return Week{}, &BoundaryError{Granularity: GranularityWeek, Instant: begin}
	}
	return Week{begin: begin, firstWeekday: firstWeekday}, nil
}

func (w Week) Granularity() Granularity    { return GranularityWeek }
func (w Week) Begin() time.Time            { return w.begin }
func (w Week) End() time.Time              { return w.begin.AddDate(0, 0, 7) }
func (w Week) Contains(t time.Time) bool   { return contains(w.Begin(), w.End(), t) }
func (w Week) Format(layout string) string { return w.begin.Format(layout) }

// DisplayString returns "Week N" where N is the ISO 8601 week number of the
// week's first day.
func (w Week) DisplayString() string {
	_, isoWeek := w.begin.ISOWeek()
	return fmt.Sprintf("Week %d", isoWeek)
}

func (w Week) Next() Period {
	return Week{begin: w.begin.AddDate(0, 0, 7), firstWeekday: w.firstWeekday}
}

func (w Week) Previous() Period {
	return Week{begin: w.begin.AddDate(0, 0, -7), firstWeekday: w.firstWeekday}
}

// FirstWeekday returns the weekday this week starts on.
func (w Week) FirstWeekday() time.Weekday { return w.firstWeekday }

// =============================================================================
// MONTH
// =============================================================================

// Month spans the 1st of a month to the 1st of the next month (28-31 days).
type Month struct {
	begin time.Time
}

// NewMonth constructs a Month starting at begin. Fails with a *BoundaryError
// if begin is not the first of a month at midnight.
func NewMonth(begin time.Time) (Month, error) {
	if !IsMonthBegin(begin) {
		return Month{}, &BoundaryError{Granularity: GranularityMonth, Instant: begin}
	}
	return Month{begin: begin}, nil
}

func (m Month) Granularity() Granularity    { return GranularityMonth }
func (m Month) Begin() time.Time            { return m.begin }
func (m Month) End() time.Time              { return m.begin.AddDate(0, 1, 0) }
func (m Month) Contains(t time.Time) bool   { return contains(m.Begin(), m.End(), t) }
func (m Month) Format(layout string) string { return m.begin.Format(layout) }
func (m Month) DisplayString() string       { return m.begin.Format("January") }
func (m Month) Next() Period                { return Month{begin: m.begin.AddDate(0, 1, 0)} }
func (m Month) Previous() Period            { return Month{begin: m.begin.AddDate(0, -1, 0)} }

// =============================================================================
// YEAR
// =============================================================================

// Year spans January 1st to the next January 1st (365 or 366 days).
type Year struct {
	begin time.Time
}

// NewYear constructs a Year starting at begin. Fails with a *BoundaryError
// if begin is not January 1st at midnight.
func NewYear(begin time.Time) (Year, error) {
	if !IsYearBegin(begin) {
		return Year{}, &BoundaryError{Granularity: GranularityYear, Instant: begin}
	}
	return Year{begin: begin}, nil
}

func (y Year) Granularity() Granularity    { return GranularityYear }
func (y Year) Begin() time.Time            { return y.begin }
func (y Year) End() time.Time              { return y.begin.AddDate(1, 0, 0) }
func (y Year) Contains(t time.Time) bool   { return contains(y.Begin(), y.End(), t) }
func (y Year) Format(layout string) string { return y.begin.Format(layout) }
func (y Year) DisplayString() string       { return strconv.Itoa(y.begin.Year()) }
func (y Year) Next() Period                { return Year{begin: y.begin.AddDate(1, 0, 0)} }
func (y Year) Previous() Period            { return Year{begin: y.begin.AddDate(-1, 0, 0)} }
