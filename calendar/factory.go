/*
factory.go - Normalizing construction and navigation of periods

PURPOSE:

	The Factory is the supported way to obtain periods. It truncates any
	instant to the requested variant's boundary and then constructs, so
	CreatePeriod is total over valid instants: the only possible failure
	is an unknown granularity name.

CONFIGURATION:

	The factory is configuration-only (no mutable state). It carries the
	first weekday used for Week boundaries and the location instants are
	normalized into. The zero value normalizes in UTC with Sunday weeks;
	NewFactory returns the conventional Monday/UTC setup.

	Periods do not keep a back-reference to the factory. Anything that
	needs the configuration later (child iteration, week construction)
	takes the factory explicitly, so logically-equal periods never share
	hidden context.

SEE ALSO:
  - period.go: Variants and boundary predicates
  - iterator.go: Factory.Children
*/
package calendar

import "time"

// Factory normalizes instants to period boundaries and constructs the
// matching variant. Safe for concurrent use: it holds configuration only.
type Factory struct {
	// FirstWeekday is the weekday a Week begins on.
	FirstWeekday time.Weekday

	// Location is the location instants are normalized into before
	// truncation. Nil means UTC.
	Location *time.Location
}

// NewFactory returns a factory with Monday weeks and UTC normalization.
func NewFactory() *Factory {
	return &Factory{FirstWeekday: time.Monday, Location: time.UTC}
}

func (f *Factory) location() *time.Location {
	if f.Location == nil {
		return time.UTC
	}
	return f.Location
}

// =============================================================================
// CONSTRUCTION
// =============================================================================

// CreatePeriod normalizes t to the boundary of granularity g and constructs
// the period containing t. Normalization is total; the only error is an
// unknown granularity (*GranularityError wrapping ErrInvalidGranularity).
func (f *Factory) CreatePeriod(g Granularity, t time.Time) (Period, error) {
	switch g {
	case GranularityHour:
		return f.HourOf(t), nil
	case GranularityDay:
		return f.DayOf(t), nil
	case GranularityWeek:
		return f.WeekOf(t), nil
	case GranularityMonth:
		return f.MonthOf(t), nil
	case GranularityYear:
		return f.YearOf(t), nil
	default:
		return nil, &GranularityError{Name: string(g)}
	}
}

// HourOf returns the hour containing t (minutes and seconds stripped).
func (f *Factory) HourOf(t time.Time) Hour {
	t = t.In(f.location())
	begin := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return Hour{begin: begin}
}

// DayOf returns the day containing t (time of day stripped).
func (f *Factory) DayOf(t time.Time) Day {
	t = t.In(f.location())
	begin := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Day{begin: begin}
}

// WeekOf returns the week containing t, starting on the configured first
// weekday at midnight.
func (f *Factory) WeekOf(t time.Time) Week {
	day := f.DayOf(t)
	back := (int(day.Begin().Weekday()) - int(f.FirstWeekday) + 7) % 7
	return Week{begin: day.Begin().AddDate(0, 0, -back), firstWeekday: f.FirstWeekday}
}

// MonthOf returns the month containing t.
func (f *Factory) MonthOf(t time.Time) Month {
	t = t.In(f.location())
	begin := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return Month{begin: begin}
}

// YearOf returns the year containing t.
func (f *Factory) YearOf(t time.Time) Year {
	t = t.In(f.location())
	begin := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return Year{begin: begin}
}

// =============================================================================
// NAVIGATION
// =============================================================================

// CreateNext returns the chronological successor of p, same granularity.
func (f *Factory) CreateNext(p Period) Period {
	return p.Next()
}

// CreatePrevious returns the chronological predecessor of p, same granularity.
func (f *Factory) CreatePrevious(p Period) Period {
	return p.Previous()
}
