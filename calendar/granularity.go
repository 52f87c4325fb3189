package calendar

// =============================================================================
// GRANULARITY - Closed set of period variants
// =============================================================================

// Granularity identifies a period variant. The set is closed: the factory
// validates names against these constants and rejects everything else, so
// callers cannot introduce new variants through subclassing or registration.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a granularity name. Unknown names return a
// *GranularityError wrapping ErrInvalidGranularity.
func ParseGranularity(name string) (Granularity, error) {
	switch Granularity(name) {
	case GranularityHour, GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(name), nil
	default:
		return "", &GranularityError{Name: name}
	}
}

// child returns the next finer granularity, or "" when the receiver is the
// finest level (Hour has no sub-periods).
func (g Granularity) child() Granularity {
	switch g {
	case GranularityYear:
		return GranularityMonth
	case GranularityMonth, GranularityWeek:
		return GranularityDay
	case GranularityDay:
		return GranularityHour
	default:
		return ""
	}
}
