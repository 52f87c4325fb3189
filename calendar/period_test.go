package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/calendar-engine/calendar"
)

// =============================================================================
// BOUNDARY PREDICATES
// =============================================================================

func TestBoundaryPredicates(t *testing.T) {
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	tenThirty := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
	firstOfMonth := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	janFirst := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, calendar.IsHourBegin(midnight))
	assert.False(t, calendar.IsHourBegin(tenThirty))

	assert.True(t, calendar.IsDayBegin(midnight))
	assert.False(t, calendar.IsDayBegin(tenThirty))

	// 2024-03-15 is a Friday
	assert.True(t, calendar.IsWeekBegin(midnight, time.Friday))
	assert.False(t, calendar.IsWeekBegin(midnight, time.Monday))

	assert.True(t, calendar.IsMonthBegin(firstOfMonth))
	assert.False(t, calendar.IsMonthBegin(midnight))

	assert.True(t, calendar.IsYearBegin(janFirst))
	assert.False(t, calendar.IsYearBegin(firstOfMonth))
}

func TestValidBegin_DispatchesByGranularity(t *testing.T) {
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC) // a Friday
	janFirst := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, calendar.ValidBegin(calendar.GranularityHour, midnight, time.Monday))
	assert.True(t, calendar.ValidBegin(calendar.GranularityDay, midnight, time.Monday))
	assert.True(t, calendar.ValidBegin(calendar.GranularityWeek, midnight, time.Friday))
	assert.False(t, calendar.ValidBegin(calendar.GranularityWeek, midnight, time.Monday))
	assert.False(t, calendar.ValidBegin(calendar.GranularityMonth, midnight, time.Monday))
	assert.True(t, calendar.ValidBegin(calendar.GranularityYear, janFirst, time.Monday))

	// Unknown granularities never validate.
	assert.False(t, calendar.ValidBegin(calendar.Granularity("quarter"), midnight, time.Monday))
}

func TestNewDay_InvalidBoundary_Fails(t *testing.T) {
	// GIVEN: An instant at 10:30, not midnight
	at := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	// WHEN: Constructing a Day directly (bypassing the factory)
	_, err := calendar.NewDay(at)

	// THEN: It fails with ErrInvalidBoundary and carries context
	require.Error(t, err)
	assert.True(t, errors.Is(err, calendar.ErrInvalidBoundary))

	var boundaryErr *calendar.BoundaryError
	require.True(t, errors.As(err, &boundaryErr))
	assert.Equal(t, calendar.GranularityDay, boundaryErr.Granularity)
	assert.True(t, calendar.IsClientError(err))
}

func TestDirectConstructors_ValidBoundaries(t *testing.T) {
	midnight := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	day, err := calendar.NewDay(midnight)
	require.NoError(t, err)
	assert.Equal(t, midnight, day.Begin())
	assert.Equal(t, midnight.AddDate(0, 0, 1), day.End())

	hour, err := calendar.NewHour(midnight.Add(10 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, midnight.Add(11*time.Hour), hour.End())

	_, err = calendar.NewWeek(midnight, time.Friday)
	require.NoError(t, err)
	_, err = calendar.NewWeek(midnight, time.Monday)
	assert.True(t, errors.Is(err, calendar.ErrInvalidBoundary))

	_, err = calendar.NewMonth(midnight)
	assert.True(t, errors.Is(err, calendar.ErrInvalidBoundary))

	year, err := calendar.NewYear(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), year.End())
}

// =============================================================================
// CONTAINMENT - Half-open [begin, end)
// =============================================================================

func TestContains_HalfOpen(t *testing.T) {
	day, err := calendar.NewDay(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, day.Contains(day.Begin()), "begin is inclusive")
	assert.True(t, day.Contains(day.Begin().Add(23*time.Hour+59*time.Minute)))
	assert.False(t, day.Contains(day.End()), "end is exclusive")
	assert.False(t, day.Contains(day.Begin().Add(-time.Nanosecond)))
}

// =============================================================================
// NAVIGATION
// =============================================================================

func TestNextPrevious_RoundTrip(t *testing.T) {
	f := calendar.NewFactory()
	at := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	granularities := []calendar.Granularity{
		calendar.GranularityHour,
		calendar.GranularityDay,
		calendar.GranularityWeek,
		calendar.GranularityMonth,
		calendar.GranularityYear,
	}

	for _, g := range granularities {
		p, err := f.CreatePeriod(g, at)
		require.NoError(t, err)

		back := p.Next().Previous()
		assert.True(t, back.Begin().Equal(p.Begin()), "%s: begin after round trip", g)
		assert.True(t, back.End().Equal(p.End()), "%s: end after round trip", g)
		assert.Equal(t, g, back.Granularity())
	}
}

func TestMonthNavigation_VariableLengths(t *testing.T) {
	// GIVEN: January 2024
	jan, err := calendar.NewMonth(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// WHEN: Stepping forward twice
	feb := jan.Next()
	mar := feb.Next()

	// THEN: Boundaries follow real month lengths (2024 is a leap year)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), feb.Begin())
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), feb.End())
	assert.Equal(t, 29*24*time.Hour, feb.End().Sub(feb.Begin()))
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), mar.End())
}

// =============================================================================
// DISPLAY
// =============================================================================

func TestDisplayStrings(t *testing.T) {
	f := calendar.NewFactory()
	at := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC) // a Friday

	assert.Equal(t, "10:00", f.HourOf(at).DisplayString())
	assert.Equal(t, "Friday", f.DayOf(at).DisplayString())
	assert.Equal(t, "Week 11", f.WeekOf(at).DisplayString())
	assert.Equal(t, "March", f.MonthOf(at).DisplayString())
	assert.Equal(t, "2024", f.YearOf(at).DisplayString())
}

func TestFormat_DelegatesToBegin(t *testing.T) {
	f := calendar.NewFactory()
	at := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-15", f.DayOf(at).Format("2006-01-02"))
	assert.Equal(t, "2024-03", f.MonthOf(at).Format("2006-01"))
}
