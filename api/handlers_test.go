/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Period construction and child iteration over HTTP
- Event CRUD against an in-memory SQLite store
- Provider fan-out through the period events endpoint
*/
package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian/calendar-engine/api"
	"github.com/meridian/calendar-engine/calendar"
	"github.com/meridian/calendar-engine/provider"
	"github.com/meridian/calendar-engine/store/sqlite"
)

func newTestRouter(t *testing.T) (http.Handler, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	manager := provider.NewManager()
	manager.Register(provider.NewStoreProvider(store), "store")

	h := api.NewHandler(calendar.NewFactory(), manager, store, nil)
	return api.NewRouter(h), store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, out any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if out != nil && rec.Code < 300 {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

// =============================================================================
// PERIOD ENDPOINTS
// =============================================================================

func TestGetPeriod_NormalizesInstant(t *testing.T) {
	router, _ := newTestRouter(t)

	var dto api.PeriodDTO
	rec := doJSON(t, router, http.MethodGet, "/api/periods/day?at=2024-03-15T10:30:00Z", nil, &dto)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "day", dto.Granularity)
	assert.True(t, dto.Begin.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
	assert.True(t, dto.End.Equal(time.Date(2024, time.March, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Friday", dto.Display)
}

func TestGetPeriod_UnknownGranularity_BadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/periods/quarter", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPeriod_MalformedInstant_BadRequest(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/periods/day?at=yesterday", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetChildren_DayHasTwentyFourHours(t *testing.T) {
	router, _ := newTestRouter(t)

	var children []api.ChildDTO
	rec := doJSON(t, router, http.MethodGet, "/api/periods/day/children?at=2024-03-15T10:30:00Z", nil, &children)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, children, 24)
	assert.Equal(t, 0, children[0].Index)
	assert.Equal(t, 23, children[23].Index)
	assert.Equal(t, "hour", children[0].Period.Granularity)
}

func TestGetChildren_YearHasTwelveMonths(t *testing.T) {
	router, _ := newTestRouter(t)

	var children []api.ChildDTO
	rec := doJSON(t, router, http.MethodGet, "/api/periods/year/children?at=2024-06-01T00:00:00Z", nil, &children)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, children, 12)
	assert.Equal(t, 1, children[0].Index)
	assert.Equal(t, "January", children[0].Period.Display)
	assert.Equal(t, 12, children[11].Index)
}

// =============================================================================
// EVENT ENDPOINTS
// =============================================================================

func TestCreateListDeleteEvent(t *testing.T) {
	router, _ := newTestRouter(t)

	// GIVEN: A created event
	var created api.EventDTO
	rec := doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Title: "Planning",
		Begin: "2024-03-15T10:00:00Z",
		End:   "2024-03-15T11:30:00Z",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Planning", created.Title)

	// WHEN: Listing events
	var listed []api.EventDTO
	rec = doJSON(t, router, http.MethodGet, "/api/events", nil, &listed)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// AND: The containing day serves it through the provider fan-out
	var found []api.EventDTO
	rec = doJSON(t, router, http.MethodGet, "/api/periods/day/events?at=2024-03-15T00:00:00Z", nil, &found)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, found, 1)

	// AND: The next day serves nothing
	var empty []api.EventDTO
	rec = doJSON(t, router, http.MethodGet, "/api/periods/day/events?at=2024-03-16T00:00:00Z", nil, &empty)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, empty)

	// WHEN: Deleting it
	rec = doJSON(t, router, http.MethodDelete, "/api/events/"+created.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/events", nil, &listed)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, listed)
}

func TestCreateEvent_Validation(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Begin: "2024-03-15T10:00:00Z",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "title required")

	rec = doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Title: "Backwards",
		Begin: "2024-03-15T10:00:00Z",
		End:   "2024-03-15T09:00:00Z",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "end before begin")

	rec = doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Title: "Bad time",
		Begin: "15/03/2024",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "non-RFC3339 begin")
}

func TestCreateEvent_DefaultEndIsOneHour(t *testing.T) {
	router, _ := newTestRouter(t)

	var created api.EventDTO
	rec := doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Title: "Quick sync",
		Begin: "2024-03-15T10:00:00Z",
	}, &created)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Hour, created.End.Sub(created.Begin))
}

// =============================================================================
// UTILIZATION
// =============================================================================

func TestGetUtilization(t *testing.T) {
	router, _ := newTestRouter(t)

	// GIVEN: A 6h event on 2024-03-15
	rec := doJSON(t, router, http.MethodPost, "/api/events", api.CreateEventRequest{
		Title: "Offsite",
		Begin: "2024-03-15T09:00:00Z",
		End:   "2024-03-15T15:00:00Z",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// WHEN: Asking for the day's utilization
	var dto api.UtilizationDTO
	rec = doJSON(t, router, http.MethodGet, "/api/periods/day/utilization?at=2024-03-15T00:00:00Z", nil, &dto)

	// THEN: 6 of 24 hours are busy
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, dto.EventCount)
	assert.Equal(t, "6", dto.BusyHours)
	assert.Equal(t, "25", dto.Utilization)
}
