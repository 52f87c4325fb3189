/*
handlers.go - HTTP API handlers for the calendar engine

PURPOSE:

	Exposes periods, child iteration and event queries via REST. Handles
	HTTP request/response, JSON serialization, and delegates to the
	calendar core and the provider manager.

ENDPOINTS:

	Periods:
	  GET /api/periods/{granularity}                Period containing ?at=
	  GET /api/periods/{granularity}/children       Immediate child periods
	  GET /api/periods/{granularity}/events         Merged provider events
	  GET /api/periods/{granularity}/utilization    Busy-time summary

	Events (store-backed):
	  GET    /api/events          List stored events
	  POST   /api/events          Create event
	  DELETE /api/events/{id}     Delete event

QUERY PARAMETERS:

	at: RFC 3339 instant the period is built around. Defaults to now.

ERROR HANDLING:

	Errors are returned as JSON with appropriate HTTP status:
	- 400: Unknown granularity, malformed instant or body
	- 500: Store or provider failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/meridian/calendar-engine/calendar"
	"github.com/meridian/calendar-engine/provider"
)

// EventStore is the store surface the handlers need. Implemented by
// store/sqlite and store/postgres.
type EventStore interface {
	provider.EventStore
	SaveEvent(ctx context.Context, e calendar.Event) error
	DeleteEvent(ctx context.Context, id string) error
	LoadAll(ctx context.Context) ([]calendar.Event, error)
}

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Factory *calendar.Factory
	Manager *provider.Manager
	Store   EventStore

	logger *zap.SugaredLogger
}

// NewHandler creates a handler. A nil logger disables logging.
func NewHandler(factory *calendar.Factory, manager *provider.Manager, store EventStore, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	initMetrics()
	return &Handler{
		Factory: factory,
		Manager: manager,
		Store:   store,
		logger:  logger,
	}
}

// =============================================================================
// PERIOD ENDPOINTS
// =============================================================================

// GetPeriod returns the period of the requested granularity containing ?at.
// GET /api/periods/{granularity}
func (h *Handler) GetPeriod(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodFromRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toPeriodDTO(p))
}

// GetChildren returns the immediate child periods with their indexes.
// GET /api/periods/{granularity}/children
func (h *Handler) GetChildren(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodFromRequest(w, r)
	if !ok {
		return
	}

	children := []ChildDTO{}
	it := h.Factory.Children(p)
	for it.Next() {
		children = append(children, ChildDTO{
			Index:  it.Index(),
			Period: toPeriodDTO(it.Current()),
		})
	}
	writeJSON(w, http.StatusOK, children)
}

// GetPeriodEvents fans the period out to every registered provider.
// GET /api/periods/{granularity}/events
func (h *Handler) GetPeriodEvents(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodFromRequest(w, r)
	if !ok {
		return
	}

	events, err := h.Manager.FindEvents(r.Context(), p)
	if err != nil {
		providerQueries.WithLabelValues(resultError).Inc()
		h.logger.Errorw("provider query failed", "granularity", p.Granularity(), "err", err)
		writeError(w, http.StatusInternalServerError, "Failed to query providers", err)
		return
	}
	providerQueries.WithLabelValues(resultSuccess).Inc()
	eventsServed.Add(float64(len(events)))

	writeJSON(w, http.StatusOK, toEventDTOs(events))
}

// GetUtilization summarizes how much of the period is covered by events.
// GET /api/periods/{granularity}/utilization
func (h *Handler) GetUtilization(w http.ResponseWriter, r *http.Request) {
	p, ok := h.periodFromRequest(w, r)
	if !ok {
		return
	}

	events, err := h.Manager.FindEvents(r.Context(), p)
	if err != nil {
		providerQueries.WithLabelValues(resultError).Inc()
		writeError(w, http.StatusInternalServerError, "Failed to query providers", err)
		return
	}
	providerQueries.WithLabelValues(resultSuccess).Inc()

	var busy time.Duration
	for _, e := range events {
		busy += overlap(e, p)
	}

	busyHours := decimal.NewFromFloat(busy.Hours())
	spanHours := decimal.NewFromFloat(p.End().Sub(p.Begin()).Hours())
	pct := busyHours.Div(spanHours).Mul(decimal.NewFromInt(100))

	writeJSON(w, http.StatusOK, UtilizationDTO{
		Period:      toPeriodDTO(p),
		EventCount:  len(events),
		BusyHours:   busyHours.Round(2).String(),
		Utilization: pct.Round(1).String(),
	})
}

// overlap clamps the event span to the period and returns the covered time.
func overlap(e calendar.Event, p calendar.Period) time.Duration {
	begin := e.Begin
	if begin.Before(p.Begin()) {
		begin = p.Begin()
	}
	end := e.End
	if end.After(p.End()) {
		end = p.End()
	}
	if !end.After(begin) {
		return 0
	}
	return end.Sub(begin)
}

// =============================================================================
// EVENT ENDPOINTS
// =============================================================================

// ListEvents returns all stored events.
// GET /api/events
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.LoadAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}
	writeJSON(w, http.StatusOK, toEventDTOs(events))
}

// CreateEvent stores a new event.
// POST /api/events
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required", nil)
		return
	}

	begin, err := time.Parse(time.RFC3339, req.Begin)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid begin (use RFC 3339)", err)
		return
	}

	end := begin.Add(time.Hour)
	if req.End != "" {
		end, err = time.Parse(time.RFC3339, req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid end (use RFC 3339)", err)
			return
		}
	}
	if !end.After(begin) {
		writeError(w, http.StatusBadRequest, "End must be after begin", nil)
		return
	}

	event := calendar.Event{
		ID:    uuid.NewString(),
		Title: req.Title,
		Begin: begin,
		End:   end,
	}
	if err := h.Store.SaveEvent(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save event", err)
		return
	}
	eventsStored.Inc()

	writeJSON(w, http.StatusCreated, EventDTO{ID: event.ID, Title: event.Title, Begin: event.Begin, End: event.End})
}

// DeleteEvent removes a stored event. Deleting an absent event succeeds.
// DELETE /api/events/{id}
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// periodFromRequest resolves {granularity} and ?at into a period. On failure
// it writes the error response and returns ok=false.
func (h *Handler) periodFromRequest(w http.ResponseWriter, r *http.Request) (calendar.Period, bool) {
	g, err := calendar.ParseGranularity(chi.URLParam(r, "granularity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unknown granularity", err)
		return nil, false
	}

	at := time.Now()
	if raw := r.URL.Query().Get("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid at (use RFC 3339)", err)
			return nil, false
		}
	}

	p, err := h.Factory.CreatePeriod(g, at)
	if err != nil {
		// ParseGranularity already vetted g; anything here is unexpected.
		status := http.StatusInternalServerError
		if errors.Is(err, calendar.ErrInvalidGranularity) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to create period", err)
		return nil, false
	}
	return p, true
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
