/*
Package ics provides an event provider backed by an iCalendar subscription.

PURPOSE:

	Fetches an ICS payload over HTTP, parses its VEVENTs into calendar
	events and buckets them in an indexed collection keyed by calendar
	date. FindEvents serves every stored event overlapping the queried
	period, so one provider answers Day, Week, Month and Year queries
	alike.

RECURRENCE:

	RRULE expansion is out of scope. A recurring VEVENT contributes its
	base occurrence only; EXDATE and RECURRENCE-ID are ignored.

CONCURRENCY:

	Refresh swaps the whole collection under a mutex, so FindEvents can
	run concurrently with a scheduled refresh.
*/
package ics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	ical "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/meridian/calendar-engine/calendar"
)

const fetchTimeout = 15 * time.Second

// Source describes one ICS subscription.
type Source struct {
	ID   string
	Name string
	URL  string
}

// Provider serves events parsed from a single ICS source.
type Provider struct {
	source Source
	client *http.Client
	logger *zap.SugaredLogger

	mu         sync.RWMutex
	collection *calendar.Collection
}

// New creates a provider for the given source. A nil logger disables logging.
func New(source Source, logger *zap.SugaredLogger) *Provider {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Provider{
		source:     source,
		client:     &http.Client{Timeout: fetchTimeout},
		logger:     logger,
		collection: calendar.NewCollection(nil),
	}
}

// Source returns the subscription this provider serves.
func (p *Provider) Source() Source {
	return p.source
}

// Refresh re-fetches the ICS payload and rebuilds the event collection.
// On failure the previously loaded events stay in place.
func (p *Provider) Refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.source.URL, nil)
	if err != nil {
		return fmt.Errorf("ics %s: build request: %w", p.source.ID, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("ics %s: fetch: %w", p.source.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ics %s: fetch: unexpected status %d", p.source.ID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("ics %s: read body: %w", p.source.ID, err)
	}

	return p.Load(bytes.NewReader(body))
}

// Load parses an ICS payload from r and replaces the provider's events.
// Exposed separately from Refresh so payloads can come from disk or tests.
func (p *Provider) Load(r io.Reader) error {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return fmt.Errorf("ics %s: parse: %w", p.source.ID, err)
	}

	fresh := calendar.NewCollection(nil)
	parsed, skipped := 0, 0

	for _, ve := range cal.Events() {
		event, err := parseVEvent(ve)
		if err != nil {
			// Skip the broken VEVENT, keep the rest of the feed.
			p.logger.Warnw("ics vevent skipped", "source", p.source.ID, "err", err)
			skipped++
			continue
		}
		fresh.Add(event)
		parsed++
	}

	p.mu.Lock()
	p.collection = fresh
	p.mu.Unlock()

	p.logger.Infow("ics feed loaded", "source", p.source.ID, "events", parsed, "skipped", skipped)
	return nil
}

// FindEvents returns every loaded event overlapping the period, in feed order.
func (p *Provider) FindEvents(_ context.Context, period calendar.Period) ([]calendar.Event, error) {
	p.mu.RLock()
	all := p.collection.All()
	p.mu.RUnlock()

	var out []calendar.Event
	for _, e := range all {
		if e.Overlaps(period) {
			out = append(out, e)
		}
	}
	return out, nil
}

// parseVEvent maps one VEVENT onto a calendar.Event.
func parseVEvent(ve *ical.VEvent) (calendar.Event, error) {
	var out calendar.Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, fmt.Errorf("missing UID")
	}
	out.ID = uid.Value

	if summary := ve.GetProperty(ical.ComponentPropertySummary); summary != nil {
		out.Title = summary.Value
	}

	// The library's helpers handle VTIMEZONE/TZID resolution.
	start, err := ve.GetStartAt()
	if err != nil {
		start, err = ve.GetAllDayStartAt()
		if err != nil {
			return out, fmt.Errorf("uid %s: no usable DTSTART: %w", out.ID, err)
		}
	}
	out.Begin = start

	end, err := ve.GetEndAt()
	if err != nil {
		end, err = ve.GetAllDayEndAt()
	}
	if err != nil || !end.After(start) {
		// DTEND is optional; default to a one-hour span.
		end = start.Add(time.Hour)
	}
	out.End = end

	return out, nil
}
