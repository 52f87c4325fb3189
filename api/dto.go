/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:

	Defines the JSON structures for API communication. These types
	decouple the internal calendar model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:

	Validation is done in handlers, not in DTOs. DTOs are pure data
	carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/meridian/calendar-engine/calendar"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// PeriodDTO represents a period in API responses.
type PeriodDTO struct {
	Granularity string    `json:"granularity"`
	Begin       time.Time `json:"begin"`
	End         time.Time `json:"end"`
	Display     string    `json:"display"`
}

// ChildDTO is one child period with its granularity-specific index.
type ChildDTO struct {
	Index  int       `json:"index"`
	Period PeriodDTO `json:"period"`
}

// EventDTO represents an event in API responses.
type EventDTO struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Begin time.Time `json:"begin"`
	End   time.Time `json:"end"`
}

// CreateEventRequest is the body for POST /api/events.
type CreateEventRequest struct {
	Title string `json:"title"`
	Begin string `json:"begin"` // RFC 3339
	End   string `json:"end"`   // RFC 3339, optional (defaults to begin + 1h)
}

// UtilizationDTO summarizes how much of a period is covered by events.
type UtilizationDTO struct {
	Period      PeriodDTO `json:"period"`
	EventCount  int       `json:"event_count"`
	BusyHours   string    `json:"busy_hours"`
	Utilization string    `json:"utilization_pct"`
}

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERTERS
// =============================================================================

func toPeriodDTO(p calendar.Period) PeriodDTO {
	return PeriodDTO{
		Granularity: string(p.Granularity()),
		Begin:       p.Begin(),
		End:         p.End(),
		Display:     p.DisplayString(),
	}
}

func toEventDTOs(events []calendar.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, EventDTO{ID: e.ID, Title: e.Title, Begin: e.Begin, End: e.End})
	}
	return out
}
