package catalog

import (
	"errors"

	"github.com/google/uuid"

	"github.com/jmcallo24/eventms/internal/models"
)

const (
	SourceEvents   = "events"
	SourceRequests = "event_requests"
)

var (
	ErrNotFound  = errors.New("event not found in catalog")
	ErrForbidden = errors.New("cannot register for your own event")
	ErrCapacity  = errors.New("event has reached maximum participants")
)

// UnifiedEvent is the merged view model over organizer events and approved
// event requests. It is rebuilt wholesale on every reconciliation pass and
// never mutated in place.
type UnifiedEvent struct {
	ID                  uuid.UUID `json:"id"`
	Source              string    `json:"source"`
	Title               string    `json:"title"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	Venue               string    `json:"venue"`
	OrganizerName       string    `json:"organizer_name"`
	CurrentParticipants int       `json:"current_participants"`
	MaxParticipants     int       `json:"max_participants"`
	Status              string    `json:"status"`
	EventType           string    `json:"event_type"`
	Description         string    `json:"description"`
	IsRegistered        bool      `json:"is_registered"`
	IsFavorite          bool      `json:"is_favorite"`
	IsMyEvent           bool      `json:"is_my_event"`
}

const dateLayout = "2006-01-02"

func fromEvent(event models.Event) UnifiedEvent {
	organizer := event.User.Name
	if organizer == "" {
		organizer = "Unknown"
	}
	max := event.MaxParticipants
	if max <= 0 {
		max = 100
	}
	return UnifiedEvent{
		ID:              event.ID,
		Source:          SourceEvents,
		Title:           event.Title,
		Date:            event.Date.Format(dateLayout),
		Time:            orDefault(event.Time, "00:00"),
		Venue:           orDefault(event.Venue, "TBA"),
		OrganizerName:   organizer,
		MaxParticipants: max,
		Status:          event.Status,
		EventType:       event.EventType,
		Description:     event.Description,
	}
}

func fromRequest(request models.EventRequest, viewerID uuid.UUID) UnifiedEvent {
	// Organizer name falls back through: requester's account name, the name
	// written on the submitted form, then a generic label.
	organizer := request.Requester.Name
	if organizer == "" {
		organizer = request.OrganizerName
	}
	if organizer == "" {
		organizer = "Event Organizer"
	}
	max := request.ExpectedParticipants
	if max <= 0 {
		max = 50
	}
	return UnifiedEvent{
		ID:              request.ID,
		Source:          SourceRequests,
		Title:           request.Title,
		Date:            request.Date.Format(dateLayout),
		Time:            orDefault(request.Time, "00:00"),
		Venue:           orDefault(request.Venue, "TBA"),
		OrganizerName:   organizer,
		MaxParticipants: max,
		Status:          request.Status,
		EventType:       request.EventType,
		Description:     request.Description,
		IsMyEvent:       request.RequesterID == viewerID,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
