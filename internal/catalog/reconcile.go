package catalog

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/models"
)

// Reconcile merges organizer events and approved event requests into one
// unified catalog for the given viewer. Participant counts are recomputed
// from the registration join table on every pass.
//
// A failure on either primary read aborts the pass so the caller can keep
// its previous list. Failures on the secondary count/favorite reads only
// degrade the affected fields (count 0, flags false); one bad join must
// never blank the whole catalog.
func Reconcile(db *gorm.DB, viewerID uuid.UUID) ([]UnifiedEvent, error) {
	if viewerID == uuid.Nil {
		return []UnifiedEvent{}, nil
	}

	var events []models.Event
	if err := db.Preload("User").Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, err
	}

	var requests []models.EventRequest
	if err := db.Preload("Requester").
		Where("status = ?", models.StatusApproved).
		Order("created_at ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}

	candidateIDs := make([]uuid.UUID, 0, len(events)+len(requests))
	for _, event := range events {
		candidateIDs = append(candidateIDs, event.ID)
	}
	for _, request := range requests {
		candidateIDs = append(candidateIDs, request.ID)
	}

	counts := make(map[uuid.UUID]int)
	registered := make(map[uuid.UUID]bool)
	if len(candidateIDs) > 0 {
		var registrations []models.Registration
		if err := db.Where("event_id IN ?", candidateIDs).Find(&registrations).Error; err != nil {
			log.Printf("reconcile: registration lookup failed, counts degrade to 0: %v", err)
		} else {
			for _, registration := range registrations {
				counts[registration.EventID]++
				if registration.UserID == viewerID {
					registered[registration.EventID] = true
				}
			}
		}
	}

	favorites := make(map[uuid.UUID]bool)
	var favoriteRows []models.Favorite
	if err := db.Where("user_id = ?", viewerID).Find(&favoriteRows).Error; err != nil {
		log.Printf("reconcile: favorite lookup failed for %s: %v", viewerID, err)
	} else {
		for _, favorite := range favoriteRows {
			favorites[favorite.EventID] = true
		}
	}

	// Concatenate preserving source order: events first, then approved
	// requests. Calendar views re-sort at their own boundary.
	unified := make([]UnifiedEvent, 0, len(events)+len(requests))
	for _, event := range events {
		entry := fromEvent(event)
		entry.CurrentParticipants = counts[entry.ID]
		entry.IsRegistered = registered[entry.ID]
		entry.IsFavorite = favorites[entry.ID]
		unified = append(unified, entry)
	}
	for _, request := range requests {
		entry := fromRequest(request, viewerID)
		entry.CurrentParticipants = counts[entry.ID]
		entry.IsRegistered = registered[entry.ID]
		entry.IsFavorite = favorites[entry.ID]
		unified = append(unified, entry)
	}
	return unified, nil
}

// Participant is one row of an event's registrant roster.
type Participant struct {
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	AttendanceStatus string    `json:"attendance_status"`
}

// Participants returns the registrant roster for one event id, joined with
// the user table for display names.
func Participants(db *gorm.DB, eventID uuid.UUID) ([]Participant, error) {
	var roster []Participant
	err := db.Table("event_registrations").
		Select("event_registrations.user_id, users.name, users.email, event_registrations.attendance_status").
		Joins("JOIN users ON users.id = event_registrations.user_id").
		Where("event_registrations.event_id = ?", eventID).
		Order("event_registrations.registered_at ASC").
		Scan(&roster).Error
	if err != nil {
		return nil, err
	}
	return roster, nil
}
