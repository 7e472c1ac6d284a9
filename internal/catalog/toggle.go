package catalog

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/models"
	"github.com/jmcallo24/eventms/internal/notify"
)

// ToggleRegistration registers the viewer for an event, or unregisters them
// if the current reconciled list says they are already registered. The
// caller must run a fresh Reconcile afterwards: the derived view is never
// patched locally, because counts must come from the join table.
func ToggleRegistration(db *gorm.DB, eventID, viewerID uuid.UUID, current []UnifiedEvent) error {
	entry, ok := find(current, eventID)
	if !ok {
		return ErrNotFound
	}
	if entry.IsMyEvent {
		return ErrForbidden
	}

	if entry.IsRegistered {
		return unregister(db, entry, viewerID)
	}
	return register(db, entry, viewerID)
}

func register(db *gorm.DB, entry UnifiedEvent, viewerID uuid.UUID) error {
	if entry.CurrentParticipants >= entry.MaxParticipants {
		return ErrCapacity
	}

	registration := models.Registration{
		EventID:          entry.ID,
		UserID:           viewerID,
		AttendanceStatus: "registered",
	}
	if err := db.Create(&registration).Error; err != nil {
		return err
	}

	// The counter column is an advisory cache; failing to bump it is not an
	// error because every reconciliation pass recounts from the join table.
	if err := adjustCounter(db, entry, +1); err != nil {
		log.Printf("toggle: counter increment failed for %s: %v", entry.ID, err)
	}

	if err := notify.Send(db, viewerID, "Registration confirmed",
		"You are registered for "+entry.Title+".",
		models.NotificationTypeInfo, &entry.ID); err != nil {
		log.Printf("toggle: confirmation notification failed for %s: %v", viewerID, err)
	}
	return nil
}

func unregister(db *gorm.DB, entry UnifiedEvent, viewerID uuid.UUID) error {
	result := db.Where("event_id = ? AND user_id = ?", entry.ID, viewerID).
		Delete(&models.Registration{})
	if result.Error != nil {
		return result.Error
	}
	// Deleting a row that is already gone is a no-op, not an error.
	if result.RowsAffected == 0 {
		return nil
	}

	if err := adjustCounter(db, entry, -1); err != nil {
		log.Printf("toggle: counter decrement failed for %s: %v", entry.ID, err)
	}
	return nil
}

func adjustCounter(db *gorm.DB, entry UnifiedEvent, delta int) error {
	query := db.Model(&models.Event{})
	if entry.Source == SourceRequests {
		query = db.Model(&models.EventRequest{})
	}
	query = query.Where("id = ?", entry.ID)
	if delta < 0 {
		query = query.Where("current_participants > 0")
	}
	return query.
		UpdateColumn("current_participants", gorm.Expr("current_participants + ?", delta)).
		Error
}

// ToggleFavorite flips the viewer's favorite mark for an event. The event
// must exist in the reconciled catalog so orphan favorite rows can never be
// created. Favorite state itself is read fresh from the join table, so a
// duplicate insert from a stale view resolves to a no-op success instead of
// an error.
func ToggleFavorite(db *gorm.DB, eventID, viewerID uuid.UUID, current []UnifiedEvent) error {
	if _, ok := find(current, eventID); !ok {
		return ErrNotFound
	}

	var favorite models.Favorite
	err := db.Where("event_id = ? AND user_id = ?", eventID, viewerID).
		First(&favorite).Error
	if err == nil {
		return db.Delete(&favorite).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Where(models.Favorite{EventID: eventID, UserID: viewerID}).
		FirstOrCreate(&favorite).Error
}

func find(current []UnifiedEvent, eventID uuid.UUID) (UnifiedEvent, bool) {
	for _, entry := range current {
		if entry.ID == eventID {
			return entry, true
		}
	}
	return UnifiedEvent{}, false
}
