package notify

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jmcallo24/eventms/internal/models"
)

// Send inserts one notification row for a single user. Callers treat a
// failure as non-fatal: the triggering action has already succeeded.
func Send(db *gorm.DB, userID uuid.UUID, title, message, notificationType string, relatedEventID *uuid.UUID) error {
	notification := models.Notification{
		UserID:         userID,
		Title:          title,
		Message:        message,
		Type:           notificationType,
		RelatedEventID: relatedEventID,
	}
	return db.Create(&notification).Error
}

// Admins fans a notification out to every user holding the admin role, one
// row per admin. Broadcast targets are resolved by role at send time so that
// adding or removing administrators never loses notifications.
func Admins(db *gorm.DB, title, message, notificationType string, relatedEventID *uuid.UUID) error {
	var admins []models.User
	err := db.Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", "admin").
		Find(&admins).Error
	if err != nil {
		return err
	}

	for _, admin := range admins {
		notification := models.Notification{
			UserID:         admin.ID,
			Title:          title,
			Message:        message,
			Type:           notificationType,
			RelatedEventID: relatedEventID,
		}
		if err := db.Create(&notification).Error; err != nil {
			return err
		}
	}
	return nil
}
