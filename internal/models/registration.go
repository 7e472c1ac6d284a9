package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Registration joins a viewer to an event. EventID may point at either an
// organizer event or an approved request; the two tables use disjoint id
// spaces, so no source column is needed.
type Registration struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_registrations_event_user"`
	AttendanceStatus string    `gorm:"not null;default:'registered'"`
	RegisteredAt     time.Time `gorm:"autoCreateTime"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Registration) TableName() string {
	return "event_registrations"
}

func (registration *Registration) BeforeCreate(tx *gorm.DB) (err error) {
	if registration.ID == uuid.Nil {
		registration.ID = uuid.New()
	}
	return
}
