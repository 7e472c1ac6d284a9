package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CalendarEvent is an admin-curated campus calendar entry, shown alongside
// the unified catalog on calendar views and in the ICS feed.
type CalendarEvent struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string
	Date        time.Time `gorm:"type:date;not null"`
	StartTime   string    `gorm:"not null;default:'00:00'"`
	EndTime     string
	Venue       string `gorm:"not null;default:'TBA'"`
	CreatedBy   uuid.UUID
}

func (entry *CalendarEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return
}
