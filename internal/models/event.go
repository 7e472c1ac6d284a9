package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
)

// Event is an organizer-owned catalog event. CurrentParticipants is an
// advisory cache; the registration join table is the source of truth.
type Event struct {
	gorm.Model
	ID                  uuid.UUID `gorm:"type:uuid;primary_key"`
	Title               string    `gorm:"not null"`
	Description         string
	EventType           string
	Date                time.Time `gorm:"type:date;not null"`
	Time                string    `gorm:"not null;default:'00:00'"`
	Venue               string    `gorm:"not null;default:'TBA'"`
	MaxParticipants     int       `gorm:"not null;default:100"`
	CurrentParticipants int       `gorm:"not null;default:0"`
	Status              string    `gorm:"not null;default:'approved'"`
	BannerPath          string
	UserID              uuid.UUID
	User                User
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
