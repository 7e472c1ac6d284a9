package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventRequest is a submitted event proposal. Once approved it shows up in
// the unified catalog alongside organizer events; other statuses stay
// visible only to the requester.
type EventRequest struct {
	gorm.Model
	ID                   uuid.UUID `gorm:"type:uuid;primary_key"`
	Title                string    `gorm:"not null"`
	Description          string
	EventType            string
	Date                 time.Time `gorm:"type:date;not null"`
	Time                 string    `gorm:"not null;default:'00:00'"`
	Venue                string    `gorm:"not null;default:'TBA'"`
	ExpectedParticipants int       `gorm:"not null;default:50"`
	CurrentParticipants  int       `gorm:"not null;default:0"`
	Status               string    `gorm:"not null;default:'pending'"`
	OrganizerName        string
	AdminComments        string
	RequesterID          uuid.UUID
	Requester            User `gorm:"foreignKey:RequesterID"`
}

func (request *EventRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return
}
