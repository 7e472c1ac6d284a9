package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	FlowStatusDraft     = "draft"
	FlowStatusSubmitted = "submitted"
	FlowStatusApproved  = "approved"
	FlowStatusRejected  = "rejected"
)

// ProgramFlow is the activity schedule for an event. It carries its own
// approval lifecycle separate from the event itself.
type ProgramFlow struct {
	gorm.Model
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"not null"`
	Status        string    `gorm:"not null;default:'draft'"`
	AdminComments string
	OwnerID       uuid.UUID             `gorm:"type:uuid;not null"`
	Activities    []ProgramFlowActivity `gorm:"foreignKey:FlowID"`
}

func (flow *ProgramFlow) BeforeCreate(tx *gorm.DB) (err error) {
	if flow.ID == uuid.Nil {
		flow.ID = uuid.New()
	}
	return
}

type ProgramFlowActivity struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	FlowID          uuid.UUID `gorm:"type:uuid;not null;index"`
	Time            string    `gorm:"not null;default:'00:00'"`
	Title           string    `gorm:"not null"`
	Description     string
	Location        string
	DurationMinutes int `gorm:"not null;default:0"`
	ActivityType    string
	OrderIndex      int `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (ProgramFlowActivity) TableName() string {
	return "program_flow_activities"
}

func (activity *ProgramFlowActivity) BeforeCreate(tx *gorm.DB) (err error) {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	return
}
