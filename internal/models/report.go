package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ReportStatusOpen       = "open"
	ReportStatusInProgress = "in_progress"
	ReportStatusResolved   = "resolved"
)

type Report struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Type        string
	Status      string    `gorm:"not null;default:'open'"`
	ReporterID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Reporter    User      `gorm:"foreignKey:ReporterID"`
	Messages    []ReportMessage
}

func (report *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	return
}

type ReportMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderID  uuid.UUID `gorm:"type:uuid;not null"`
	Sender    User      `gorm:"foreignKey:SenderID"`
	Body      string    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (message *ReportMessage) BeforeCreate(tx *gorm.DB) (err error) {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	return
}
