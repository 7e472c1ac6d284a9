package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationTypeInfo     = "info"
	NotificationTypeApproval = "approval"
	NotificationTypeRequest  = "request"
	NotificationTypeReminder = "reminder"
)

type Notification struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title          string     `gorm:"not null"`
	Message        string     `gorm:"not null"`
	Type           string     `gorm:"not null;default:'info'"`
	IsRead         bool       `gorm:"not null;default:false"`
	RelatedEventID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (notification *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	return
}
