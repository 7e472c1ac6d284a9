package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_event_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_event_user"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Favorite) TableName() string {
	return "event_favorites"
}

func (favorite *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	return
}
