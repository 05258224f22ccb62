package models

import (
	"time"

	"collabboard/internal/enums"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WhiteboardCollaborator grants a non-owner user access to a
// whiteboard. Unique per (whiteboard, user). The owner is never
// represented as a row here.
type WhiteboardCollaborator struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	WhiteboardID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_whiteboard_user" json:"whiteboard_id"`
	UserID       uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_whiteboard_user" json:"user_id"`
	Permission   enums.Permission `gorm:"not null;default:edit" json:"permission"`
	JoinedAt     time.Time        `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (wc *WhiteboardCollaborator) BeforeCreate(tx *gorm.DB) error {
	if wc.ID == uuid.Nil {
		wc.ID = uuid.New()
	}
	return nil
}
