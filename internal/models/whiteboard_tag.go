package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WhiteboardTag links a whiteboard to a tag. Detaching sets DeletedAt
// instead of removing the row; a link with a non-nil DeletedAt is never
// semantically present. Every query path must go through the active
// predicate in the repositories package.
type WhiteboardTag struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	WhiteboardID uuid.UUID  `gorm:"type:uuid;not null;index" json:"whiteboard_id"`
	TagID        uuid.UUID  `gorm:"type:uuid;not null;index" json:"tag_id"`
	CreatedAt    time.Time  `json:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at"`

	Tag *Tag `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (wt *WhiteboardTag) BeforeCreate(tx *gorm.DB) error {
	if wt.ID == uuid.Nil {
		wt.ID = uuid.New()
	}
	return nil
}

// Active reports whether the link still counts: soft deleted rows stay
// in the table for usage_count history but are never present.
func (wt *WhiteboardTag) Active() bool {
	return wt.DeletedAt == nil
}
