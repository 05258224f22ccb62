package models

import (
	"collabboard/internal/enums"

	"github.com/google/uuid"
)

// DrawingElement belongs to exactly one whiteboard. The "save"
// operation replaces the whole collection atomically, it is not a diff.
type DrawingElement struct {
	Base
	WhiteboardID uuid.UUID         `gorm:"type:uuid;not null;index" json:"whiteboard_id"`
	Type         enums.DrawingType `gorm:"not null" json:"type"`
	X            float64           `gorm:"not null" json:"x"`
	Y            float64           `gorm:"not null" json:"y"`
	Width        *float64          `json:"width"`
	Height       *float64          `json:"height"`
	EndX         *float64          `json:"endX"`
	EndY         *float64          `json:"endY"`
	Points       *Points           `gorm:"type:jsonb" json:"points"`
	Color        string            `gorm:"not null" json:"color"`
	StrokeWidth  *float64          `json:"strokeWidth"`
	FillColor    *string           `json:"fill"`
	TextContent  *string           `json:"text"`
	FontSize     *float64          `json:"fontSize"`
	FontFamily   *string           `json:"fontFamily"`
	UserID       *uuid.UUID        `gorm:"type:uuid" json:"user_id"`
}
