package models

import (
	"collabboard/internal/enums"

	"github.com/google/uuid"
)

type LoginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateWhiteboardRequestBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

type UpdateWhiteboardRequestBody struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

type ShareWhiteboardRequestBody struct {
	UserID     uuid.UUID        `json:"user_id"`
	Permission enums.Permission `json:"permission"`
}

type UpdatePermissionRequestBody struct {
	UserID     uuid.UUID        `json:"user_id"`
	Permission enums.Permission `json:"permission"`
}

type CreateElementRequestBody struct {
	Type        enums.DrawingType `json:"type"`
	X           float64           `json:"x"`
	Y           float64           `json:"y"`
	Width       *float64          `json:"width"`
	Height      *float64          `json:"height"`
	EndX        *float64          `json:"endX"`
	EndY        *float64          `json:"endY"`
	Points      *Points           `json:"points"`
	Color       string            `json:"color"`
	StrokeWidth *float64          `json:"strokeWidth"`
	FillColor   *string           `json:"fill"`
	TextContent *string           `json:"text"`
	FontSize    *float64          `json:"fontSize"`
	FontFamily  *string           `json:"fontFamily"`
}

func (req *CreateElementRequestBody) ToDrawingElement(whiteboardID uuid.UUID, userID *uuid.UUID) *DrawingElement {
	return &DrawingElement{
		WhiteboardID: whiteboardID,
		Type:         req.Type,
		X:            req.X,
		Y:            req.Y,
		Width:        req.Width,
		Height:       req.Height,
		EndX:         req.EndX,
		EndY:         req.EndY,
		Points:       req.Points,
		Color:        req.Color,
		StrokeWidth:  req.StrokeWidth,
		FillColor:    req.FillColor,
		TextContent:  req.TextContent,
		FontSize:     req.FontSize,
		FontFamily:   req.FontFamily,
		UserID:       userID,
	}
}

type UpdateElementRequestBody struct {
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
	Width       *float64 `json:"width"`
	Height      *float64 `json:"height"`
	EndX        *float64 `json:"endX"`
	EndY        *float64 `json:"endY"`
	Points      *Points  `json:"points"`
	Color       *string  `json:"color"`
	StrokeWidth *float64 `json:"strokeWidth"`
	FillColor   *string  `json:"fill"`
	TextContent *string  `json:"text"`
	FontSize    *float64 `json:"fontSize"`
	FontFamily  *string  `json:"fontFamily"`
}

type BatchElementsRequestBody struct {
	Elements []CreateElementRequestBody `json:"elements"`
}

type AttachTagRequestBody struct {
	TagID uuid.UUID `json:"tag_id"`
}

type CreateTagRequestBody struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}
