package models

import "github.com/google/uuid"

type UserSummary struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
}

type ProfileResponse struct {
	ID     uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Avatar *string   `json:"avatar"`
}

type LoginResponse struct {
	User  ProfileResponse `json:"user"`
	Token string          `json:"token"`
}
