package models

// User represents an account in the application
type User struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"unique;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`
	Password     string  `gorm:"-" json:"password"`
	Avatar       *string `json:"avatar"`
}

func (user *User) ToUserSummary() *UserSummary {
	return &UserSummary{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}

func (user *User) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:     user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Avatar: user.Avatar,
	}
}
