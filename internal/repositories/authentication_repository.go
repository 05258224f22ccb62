package repositories

import (
	"errors"

	"collabboard/internal/errs"
	"collabboard/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, error) {
	if err := ar.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (ar *AuthenticationRepository) FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := ar.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (ar *AuthenticationRepository) FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := ar.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(email string) bool {
	var count int64
	ar.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func (ar *AuthenticationRepository) UpdateAvatar(userID uuid.UUID, avatarURL string) error {
	result := ar.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", avatarURL)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.ErrUserNotFound
	}
	return nil
}
