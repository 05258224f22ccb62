package services

import (
	"sync"
	"time"

	"collabboard/configs"
	"collabboard/internal/errs"
	"collabboard/internal/models"
	"collabboard/internal/repositories"
	"collabboard/internal/utils"
	"collabboard/internal/validators"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type AuthenticationService struct {
	authRepo *repositories.AuthenticationRepository
	config   *configs.Config

	jwtKeyOnce sync.Once
	jwtKey     []byte
}

func NewAuthenticationService(
	authRepo *repositories.AuthenticationRepository,
	config *configs.Config,
) *AuthenticationService {
	return &AuthenticationService{
		authRepo: authRepo,
		config:   config,
	}
}

// JwtKey returns the signing key from configuration, generating an
// ephemeral one when none is configured. An ephemeral key invalidates
// all sessions on restart, so production deployments must set one.
func (as *AuthenticationService) JwtKey() []byte {
	as.jwtKeyOnce.Do(func() {
		secret := as.config.Viper.GetString("jwt.secret")
		if secret == "" {
			logrus.Warn("jwt.secret not configured, generating an ephemeral signing key")
			secret = utils.GenerateSecretKey()
		}
		as.jwtKey = []byte(secret)
	})
	return as.jwtKey
}

func (as *AuthenticationService) Register(user *models.User) (*models.User, []error) {
	var errors []error
	if as.authRepo.CheckIfUserExists(user.Email) {
		errors = append(errors, errs.ErrUserAlreadyExists)
		return nil, errors
	}
	validationErrs := validators.ValidateUser(user)
	if len(validationErrs) > 0 {
		errors = append(errors, validationErrs...)
		return nil, errors
	}
	password, err := utils.HashPassword(user.Password)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	user.PasswordHash = password
	created, err := as.authRepo.CreateUser(user)
	if err != nil {
		errors = append(errors, err)
		return nil, errors
	}
	return created, nil
}

func (as *AuthenticationService) Login(loginData *models.LoginRequestBody) (*models.LoginResponse, []error) {
	var errors []error

	user, err := as.authRepo.FindUserByEmail(loginData.Email)
	if err != nil {
		errors = append(errors, errs.ErrUserNotFound)
		return nil, errors
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, loginData.Password); err != nil {
		errors = append(errors, errs.ErrWrongPassword)
		return nil, errors
	}

	jwtExpiration := time.Now().Add(time.Duration(as.config.Viper.GetInt("jwt.expiration_time")) * time.Second)
	token, jwtErr := utils.CreateJwtToken(
		user.ID,
		user.Email,
		user.Name,
		as.JwtKey(),
		jwtExpiration,
	)
	if jwtErr != nil {
		errors = append(errors, jwtErr)
		return nil, errors
	}

	return &models.LoginResponse{
		User:  *user.ToProfileResponse(),
		Token: token,
	}, nil
}

func (as *AuthenticationService) VerifyToken(token string) (*models.Claims, error) {
	claims, err := utils.VerifyToken(token, as.JwtKey())
	if err != nil {
		return nil, errs.ErrInvalidToken
	}
	return claims, nil
}

func (as *AuthenticationService) GetProfile(userID uuid.UUID) (*models.ProfileResponse, error) {
	user, err := as.authRepo.FindUserByID(userID)
	if err != nil {
		return nil, err
	}
	return user.ToProfileResponse(), nil
}

func (as *AuthenticationService) FindUserByID(userID uuid.UUID) (*models.User, error) {
	return as.authRepo.FindUserByID(userID)
}

func (as *AuthenticationService) UpdateAvatar(userID uuid.UUID, avatarURL string) error {
	return as.authRepo.UpdateAvatar(userID, avatarURL)
}
