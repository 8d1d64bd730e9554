package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fleet-service/internal/auth"
	"fleet-service/internal/model"
)

type userStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type AuthService struct {
	userRepo userStore
	issuer   *auth.Issuer
	log      zerolog.Logger
}

func NewAuthService(userRepo userStore, issuer *auth.Issuer, log zerolog.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
		log:      log,
	}
}

// Login checks credentials and returns a signed token plus the user's
// company. Unknown email and wrong password are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return nil, ErrUserBlocked
	}

	token, err := s.issuer.Issue(*user)
	if err != nil {
		return nil, err
	}

	return &model.AuthResponse{
		Token:         token,
		UserID:        user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		UserType:      user.UserType,
		IsFirstAccess: user.IsFirstAccess,
		Company:       user.Company,
	}, nil
}

// ChangeFirstPassword replaces the provisional password handed out on user
// creation. It only works while the first-access flag is still set.
func (s *AuthService) ChangeFirstPassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.IsFirstAccess {
		return ErrPermissionDenied
	}
	if !auth.CheckPassword(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, user.ID, hash)
}
