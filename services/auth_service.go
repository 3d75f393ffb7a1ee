package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
	"github.com/Dosada05/basketball-league/utils"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsCoach  bool   `json:"is_coach"`
	IsPlayer bool   `json:"is_player"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, credentials models.Credentials) (*models.User, error)
	Logout(ctx context.Context, userID int) error
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Admin and staff flags are only granted out of band, never at
	// self-registration.
	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		IsCoach:      input.IsCoach,
		IsPlayer:     input.IsPlayer,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUsernameTaken
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login checks credentials and records the login event: the user goes
// online and their login counter increments.
func (s *authService) Login(ctx context.Context, credentials models.Credentials) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credentials.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	if err := s.userRepo.RecordLogin(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	user.IsOnline = true
	user.LoginCount++
	user.PasswordHash = ""

	return user, nil
}

// Logout marks the user offline and folds the elapsed time since the last
// recorded session end into the cumulative online duration.
func (s *authService) Logout(ctx context.Context, userID int) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	now := time.Now().UTC()
	var session time.Duration
	if user.LastLoginEnd != nil {
		session = now.Sub(*user.LastLoginEnd)
	}

	if err := s.userRepo.RecordLogout(ctx, userID, session, now); err != nil {
		return fmt.Errorf("failed to record logout: %w", err)
	}
	return nil
}
