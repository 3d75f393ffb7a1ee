package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type UpdateUserInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	IsCoach  bool   `json:"is_coach"`
	IsPlayer bool   `json:"is_player"`
	IsStaff  bool   `json:"is_staff"`
}

type UserService interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error)
	// DeleteUser hard-deletes a user. Teams coached by the user go with
	// them through the cascade on teams.coach_id.
	DeleteUser(ctx context.Context, id int) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id int, input UpdateUserInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrValidationFailed)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Username = input.Username
	user.Email = input.Email
	user.IsAdmin = input.IsAdmin
	user.IsCoach = input.IsCoach
	user.IsPlayer = input.IsPlayer
	user.IsStaff = input.IsStaff

	if err := s.userRepo.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrUserUsernameConflict):
			return nil, ErrUsernameTaken
		case errors.Is(err, repositories.ErrUserEmailConflict):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
