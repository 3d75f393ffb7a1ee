package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type CreatePlayerInput struct {
	UserID int     `json:"user_id"`
	TeamID int     `json:"team_id"`
	Name   string  `json:"name"`
	Height float64 `json:"height"`
}

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]models.Player, error)
	// GetMyInfo returns the player record linked to the requesting user.
	// Absence is a not-found outcome, not a policy denial.
	GetMyInfo(ctx context.Context, userID int) (*models.Player, error)
	// ListCoachPlayers returns players across all teams the coach owns.
	ListCoachPlayers(ctx context.Context, coachID int) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, player *models.Player) error
	DeletePlayer(ctx context.Context, id int) error
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	userRepo   repositories.UserRepository
	teamRepo   repositories.TeamRepository
	statsSvc   StatsService
}

func NewPlayerService(
	playerRepo repositories.PlayerRepository,
	userRepo repositories.UserRepository,
	teamRepo repositories.TeamRepository,
	statsSvc StatsService,
) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		statsSvc:   statsSvc,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: player name is required", ErrValidationFailed)
	}
	if input.Height <= 0 {
		return nil, fmt.Errorf("%w: player height must be positive", ErrValidationFailed)
	}

	if _, err := s.userRepo.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	player := &models.Player{
		UserID: input.UserID,
		TeamID: input.TeamID,
		Name:   input.Name,
		Height: input.Height,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerUserConflict) {
			return nil, fmt.Errorf("%w: user already has a player record", ErrValidationFailed)
		}
		return nil, err
	}
	return s.populatePlayer(ctx, player)
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.populatePlayer(ctx, player)
}

func (s *playerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.populatePlayers(ctx, players)
}

func (s *playerService) GetMyInfo(ctx context.Context, userID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return s.populatePlayer(ctx, player)
}

func (s *playerService) ListCoachPlayers(ctx context.Context, coachID int) ([]models.Player, error) {
	teams, err := s.teamRepo.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	teamIDs := make([]int, len(teams))
	for i, t := range teams {
		teamIDs[i] = t.ID
	}

	players, err := s.playerRepo.ListByTeams(ctx, teamIDs)
	if err != nil {
		return nil, err
	}
	return s.populatePlayers(ctx, players)
}

func (s *playerService) UpdatePlayer(ctx context.Context, player *models.Player) error {
	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return err
	}
	return nil
}

func (s *playerService) populatePlayers(ctx context.Context, players []models.Player) ([]models.Player, error) {
	for i := range players {
		if _, err := s.populatePlayer(ctx, &players[i]); err != nil {
			return nil, err
		}
	}
	return players, nil
}

func (s *playerService) populatePlayer(ctx context.Context, player *models.Player) (*models.Player, error) {
	user, err := s.userRepo.GetByID(ctx, player.UserID)
	if err == nil {
		summary := user.Summary()
		player.User = &summary
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to load user for player %d: %w", player.ID, err)
	}

	if s.statsSvc != nil {
		player.AverageScore, err = s.statsSvc.PlayerAverageScore(ctx, player.ID)
		if err != nil {
			return nil, err
		}
	}
	return player, nil
}
