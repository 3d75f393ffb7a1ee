package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type CreateGameInput struct {
	Date       time.Time `json:"date"`
	Location   string    `json:"location"`
	Referee    string    `json:"referee"`
	TeamAID    int       `json:"team_a_id"`
	TeamBID    int       `json:"team_b_id"`
	TeamAScore int       `json:"team_a_score"`
	TeamBScore int       `json:"team_b_score"`
}

type RecordScoreInput struct {
	PlayerID int     `json:"player_id"`
	GameID   int     `json:"game_id"`
	Score    float64 `json:"score"`
}

type RecordParticipationInput struct {
	PlayerID     int `json:"player_id"`
	GameID       int `json:"game_id"`
	TeamID       int `json:"team_id"`
	PointsScored int `json:"points_scored"`
}

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	ListGames(ctx context.Context) ([]models.Game, error)
	DeleteGame(ctx context.Context, id int) error
	RecordScore(ctx context.Context, input RecordScoreInput) (*models.Score, error)
	RecordParticipation(ctx context.Context, input RecordParticipationInput) (*models.PlayerGameParticipation, error)
}

type gameService struct {
	db                *sql.DB
	gameRepo          repositories.GameRepository
	teamRepo          repositories.TeamRepository
	playerRepo        repositories.PlayerRepository
	scoreRepo         repositories.ScoreRepository
	participationRepo repositories.ParticipationRepository
}

func NewGameService(
	db *sql.DB,
	gameRepo repositories.GameRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	scoreRepo repositories.ScoreRepository,
	participationRepo repositories.ParticipationRepository,
) GameService {
	return &gameService{
		db:                db,
		gameRepo:          gameRepo,
		teamRepo:          teamRepo,
		playerRepo:        playerRepo,
		scoreRepo:         scoreRepo,
		participationRepo: participationRepo,
	}
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	if input.TeamAID == input.TeamBID {
		return nil, ErrGameTeamsIdentical
	}
	for _, teamID := range []int{input.TeamAID, input.TeamBID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, err
		}
	}

	game := &models.Game{
		Date:       input.Date,
		Location:   input.Location,
		Referee:    input.Referee,
		TeamAID:    input.TeamAID,
		TeamBID:    input.TeamBID,
		TeamAScore: input.TeamAScore,
		TeamBScore: input.TeamBScore,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameInvalidTeam) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if teamA, err := s.teamRepo.GetByID(ctx, game.TeamAID); err == nil {
		game.TeamA = teamA
	}
	if teamB, err := s.teamRepo.GetByID(ctx, game.TeamBID); err == nil {
		game.TeamB = teamB
	}

	participations, err := s.participationRepo.ListByGame(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list participations: %w", err)
	}
	game.Participations = participations
	return game, nil
}

func (s *gameService) ListGames(ctx context.Context) ([]models.Game, error) {
	return s.gameRepo.List(ctx)
}

func (s *gameService) DeleteGame(ctx context.Context, id int) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}

// RecordScore adds a scoring record. Uniqueness per (player, game) is
// deliberately not enforced here; only participations are unique.
func (s *gameService) RecordScore(ctx context.Context, input RecordScoreInput) (*models.Score, error) {
	if _, err := s.playerRepo.GetByID(ctx, input.PlayerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	score := &models.Score{
		PlayerID: input.PlayerID,
		GameID:   input.GameID,
		Score:    input.Score,
	}
	if err := s.scoreRepo.Create(ctx, nil, score); err != nil {
		return nil, err
	}
	return score, nil
}

// RecordParticipation stores a (player, game) participation after checking
// the core invariant: the participating team must be the player's own team.
// The insert and the games-participated counter bump share one transaction.
func (s *gameService) RecordParticipation(ctx context.Context, input RecordParticipationInput) (*models.PlayerGameParticipation, error) {
	player, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if err := ValidateParticipation(player, input.TeamID); err != nil {
		return nil, err
	}

	participation := &models.PlayerGameParticipation{
		PlayerID:     input.PlayerID,
		GameID:       input.GameID,
		TeamID:       input.TeamID,
		PointsScored: input.PointsScored,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.participationRepo.Create(ctx, tx, participation); err != nil {
		if errors.Is(err, repositories.ErrParticipationConflict) {
			return nil, ErrParticipationDuplicate
		}
		return nil, err
	}
	if err := s.playerRepo.IncrementGamesParticipated(ctx, tx, input.PlayerID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return participation, nil
}

// ValidateParticipation enforces the save-time invariant that a
// participation's team equals the player's current team.
func ValidateParticipation(player *models.Player, teamID int) error {
	if player.TeamID != teamID {
		return ErrParticipationTeamMismatch
	}
	return nil
}
