package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

// Fakes embed the repository interface and override only what a test
// touches; an unexpected call panics, which is exactly what we want.

type fakePlayerRepo struct {
	repositories.PlayerRepository
	players map[int]*models.Player
}

func (f *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	cp := *p
	return &cp, nil
}

type fakeGameRepo struct {
	repositories.GameRepository
	games map[int]*models.Game
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int) (*models.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	cp := *g
	return &cp, nil
}

type fakeParticipationRepo struct {
	repositories.ParticipationRepository
	created []models.PlayerGameParticipation
}

func (f *fakeParticipationRepo) Create(_ context.Context, _ repositories.SQLExecutor, p *models.PlayerGameParticipation) error {
	f.created = append(f.created, *p)
	return nil
}

func TestValidateParticipation(t *testing.T) {
	player := &models.Player{ID: 1, TeamID: 5}

	if err := ValidateParticipation(player, 5); err != nil {
		t.Errorf("matching team rejected: %v", err)
	}
	err := ValidateParticipation(player, 6)
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("mismatched team err = %v, want ErrValidationFailed", err)
	}
	if !errors.Is(err, ErrParticipationTeamMismatch) {
		t.Errorf("mismatched team err = %v, want ErrParticipationTeamMismatch", err)
	}
}

func TestRecordParticipationTeamMismatch(t *testing.T) {
	playerRepo := &fakePlayerRepo{players: map[int]*models.Player{
		1: {ID: 1, TeamID: 5},
	}}
	gameRepo := &fakeGameRepo{games: map[int]*models.Game{
		10: {ID: 10, TeamAID: 5, TeamBID: 6},
	}}
	participationRepo := &fakeParticipationRepo{}

	// db stays nil: validation must fail before any transaction begins.
	svc := NewGameService(nil, gameRepo, nil, playerRepo, nil, participationRepo)

	_, err := svc.RecordParticipation(context.Background(), RecordParticipationInput{
		PlayerID: 1,
		GameID:   10,
		TeamID:   6, // not the player's team
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("err = %v, want ErrValidationFailed", err)
	}
	if len(participationRepo.created) != 0 {
		t.Errorf("participation was persisted despite validation failure")
	}
}

func TestCreateGameRequiresDistinctTeams(t *testing.T) {
	svc := NewGameService(nil, nil, nil, nil, nil, nil)

	_, err := svc.CreateGame(context.Background(), CreateGameInput{TeamAID: 3, TeamBID: 3})
	if !errors.Is(err, ErrGameTeamsIdentical) {
		t.Errorf("err = %v, want ErrGameTeamsIdentical", err)
	}
}
