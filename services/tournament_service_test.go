package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type fakeTournamentRepo struct {
	repositories.TournamentRepository
	tournament  *models.Tournament
	latestRound *models.TournamentRound

	eliminations  int
	roundsCreated int
}

func (f *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	if f.tournament == nil || f.tournament.ID != id {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *f.tournament
	return &cp, nil
}

func (f *fakeTournamentRepo) LatestRound(_ context.Context, _ int) (*models.TournamentRound, error) {
	if f.latestRound == nil {
		return nil, repositories.ErrRoundNotFound
	}
	cp := *f.latestRound
	return &cp, nil
}

func (f *fakeTournamentRepo) MarkEliminated(_ context.Context, _ repositories.SQLExecutor, _ int, teamIDs []int) error {
	f.eliminations += len(teamIDs)
	return nil
}

func (f *fakeTournamentRepo) CreateRound(_ context.Context, _ repositories.SQLExecutor, _ *models.TournamentRound) error {
	f.roundsCreated++
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateTournamentTeamCountValidation(t *testing.T) {
	svc := NewTournamentService(nil, nil, nil, discardLogger())

	tests := []struct {
		name    string
		teamIDs []int
	}{
		{"odd count", []int{1, 2, 3}},
		{"single team", []int{1}},
		{"no teams", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{
				Name:    "Spring Cup",
				TeamIDs: tt.teamIDs,
			})
			if !errors.Is(err, ErrValidationFailed) {
				t.Errorf("err = %v, want ErrValidationFailed", err)
			}
		})
	}
}

func TestCreateTournamentRequiresName(t *testing.T) {
	svc := NewTournamentService(nil, nil, nil, discardLogger())

	_, err := svc.CreateTournament(context.Background(), CreateTournamentInput{TeamIDs: []int{1, 2}})
	if !errors.Is(err, ErrValidationFailed) {
		t.Errorf("err = %v, want ErrValidationFailed", err)
	}
}

func TestAdvanceRoundOddTeamCount(t *testing.T) {
	repo := &fakeTournamentRepo{
		tournament: &models.Tournament{ID: 1, Status: models.TournamentInProgress},
		latestRound: &models.TournamentRound{
			ID: 7, TournamentID: 1, RoundNumber: 2,
			Teams: []models.RoundTeam{
				{TeamID: 1}, {TeamID: 2}, {TeamID: 3},
			},
		},
	}
	svc := NewTournamentService(nil, repo, nil, discardLogger())

	_, err := svc.AdvanceRound(context.Background(), 1, AdvanceRoundInput{Winners: []int{1}})
	if !errors.Is(err, ErrInvalidBracketState) {
		t.Fatalf("err = %v, want ErrInvalidBracketState", err)
	}
	// The failed advance must not have touched the bracket.
	if repo.eliminations != 0 || repo.roundsCreated != 0 {
		t.Errorf("bracket mutated on failed advance: eliminations=%d roundsCreated=%d",
			repo.eliminations, repo.roundsCreated)
	}
}

func TestAdvanceRoundCompletedTournament(t *testing.T) {
	repo := &fakeTournamentRepo{
		tournament: &models.Tournament{ID: 1, Status: models.TournamentCompleted},
	}
	svc := NewTournamentService(nil, repo, nil, discardLogger())

	_, err := svc.AdvanceRound(context.Background(), 1, AdvanceRoundInput{})
	if !errors.Is(err, ErrInvalidBracketState) {
		t.Errorf("err = %v, want ErrInvalidBracketState", err)
	}
}

func TestFinalizeIncompleteIsNoOp(t *testing.T) {
	repo := &fakeTournamentRepo{
		tournament: &models.Tournament{ID: 1, Status: models.TournamentInProgress},
		latestRound: &models.TournamentRound{
			ID: 3, TournamentID: 1, RoundNumber: 1,
			Teams: []models.RoundTeam{{TeamID: 1}, {TeamID: 2}},
		},
	}
	svc := NewTournamentService(nil, repo, nil, discardLogger())

	champion, err := svc.FinalizeIfComplete(context.Background(), 1)
	if err != nil {
		t.Fatalf("FinalizeIfComplete: %v", err)
	}
	if champion != nil {
		t.Errorf("champion = %+v, want nil while two teams remain", champion)
	}
}
