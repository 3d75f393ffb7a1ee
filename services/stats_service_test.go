package services

import (
	"context"
	"math"
	"testing"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type fakeStatsGameRepo struct {
	repositories.GameRepository
	stats map[int]*repositories.TeamScoreStats
}

func (f *fakeStatsGameRepo) TeamScoreStats(_ context.Context, teamID int) (*repositories.TeamScoreStats, error) {
	if s, ok := f.stats[teamID]; ok {
		return s, nil
	}
	return &repositories.TeamScoreStats{}, nil
}

type fakeScoreRepo struct {
	repositories.ScoreRepository
	playerAverages map[int]float64
	teamAverages   map[int][]repositories.PlayerAverage
}

func (f *fakeScoreRepo) PlayerAverageScore(_ context.Context, playerID int) (float64, error) {
	return f.playerAverages[playerID], nil
}

func (f *fakeScoreRepo) TeamPlayerAverages(_ context.Context, teamID int) ([]repositories.PlayerAverage, error) {
	return f.teamAverages[teamID], nil
}

type fakeTeamRepo struct {
	repositories.TeamRepository
	byCoach map[int][]models.Team
}

func (f *fakeTeamRepo) ListByCoach(_ context.Context, coachID int) ([]models.Team, error) {
	return f.byCoach[coachID], nil
}

func TestTeamAverageScoreWeighting(t *testing.T) {
	gameRepo := &fakeStatsGameRepo{stats: map[int]*repositories.TeamScoreStats{
		// Two home games scoring 10 and 20, one away game scoring 30.
		1: {HomeAverage: 15, HomeCount: 2, AwayAverage: 30, AwayCount: 1},
		// No games at all.
		2: {},
	}}
	svc := NewStatsService(gameRepo, nil, nil, nil, nil)

	avg, err := svc.TeamAverageScore(context.Background(), 1)
	if err != nil {
		t.Fatalf("TeamAverageScore: %v", err)
	}
	if math.Abs(avg-20) > 1e-9 {
		t.Errorf("weighted average = %v, want 20", avg)
	}

	avg, err = svc.TeamAverageScore(context.Background(), 2)
	if err != nil {
		t.Fatalf("TeamAverageScore: %v", err)
	}
	if avg != 0 {
		t.Errorf("zero-game team average = %v, want 0", avg)
	}
}

func TestPlayerAverageScoreNoRecords(t *testing.T) {
	scoreRepo := &fakeScoreRepo{playerAverages: map[int]float64{}}
	svc := NewStatsService(nil, scoreRepo, nil, nil, nil)

	avg, err := svc.PlayerAverageScore(context.Background(), 42)
	if err != nil {
		t.Fatalf("PlayerAverageScore: %v", err)
	}
	if avg != 0 {
		t.Errorf("average = %v, want 0", avg)
	}
}

func TestPercentileHighScorersBoundary(t *testing.T) {
	// Ten players with distinct averages: with threshold 0.10 only the top
	// one qualifies (second place ranks 1/9, which is not below 0.10).
	averages := make([]repositories.PlayerAverage, 10)
	players := make(map[int]*models.Player, 10)
	for i := range averages {
		id := i + 1
		averages[i] = repositories.PlayerAverage{PlayerID: id, Average: float64(100 - i*5)}
		players[id] = &models.Player{ID: id, TeamID: 1, Name: "P"}
	}

	scoreRepo := &fakeScoreRepo{teamAverages: map[int][]repositories.PlayerAverage{1: averages}}
	playerRepo := &fakePlayerRepo{players: players}
	svc := NewStatsService(nil, scoreRepo, playerRepo, nil, nil)

	scorers, err := svc.PercentileHighScorers(context.Background(), 1, 0.10)
	if err != nil {
		t.Fatalf("PercentileHighScorers: %v", err)
	}
	if len(scorers) != 1 {
		t.Fatalf("got %d high scorers, want 1", len(scorers))
	}
	if scorers[0].ID != 1 {
		t.Errorf("high scorer ID = %d, want 1", scorers[0].ID)
	}
	if math.Abs(scorers[0].AverageScore-100) > 1e-9 {
		t.Errorf("high scorer average = %v, want 100", scorers[0].AverageScore)
	}
}

func TestHighScorersForForeignCoach(t *testing.T) {
	// A coach without owned teams gets an empty result set, never an error.
	teamRepo := &fakeTeamRepo{byCoach: map[int][]models.Team{}}
	svc := NewStatsService(nil, nil, nil, teamRepo, nil)

	scorers, err := svc.HighScorersForCoach(context.Background(), 99)
	if err != nil {
		t.Fatalf("HighScorersForCoach: %v", err)
	}
	if len(scorers) != 0 {
		t.Errorf("got %d scorers for a coach without teams, want 0", len(scorers))
	}
}
