package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
	"github.com/Dosada05/basketball-league/stats"
	"golang.org/x/sync/errgroup"
)

// HighScorerThreshold is the default percentile cutoff for high-scorer
// listings: players strictly inside the top decile.
const HighScorerThreshold = 0.10

type StatsService interface {
	TeamAverageScore(ctx context.Context, teamID int) (float64, error)
	PlayerAverageScore(ctx context.Context, playerID int) (float64, error)
	PlayerScores(ctx context.Context, playerID int) ([]models.Score, error)
	PercentileHighScorers(ctx context.Context, teamID int, threshold float64) ([]models.Player, error)
	HighScorersForCoach(ctx context.Context, coachID int) ([]models.Player, error)
	AllTeamDetails(ctx context.Context) ([]models.Team, error)
	UserStatistics(ctx context.Context) ([]models.User, error)
}

type statsService struct {
	gameRepo   repositories.GameRepository
	scoreRepo  repositories.ScoreRepository
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
	userRepo   repositories.UserRepository
}

func NewStatsService(
	gameRepo repositories.GameRepository,
	scoreRepo repositories.ScoreRepository,
	playerRepo repositories.PlayerRepository,
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
) StatsService {
	return &statsService{
		gameRepo:   gameRepo,
		scoreRepo:  scoreRepo,
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		userRepo:   userRepo,
	}
}

// TeamAverageScore averages home and away scoring separately, then combines
// them weighted by games played in each role. A team without games scores 0.
func (s *statsService) TeamAverageScore(ctx context.Context, teamID int) (float64, error) {
	scoreStats, err := s.gameRepo.TeamScoreStats(ctx, teamID)
	if err != nil {
		return 0, fmt.Errorf("failed to load score stats for team %d: %w", teamID, err)
	}
	return stats.WeightedTeamAverage(
		scoreStats.HomeAverage, scoreStats.HomeCount,
		scoreStats.AwayAverage, scoreStats.AwayCount,
	), nil
}

func (s *statsService) PlayerAverageScore(ctx context.Context, playerID int) (float64, error) {
	avg, err := s.scoreRepo.PlayerAverageScore(ctx, playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to load average score for player %d: %w", playerID, err)
	}
	return avg, nil
}

// PlayerScores lists every scoring record of a player, oldest first.
func (s *statsService) PlayerScores(ctx context.Context, playerID int) ([]models.Score, error) {
	if _, err := s.playerRepo.GetByID(ctx, playerID); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	scores, err := s.scoreRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores for player %d: %w", playerID, err)
	}
	return scores, nil
}

// PercentileHighScorers returns the team's players whose percent rank over
// descending average score is strictly below threshold.
func (s *statsService) PercentileHighScorers(ctx context.Context, teamID int, threshold float64) ([]models.Player, error) {
	averages, err := s.scoreRepo.TeamPlayerAverages(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to load player averages for team %d: %w", teamID, err)
	}

	entries := make([]stats.RankedEntry, len(averages))
	byID := make(map[int]float64, len(averages))
	for i, pa := range averages {
		entries[i] = stats.RankedEntry{ID: pa.PlayerID, Value: pa.Average}
		byID[pa.PlayerID] = pa.Average
	}

	top := stats.TopPercentile(entries, threshold)

	players := make([]models.Player, 0, len(top))
	for _, entry := range top {
		player, err := s.playerRepo.GetByID(ctx, entry.ID)
		if err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				continue
			}
			return nil, err
		}
		player.AverageScore = byID[player.ID]
		players = append(players, *player)
	}
	return players, nil
}

// HighScorersForCoach gathers top-decile scorers across every team the
// coach owns. A coach without teams gets an empty list, not an error.
func (s *statsService) HighScorersForCoach(ctx context.Context, coachID int) ([]models.Player, error) {
	teams, err := s.teamRepo.ListByCoach(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for coach %d: %w", coachID, err)
	}

	scorers := make([]models.Player, 0)
	for _, team := range teams {
		teamScorers, err := s.PercentileHighScorers(ctx, team.ID, HighScorerThreshold)
		if err != nil {
			return nil, err
		}
		scorers = append(scorers, teamScorers...)
	}
	return scorers, nil
}

// AllTeamDetails lists every team with players and computed averages. The
// per-team aggregates are independent reads, so they fan out concurrently.
func (s *statsService) AllTeamDetails(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range teams {
		i := i
		g.Go(func() error {
			avg, err := s.TeamAverageScore(gctx, teams[i].ID)
			if err != nil {
				return err
			}
			teams[i].AverageScore = avg

			players, err := s.playerRepo.ListByTeam(gctx, teams[i].ID)
			if err != nil {
				return err
			}
			for j := range players {
				players[j].AverageScore, err = s.PlayerAverageScore(gctx, players[j].ID)
				if err != nil {
					return err
				}
			}
			teams[i].Players = players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return teams, nil
}

// UserStatistics exposes login telemetry for the staff dashboard.
func (s *statsService) UserStatistics(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
