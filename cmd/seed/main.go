package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/Dosada05/basketball-league/config"
	"github.com/Dosada05/basketball-league/db"
	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
	"github.com/Dosada05/basketball-league/services"
	"github.com/Dosada05/basketball-league/storage"
	"github.com/Dosada05/basketball-league/utils"
	_ "github.com/lib/pq"
)

// noopUploader satisfies storage.FileUploader, seeding never uploads logos.
type noopUploader struct{}

func (noopUploader) Upload(_ context.Context, key, _ string, _ io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{Key: key}, nil
}

func (noopUploader) Delete(context.Context, string) error { return nil }

func (noopUploader) GetPublicURL(string) string { return "" }

const (
	teamCount      = 16
	playersPerTeam = 10
	gameCount      = 24
)

// Seeds a development database with a full league: an admin, coaches with
// teams and rosters, played games with scores, and one finished tournament.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbConn.Close()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	scoreRepo := repositories.NewPostgresScoreRepository(dbConn)
	participationRepo := repositories.NewPostgresParticipationRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)

	statsService := services.NewStatsService(gameRepo, scoreRepo, playerRepo, teamRepo, userRepo)
	teamService := services.NewTeamService(teamRepo, userRepo, statsService, noopUploader{})
	playerService := services.NewPlayerService(playerRepo, userRepo, teamRepo, statsService)
	gameService := services.NewGameService(dbConn, gameRepo, teamRepo, playerRepo, scoreRepo, participationRepo)
	tournamentService := services.NewTournamentService(dbConn, tournamentRepo, teamRepo, logger)

	adminHash, err := utils.HashPassword("admin-password")
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		os.Exit(1)
	}
	admin := &models.User{
		Username:     "league_admin",
		Email:        "admin@league.local",
		PasswordHash: adminHash,
		IsAdmin:      true,
		IsStaff:      true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		logger.Error("failed to create admin", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("admin created", slog.Int("user_id", admin.ID))

	memberHash, err := utils.HashPassword("member-password")
	if err != nil {
		logger.Error("failed to hash password", slog.Any("error", err))
		os.Exit(1)
	}

	teams := make([]*models.Team, 0, teamCount)
	for i := 1; i <= teamCount; i++ {
		coach := &models.User{
			Username:     fmt.Sprintf("coach_%02d", i),
			Email:        fmt.Sprintf("coach%02d@league.local", i),
			PasswordHash: memberHash,
			IsCoach:      true,
		}
		if err := userRepo.Create(ctx, coach); err != nil {
			logger.Error("failed to create coach", slog.Any("error", err))
			os.Exit(1)
		}

		team, err := teamService.CreateTeam(ctx, services.CreateTeamInput{
			Name:    fmt.Sprintf("Team %02d", i),
			CoachID: coach.ID,
		})
		if err != nil {
			logger.Error("failed to create team", slog.Any("error", err))
			os.Exit(1)
		}
		teams = append(teams, team)

		for j := 1; j <= playersPerTeam; j++ {
			user := &models.User{
				Username:     fmt.Sprintf("player_%02d_%02d", i, j),
				Email:        fmt.Sprintf("player%02d.%02d@league.local", i, j),
				PasswordHash: memberHash,
				IsPlayer:     true,
			}
			if err := userRepo.Create(ctx, user); err != nil {
				logger.Error("failed to create player user", slog.Any("error", err))
				os.Exit(1)
			}

			_, err := playerService.CreatePlayer(ctx, services.CreatePlayerInput{
				UserID: user.ID,
				TeamID: team.ID,
				Name:   fmt.Sprintf("Player %02d-%02d", i, j),
				Height: 175 + rng.Float64()*40,
			})
			if err != nil {
				logger.Error("failed to create player", slog.Any("error", err))
				os.Exit(1)
			}
		}
	}
	logger.Info("teams seeded", slog.Int("teams", len(teams)))

	for i := 0; i < gameCount; i++ {
		a := rng.Intn(len(teams))
		b := rng.Intn(len(teams))
		if a == b {
			b = (b + 1) % len(teams)
		}

		game, err := gameService.CreateGame(ctx, services.CreateGameInput{
			Date:       time.Now().AddDate(0, 0, -rng.Intn(60)),
			Location:   fmt.Sprintf("Arena %d", rng.Intn(8)+1),
			Referee:    fmt.Sprintf("Referee %d", rng.Intn(10)+1),
			TeamAID:    teams[a].ID,
			TeamBID:    teams[b].ID,
			TeamAScore: 60 + rng.Intn(60),
			TeamBScore: 60 + rng.Intn(60),
		})
		if err != nil {
			logger.Error("failed to create game", slog.Any("error", err))
			os.Exit(1)
		}

		for _, teamID := range []int{teams[a].ID, teams[b].ID} {
			roster, err := playerRepo.ListByTeam(ctx, teamID)
			if err != nil {
				logger.Error("failed to list roster", slog.Any("error", err))
				os.Exit(1)
			}
			for _, player := range roster {
				points := rng.Intn(30)
				_, err := gameService.RecordParticipation(ctx, services.RecordParticipationInput{
					PlayerID:     player.ID,
					GameID:       game.ID,
					TeamID:       teamID,
					PointsScored: points,
				})
				if err != nil {
					logger.Error("failed to record participation", slog.Any("error", err))
					os.Exit(1)
				}
				_, err = gameService.RecordScore(ctx, services.RecordScoreInput{
					PlayerID: player.ID,
					GameID:   game.ID,
					Score:    float64(points),
				})
				if err != nil {
					logger.Error("failed to record score", slog.Any("error", err))
					os.Exit(1)
				}
			}
		}
	}
	logger.Info("games seeded", slog.Int("games", gameCount))

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	tournament, err := tournamentService.CreateTournament(ctx, services.CreateTournamentInput{
		Name:      "Preseason Invitational",
		StartDate: time.Now().AddDate(0, 0, -14),
		TeamIDs:   teamIDs,
	})
	if err != nil {
		logger.Error("failed to create tournament", slog.Any("error", err))
		os.Exit(1)
	}

	// Random winner picks are fine for fixtures. The API itself never
	// decides winners.
	remaining := teamIDs
	for len(remaining) > 1 {
		winners := make([]int, 0, len(remaining)/2)
		for i := 0; i+1 < len(remaining); i += 2 {
			if rng.Intn(2) == 0 {
				winners = append(winners, remaining[i])
			} else {
				winners = append(winners, remaining[i+1])
			}
		}
		if _, err := tournamentService.AdvanceRound(ctx, tournament.ID, services.AdvanceRoundInput{Winners: winners}); err != nil {
			logger.Error("failed to advance round", slog.Any("error", err))
			os.Exit(1)
		}
		remaining = winners
	}

	champion, err := tournamentService.FinalizeIfComplete(ctx, tournament.ID)
	if err != nil {
		logger.Error("failed to finalize tournament", slog.Any("error", err))
		os.Exit(1)
	}
	if champion != nil {
		logger.Info("tournament seeded", slog.Int("tournament_id", tournament.ID), slog.String("champion", champion.Name))
	}

	logger.Info("seeding complete")
}
