package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Dosada05/basketball-league/brackets"
	"github.com/Dosada05/basketball-league/models"
	"github.com/Dosada05/basketball-league/repositories"
)

type CreateTournamentInput struct {
	Name      string     `json:"name"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	TeamIDs   []int      `json:"team_ids"`
}

type AdvanceRoundInput struct {
	// Winners holds one team ID per match, in match order. Winner
	// selection is always explicit caller input.
	Winners []int `json:"winners"`
}

type TournamentService interface {
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournamentIDs(ctx context.Context) ([]int, error)
	AdvanceRound(ctx context.Context, tournamentID int, input AdvanceRoundInput) (*models.TournamentRound, error)
	FinalizeIfComplete(ctx context.Context, tournamentID int) (*models.Team, error)
	DeleteTournament(ctx context.Context, id int) error
}

type tournamentService struct {
	db             *sql.DB
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	logger         *slog.Logger

	// Bracket mutation for one tournament must not interleave: two
	// concurrent advances could both read the pre-advance round and
	// double-create the next one. Reads stay lock-free.
	locksMu sync.Mutex
	locks   map[int]*sync.Mutex
}

func NewTournamentService(
	db *sql.DB,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		db:             db,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		logger:         logger,
		locks:          make(map[int]*sync.Mutex),
	}
}

func (s *tournamentService) lockTournament(id int) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	return mu
}

// CreateTournament seeds round one with the full, even-sized team list and
// every team unsent to elimination.
func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	if len(input.TeamIDs) < 2 || len(input.TeamIDs)%2 != 0 {
		return nil, ErrTournamentTeamCountInvalid
	}
	seen := make(map[int]struct{}, len(input.TeamIDs))
	for _, teamID := range input.TeamIDs {
		if _, dup := seen[teamID]; dup {
			return nil, fmt.Errorf("%w: team %d listed twice", ErrValidationFailed, teamID)
		}
		seen[teamID] = struct{}{}
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, fmt.Errorf("%w (id %d)", ErrTeamNotFound, teamID)
			}
			return nil, err
		}
	}

	tournament := &models.Tournament{
		Name:      input.Name,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Status:    models.TournamentCreated,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.Create(ctx, tx, tournament); err != nil {
		if errors.Is(err, repositories.ErrTournamentNameConflict) {
			return nil, fmt.Errorf("%w: tournament name is already in use", ErrValidationFailed)
		}
		return nil, err
	}

	round := &models.TournamentRound{TournamentID: tournament.ID, RoundNumber: 1}
	if err := s.tournamentRepo.CreateRound(ctx, tx, round); err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.AddRoundTeams(ctx, tx, round.ID, input.TeamIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament created",
		slog.Int("tournament_id", tournament.ID),
		slog.Int("teams", len(input.TeamIDs)))

	tournament.Rounds = []models.TournamentRound{*round}
	return tournament, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	tournament.Rounds, err = s.tournamentRepo.ListRounds(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load rounds for tournament %d: %w", id, err)
	}

	if tournament.ChampionTeamID != nil {
		champion, err := s.teamRepo.GetByID(ctx, *tournament.ChampionTeamID)
		if err == nil {
			tournament.Champion = champion
		} else if !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, err
		}
	}
	return tournament, nil
}

func (s *tournamentService) ListTournamentIDs(ctx context.Context) ([]int, error) {
	return s.tournamentRepo.ListIDs(ctx)
}

// AdvanceRound resolves the current round from explicit winners: losers are
// marked eliminated where they stand, winners seed the next round. The
// whole mutation is one transaction, so a rejected round leaves the bracket
// untouched.
func (s *tournamentService) AdvanceRound(ctx context.Context, tournamentID int, input AdvanceRoundInput) (*models.TournamentRound, error) {
	mu := s.lockTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status == models.TournamentCompleted {
		return nil, ErrTournamentAlreadyComplete
	}

	current, err := s.tournamentRepo.LatestRound(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, fmt.Errorf("%w: tournament %d has no rounds", brackets.ErrInvalidBracketState, tournamentID)
		}
		return nil, err
	}

	matches, err := brackets.PairRound(current.Teams)
	if err != nil {
		return nil, err
	}
	advancing, eliminated, err := brackets.ApplyResults(matches, input.Winners)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.tournamentRepo.MarkEliminated(ctx, tx, current.ID, eliminated); err != nil {
		return nil, err
	}

	next := &models.TournamentRound{
		TournamentID: tournamentID,
		RoundNumber:  current.RoundNumber + 1,
	}
	if err := s.tournamentRepo.CreateRound(ctx, tx, next); err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.AddRoundTeams(ctx, tx, next.ID, advancing); err != nil {
		return nil, err
	}
	if tournament.Status != models.TournamentInProgress {
		if err := s.tournamentRepo.UpdateStatus(ctx, tx, tournamentID, models.TournamentInProgress); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.InfoContext(ctx, "tournament round advanced",
		slog.Int("tournament_id", tournamentID),
		slog.Int("round_number", next.RoundNumber),
		slog.Int("advancing", len(advancing)))

	next.Teams = make([]models.RoundTeam, len(advancing))
	for i, teamID := range advancing {
		next.Teams[i] = models.RoundTeam{RoundID: next.ID, TeamID: teamID}
	}
	return next, nil
}

// FinalizeIfComplete promotes the sole survivor of the latest round to
// champion and completes the tournament. With more than one survivor it is
// a no-op returning no team.
func (s *tournamentService) FinalizeIfComplete(ctx context.Context, tournamentID int) (*models.Team, error) {
	mu := s.lockTournament(tournamentID)
	mu.Lock()
	defer mu.Unlock()

	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	if tournament.Status == models.TournamentCompleted && tournament.ChampionTeamID != nil {
		return s.teamRepo.GetByID(ctx, *tournament.ChampionTeamID)
	}

	latest, err := s.tournamentRepo.LatestRound(ctx, tournamentID)
	if err != nil {
		if errors.Is(err, repositories.ErrRoundNotFound) {
			return nil, nil
		}
		return nil, err
	}

	championID, err := brackets.Champion(latest.Teams)
	if err != nil {
		if errors.Is(err, brackets.ErrIncompleteTournament) {
			// Not done yet, nothing to finalize.
			return nil, nil
		}
		return nil, err
	}

	if err := s.tournamentRepo.SetChampion(ctx, nil, tournamentID, championID); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "tournament completed",
		slog.Int("tournament_id", tournamentID),
		slog.Int("champion_team_id", championID))

	champion, err := s.teamRepo.GetByID(ctx, championID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return champion, nil
}

// DeleteTournament removes the tournament with its rounds and round teams.
func (s *tournamentService) DeleteTournament(ctx context.Context, id int) error {
	mu := s.lockTournament(id)
	mu.Lock()
	defer mu.Unlock()

	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return ErrTournamentNotFound
		}
		return err
	}

	s.logger.InfoContext(ctx, "tournament deleted", slog.Int("tournament_id", id))
	return nil
}
