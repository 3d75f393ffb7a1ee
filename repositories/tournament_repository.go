package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var (
	ErrTournamentNotFound     = errors.New("tournament not found")
	ErrTournamentNameConflict = errors.New("tournament name conflict")
	ErrRoundNotFound          = errors.New("tournament round not found")
	ErrRoundNumberConflict    = errors.New("round number already exists for this tournament")
	ErrRoundInvalidTeam       = errors.New("invalid team reference for round")
)

// TournamentRepository persists tournaments, rounds and round-team rows.
// Mutating methods take an SQLExecutor so the tournament service can run a
// whole round advancement in one transaction.
type TournamentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	ListIDs(ctx context.Context) ([]int, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error
	SetChampion(ctx context.Context, exec SQLExecutor, id int, championTeamID int) error
	Delete(ctx context.Context, id int) error

	CreateRound(ctx context.Context, exec SQLExecutor, round *models.TournamentRound) error
	AddRoundTeams(ctx context.Context, exec SQLExecutor, roundID int, teamIDs []int) error
	MarkEliminated(ctx context.Context, exec SQLExecutor, roundID int, teamIDs []int) error
	LatestRound(ctx context.Context, tournamentID int) (*models.TournamentRound, error)
	ListRounds(ctx context.Context, tournamentID int) ([]models.TournamentRound, error)
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

func (r *postgresTournamentRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTournamentRepository) Create(ctx context.Context, exec SQLExecutor, t *models.Tournament) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournaments (name, start_date, end_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := executor.QueryRowContext(ctx, query, t.Name, t.StartDate, t.EndDate, t.Status).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrTournamentNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `
		SELECT id, name, start_date, end_date, champion_team_id, status, created_at
		FROM tournaments
		WHERE id = $1`

	t := &models.Tournament{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.StartDate, &t.EndDate, &t.ChampionTeamID, &t.Status, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTournamentRepository) ListIDs(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM tournaments ORDER BY start_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresTournamentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id int, status models.TournamentStatus) error {
	executor := r.getExecutor(exec)
	result, err := executor.ExecContext(ctx, `UPDATE tournaments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) SetChampion(ctx context.Context, exec SQLExecutor, id int, championTeamID int) error {
	executor := r.getExecutor(exec)
	query := `UPDATE tournaments SET champion_team_id = $1, status = $2 WHERE id = $3`
	result, err := executor.ExecContext(ctx, query, championTeamID, models.TournamentCompleted, id)
	if err != nil {
		return fmt.Errorf("failed to set tournament champion: %w", err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) CreateRound(ctx context.Context, exec SQLExecutor, round *models.TournamentRound) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO tournament_rounds (tournament_id, round_number)
		VALUES ($1, $2)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query, round.TournamentID, round.RoundNumber).Scan(&round.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrRoundNumberConflict
		}
		return err
	}
	return nil
}

func (r *postgresTournamentRepository) AddRoundTeams(ctx context.Context, exec SQLExecutor, roundID int, teamIDs []int) error {
	executor := r.getExecutor(exec)
	query := `INSERT INTO round_teams (round_id, team_id, eliminated) VALUES ($1, $2, FALSE)`
	for _, teamID := range teamIDs {
		if _, err := executor.ExecContext(ctx, query, roundID, teamID); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
				return ErrRoundInvalidTeam
			}
			return fmt.Errorf("failed to add team %d to round %d: %w", teamID, roundID, err)
		}
	}
	return nil
}

func (r *postgresTournamentRepository) MarkEliminated(ctx context.Context, exec SQLExecutor, roundID int, teamIDs []int) error {
	if len(teamIDs) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `UPDATE round_teams SET eliminated = TRUE WHERE round_id = $1 AND team_id = ANY($2)`
	result, err := executor.ExecContext(ctx, query, roundID, pq.Array(teamIDs))
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if int(affected) != len(teamIDs) {
		return fmt.Errorf("expected to eliminate %d teams in round %d, updated %d", len(teamIDs), roundID, affected)
	}
	return nil
}

func (r *postgresTournamentRepository) LatestRound(ctx context.Context, tournamentID int) (*models.TournamentRound, error) {
	query := `
		SELECT id, tournament_id, round_number
		FROM tournament_rounds
		WHERE tournament_id = $1
		ORDER BY round_number DESC
		LIMIT 1`

	round := &models.TournamentRound{}
	err := r.db.QueryRowContext(ctx, query, tournamentID).
		Scan(&round.ID, &round.TournamentID, &round.RoundNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoundNotFound
		}
		return nil, err
	}

	round.Teams, err = r.listRoundTeams(ctx, round.ID)
	if err != nil {
		return nil, err
	}
	return round, nil
}

func (r *postgresTournamentRepository) ListRounds(ctx context.Context, tournamentID int) ([]models.TournamentRound, error) {
	query := `
		SELECT id, tournament_id, round_number
		FROM tournament_rounds
		WHERE tournament_id = $1
		ORDER BY round_number`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]models.TournamentRound, 0)
	for rows.Next() {
		var round models.TournamentRound
		if scanErr := rows.Scan(&round.ID, &round.TournamentID, &round.RoundNumber); scanErr != nil {
			return nil, scanErr
		}
		rounds = append(rounds, round)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	for i := range rounds {
		rounds[i].Teams, err = r.listRoundTeams(ctx, rounds[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return rounds, nil
}

func (r *postgresTournamentRepository) listRoundTeams(ctx context.Context, roundID int) ([]models.RoundTeam, error) {
	query := `
		SELECT id, round_id, team_id, eliminated
		FROM round_teams
		WHERE round_id = $1
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.RoundTeam, 0)
	for rows.Next() {
		var rt models.RoundTeam
		if scanErr := rows.Scan(&rt.ID, &rt.RoundID, &rt.TeamID, &rt.Eliminated); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, rt)
	}
	return teams, rows.Err()
}
