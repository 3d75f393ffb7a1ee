package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var ErrScoreInvalidRef = errors.New("invalid player or game reference")

// PlayerAverage is one player's mean score over all their Score records.
type PlayerAverage struct {
	PlayerID int
	Average  float64
}

type ScoreRepository interface {
	Create(ctx context.Context, exec SQLExecutor, score *models.Score) error
	ListByPlayer(ctx context.Context, playerID int) ([]models.Score, error)
	// PlayerAverageScore returns the AVG over a player's scores, 0 and no
	// error when none exist.
	PlayerAverageScore(ctx context.Context, playerID int) (float64, error)
	// TeamPlayerAverages returns every player on the team paired with their
	// average score (0 for players without scores).
	TeamPlayerAverages(ctx context.Context, teamID int) ([]PlayerAverage, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresScoreRepository) Create(ctx context.Context, exec SQLExecutor, s *models.Score) error {
	executor := r.getExecutor(exec)
	// No uniqueness on (player_id, game_id): multiple score rows per pair
	// are tolerated, unlike participations.
	query := `INSERT INTO scores (player_id, game_id, score) VALUES ($1, $2, $3) RETURNING id`
	err := executor.QueryRowContext(ctx, query, s.PlayerID, s.GameID, s.Score).Scan(&s.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrScoreInvalidRef
		}
		return err
	}
	return nil
}

func (r *postgresScoreRepository) ListByPlayer(ctx context.Context, playerID int) ([]models.Score, error) {
	query := `SELECT id, player_id, game_id, score FROM scores WHERE player_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, playerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.Score, 0)
	for rows.Next() {
		var s models.Score
		if scanErr := rows.Scan(&s.ID, &s.PlayerID, &s.GameID, &s.Score); scanErr != nil {
			return nil, scanErr
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

func (r *postgresScoreRepository) PlayerAverageScore(ctx context.Context, playerID int) (float64, error) {
	query := `SELECT COALESCE(AVG(score), 0) FROM scores WHERE player_id = $1`
	var avg float64
	if err := r.db.QueryRowContext(ctx, query, playerID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func (r *postgresScoreRepository) TeamPlayerAverages(ctx context.Context, teamID int) ([]PlayerAverage, error) {
	query := `
		SELECT p.id, COALESCE(AVG(s.score), 0)
		FROM players p
		LEFT JOIN scores s ON s.player_id = p.id
		WHERE p.team_id = $1
		GROUP BY p.id
		ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	averages := make([]PlayerAverage, 0)
	for rows.Next() {
		var pa PlayerAverage
		if scanErr := rows.Scan(&pa.PlayerID, &pa.Average); scanErr != nil {
			return nil, scanErr
		}
		averages = append(averages, pa)
	}
	return averages, rows.Err()
}
