package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/basketball-league/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrGameInvalidTeam = errors.New("invalid team reference")
)

// TeamScoreStats carries the per-role aggregates for one team: the store
// computes AVG and COUNT, the stats service does the weighting.
type TeamScoreStats struct {
	HomeAverage float64
	HomeCount   int
	AwayAverage float64
	AwayCount   int
}

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	List(ctx context.Context) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int) error
	TeamScoreStats(ctx context.Context, teamID int) (*TeamScoreStats, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, date, location, referee, team_a_id, team_b_id, team_a_score, team_b_score`

func (r *postgresGameRepository) Create(ctx context.Context, g *models.Game) error {
	query := `
		INSERT INTO games (date, location, referee, team_a_id, team_b_id, team_a_score, team_b_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		g.Date, g.Location, g.Referee, g.TeamAID, g.TeamBID, g.TeamAScore, g.TeamBScore,
	).Scan(&g.ID)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameInvalidTeam
		}
		return err
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	var g models.Game
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&g.ID, &g.Date, &g.Location, &g.Referee,
		&g.TeamAID, &g.TeamBID, &g.TeamAScore, &g.TeamBScore,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *postgresGameRepository) List(ctx context.Context) ([]models.Game, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+gameColumns+` FROM games ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		var g models.Game
		if scanErr := rows.Scan(
			&g.ID, &g.Date, &g.Location, &g.Referee,
			&g.TeamAID, &g.TeamBID, &g.TeamAScore, &g.TeamBScore,
		); scanErr != nil {
			return nil, scanErr
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

func (r *postgresGameRepository) Update(ctx context.Context, g *models.Game) error {
	query := `
		UPDATE games SET
			date = $1, location = $2, referee = $3,
			team_a_id = $4, team_b_id = $5, team_a_score = $6, team_b_score = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(ctx, query,
		g.Date, g.Location, g.Referee, g.TeamAID, g.TeamBID, g.TeamAScore, g.TeamBScore, g.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return ErrGameInvalidTeam
		}
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

// TeamScoreStats aggregates home and away scoring separately. COALESCE keeps
// the averages at zero for teams without games in a role.
func (r *postgresGameRepository) TeamScoreStats(ctx context.Context, teamID int) (*TeamScoreStats, error) {
	query := `
		SELECT
			COALESCE((SELECT AVG(team_a_score) FROM games WHERE team_a_id = $1), 0),
			(SELECT COUNT(*) FROM games WHERE team_a_id = $1),
			COALESCE((SELECT AVG(team_b_score) FROM games WHERE team_b_id = $1), 0),
			(SELECT COUNT(*) FROM games WHERE team_b_id = $1)`

	var s TeamScoreStats
	err := r.db.QueryRowContext(ctx, query, teamID).
		Scan(&s.HomeAverage, &s.HomeCount, &s.AwayAverage, &s.AwayCount)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
