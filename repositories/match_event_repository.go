package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/matchday/models"
)

var (
	ErrMatchEventNotFound      = errors.New("match event not found")
	ErrMatchEventPlayerInvalid = errors.New("match event player reference invalid")
)

type MatchEventRepository interface {
	Create(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error
	GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.MatchEvent, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error)
	CountByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int, error)
	Update(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error
	SoftDelete(ctx context.Context, exec SQLExecutor, id int) error
	UpdateVideoKey(ctx context.Context, id int, videoKey *string) error
}

type postgresMatchEventRepository struct {
	db *sql.DB
}

func NewPostgresMatchEventRepository(db *sql.DB) MatchEventRepository {
	return &postgresMatchEventRepository{db: db}
}

const matchEventColumns = `
	id, match_id, event_type, player_id, secondary_player_id, team_id,
	minute, stoppage_minute, period, description, video_key, coord_x, coord_y,
	created_by, created_at, updated_at, deleted_at`

func scanMatchEvent(s rowScanner) (*models.MatchEvent, error) {
	e := &models.MatchEvent{}
	err := s.Scan(
		&e.ID,
		&e.MatchID,
		&e.EventType,
		&e.PlayerID,
		&e.SecondaryPlayerID,
		&e.TeamID,
		&e.Minute,
		&e.StoppageMinute,
		&e.Period,
		&e.Description,
		&e.VideoKey,
		&e.CoordX,
		&e.CoordY,
		&e.CreatedBy,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *postgresMatchEventRepository) Create(ctx context.Context, exec SQLExecutor, e *models.MatchEvent) error {
	query := `
		INSERT INTO match_events
			(match_id, event_type, player_id, secondary_player_id, team_id, minute, stoppage_minute,
			 period, description, coord_x, coord_y, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`

	err := execOr(exec, r.db).QueryRowContext(ctx, query,
		e.MatchID,
		e.EventType,
		e.PlayerID,
		e.SecondaryPlayerID,
		e.TeamID,
		e.Minute,
		e.StoppageMinute,
		e.Period,
		e.Description,
		e.CoordX,
		e.CoordY,
		e.CreatedBy,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)

	return r.handleMatchEventError(err)
}

func (r *postgresMatchEventRepository) GetByID(ctx context.Context, exec SQLExecutor, id int) (*models.MatchEvent, error) {
	query := `SELECT ` + matchEventColumns + ` FROM match_events WHERE id = $1 AND deleted_at IS NULL`
	e, err := scanMatchEvent(execOr(exec, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchEventNotFound
		}
		return nil, fmt.Errorf("failed to scan match event by id %d: %w", id, err)
	}
	return e, nil
}

func (r *postgresMatchEventRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.MatchEvent, error) {
	query := `SELECT ` + matchEventColumns + ` FROM match_events
		WHERE match_id = $1 AND deleted_at IS NULL
		ORDER BY period ASC, minute ASC, COALESCE(stoppage_minute, 0) ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events of match %d: %w", matchID, err)
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		e, scanErr := scanMatchEvent(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan match event row: %w", scanErr)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match event rows iteration: %w", err)
	}
	return events, nil
}

func (r *postgresMatchEventRepository) CountByMatch(ctx context.Context, exec SQLExecutor, matchID int) (int, error) {
	var n int
	err := execOr(exec, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM match_events WHERE match_id = $1 AND deleted_at IS NULL`, matchID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events of match %d: %w", matchID, err)
	}
	return n, nil
}

func (r *postgresMatchEventRepository) Update(ctx context.Context, exec SQLExecutor, e *models.MatchEvent) error {
	query := `
		UPDATE match_events SET
			event_type = $1, player_id = $2, secondary_player_id = $3, team_id = $4,
			minute = $5, stoppage_minute = $6, period = $7, description = $8,
			coord_x = $9, coord_y = $10, updated_at = NOW()
		WHERE id = $11 AND deleted_at IS NULL
		RETURNING updated_at`

	err := execOr(exec, r.db).QueryRowContext(ctx, query,
		e.EventType, e.PlayerID, e.SecondaryPlayerID, e.TeamID,
		e.Minute, e.StoppageMinute, e.Period, e.Description,
		e.CoordX, e.CoordY, e.ID,
	).Scan(&e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchEventNotFound
		}
		return r.handleMatchEventError(err)
	}
	return nil
}

func (r *postgresMatchEventRepository) SoftDelete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := execOr(exec, r.db).ExecContext(ctx,
		`UPDATE match_events SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete match event %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchEventNotFound)
}

func (r *postgresMatchEventRepository) UpdateVideoKey(ctx context.Context, id int, videoKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE match_events SET video_key = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, videoKey, id)
	if err != nil {
		return fmt.Errorf("failed to update video of match event %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchEventNotFound)
}

func (r *postgresMatchEventRepository) handleMatchEventError(err error) error {
	if err == nil {
		return nil
	}
	if _, constraint, ok := constraintOf(err); ok {
		switch constraint {
		case "match_events_match_id_fkey":
			return ErrMatchNotFound
		case "match_events_player_id_fkey", "match_events_secondary_player_id_fkey":
			return ErrMatchEventPlayerInvalid
		case "match_events_team_id_fkey":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
