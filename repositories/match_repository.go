package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Dosada05/matchday/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament reference invalid")
	ErrMatchTeamInvalid       = errors.New("match team reference invalid")
	ErrMatchRefereeInvalid    = errors.New("match referee reference invalid")
	ErrMatchSameTeams         = errors.New("home and away team must differ")
)

type MatchFilter struct {
	TournamentID *int
	Status       *models.MatchStatus
	TeamID       *int
}

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	// GetByIDForUpdate блокирует строку матча до конца транзакции exec.
	GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchFilter, page models.Page) ([]*models.Match, int, error)
	// Update сохраняет все изменяемые поля матча, включая счёт и подтверждения.
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	SoftDelete(ctx context.Context, exec SQLExecutor, id int) error
	Delete(ctx context.Context, exec SQLExecutor, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `
	id, tournament_id, home_team_id, away_team_id, referee_id, scheduled_at, venue, status,
	home_score, away_score, half_time_home_score, half_time_away_score,
	home_penalty_score, away_penalty_score, has_penalties,
	home_confirmed, home_confirmed_at, away_confirmed, away_confirmed_at,
	referee_confirmed, referee_confirmed_at, is_result_confirmed, result_confirmed_at,
	created_at, updated_at, deleted_at`

func scanMatch(s rowScanner) (*models.Match, error) {
	m := &models.Match{}
	err := s.Scan(
		&m.ID,
		&m.TournamentID,
		&m.HomeTeamID,
		&m.AwayTeamID,
		&m.RefereeID,
		&m.ScheduledAt,
		&m.Venue,
		&m.Status,
		&m.HomeScore,
		&m.AwayScore,
		&m.HalfTimeHomeScore,
		&m.HalfTimeAwayScore,
		&m.HomePenaltyScore,
		&m.AwayPenaltyScore,
		&m.HasPenalties,
		&m.HomeConfirmed,
		&m.HomeConfirmedAt,
		&m.AwayConfirmed,
		&m.AwayConfirmedAt,
		&m.RefereeConfirmed,
		&m.RefereeConfirmedAt,
		&m.IsResultConfirmed,
		&m.ResultConfirmedAt,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (tournament_id, home_team_id, away_team_id, referee_id, scheduled_at, venue, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := execOr(exec, r.db).QueryRowContext(ctx, query,
		match.TournamentID,
		match.HomeTeamID,
		match.AwayTeamID,
		match.RefereeID,
		match.ScheduledAt,
		match.Venue,
		match.Status,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 AND deleted_at IS NULL`
	return r.getOne(r.db.QueryRowContext(ctx, query, id), id)
}

func (r *postgresMatchRepository) GetByIDForUpdate(ctx context.Context, exec SQLExecutor, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	return r.getOne(execOr(exec, r.db).QueryRowContext(ctx, query, id), id)
}

func (r *postgresMatchRepository) getOne(row *sql.Row, id int) (*models.Match, error) {
	m, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match by id %d: %w", id, err)
	}
	return m, nil
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchFilter, page models.Page) ([]*models.Match, int, error) {
	var where strings.Builder
	where.WriteString(` WHERE deleted_at IS NULL`)

	args := []interface{}{}
	placeholderIndex := 1

	if filter.TournamentID != nil {
		where.WriteString(" AND tournament_id = $")
		where.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.TournamentID)
		placeholderIndex++
	}
	if filter.Status != nil {
		where.WriteString(" AND status = $")
		where.WriteString(strconv.Itoa(placeholderIndex))
		args = append(args, *filter.Status)
		placeholderIndex++
	}
	if filter.TeamID != nil {
		n := strconv.Itoa(placeholderIndex)
		where.WriteString(" AND (home_team_id = $" + n + " OR away_team_id = $" + n + ")")
		args = append(args, *filter.TeamID)
		placeholderIndex++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`+where.String(), args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count matches: %w", err)
	}

	query := `SELECT ` + matchColumns + ` FROM matches` + where.String() +
		` ORDER BY scheduled_at ASC, id ASC LIMIT $` + strconv.Itoa(placeholderIndex) +
		` OFFSET $` + strconv.Itoa(placeholderIndex+1)
	args = append(args, page.Limit, page.Offset())

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, m)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, total, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, m *models.Match) error {
	query := `
		UPDATE matches SET
			referee_id = $1, scheduled_at = $2, venue = $3, status = $4,
			home_score = $5, away_score = $6, half_time_home_score = $7, half_time_away_score = $8,
			home_penalty_score = $9, away_penalty_score = $10, has_penalties = $11,
			home_confirmed = $12, home_confirmed_at = $13,
			away_confirmed = $14, away_confirmed_at = $15,
			referee_confirmed = $16, referee_confirmed_at = $17,
			is_result_confirmed = $18, result_confirmed_at = $19,
			updated_at = NOW()
		WHERE id = $20 AND deleted_at IS NULL
		RETURNING updated_at`

	err := execOr(exec, r.db).QueryRowContext(ctx, query,
		m.RefereeID, m.ScheduledAt, m.Venue, m.Status,
		m.HomeScore, m.AwayScore, m.HalfTimeHomeScore, m.HalfTimeAwayScore,
		m.HomePenaltyScore, m.AwayPenaltyScore, m.HasPenalties,
		m.HomeConfirmed, m.HomeConfirmedAt,
		m.AwayConfirmed, m.AwayConfirmedAt,
		m.RefereeConfirmed, m.RefereeConfirmedAt,
		m.IsResultConfirmed, m.ResultConfirmedAt,
		m.ID,
	).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMatchNotFound
		}
		return r.handleMatchError(err)
	}
	return nil
}

func (r *postgresMatchRepository) SoftDelete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := execOr(exec, r.db).ExecContext(ctx,
		`UPDATE matches SET deleted_at = NOW(), updated_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id int) error {
	result, err := execOr(exec, r.db).ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if _, constraint, ok := constraintOf(err); ok {
		switch constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey":
			return ErrMatchTeamInvalid
		case "matches_referee_id_fkey":
			return ErrMatchRefereeInvalid
		case "matches_distinct_teams":
			return ErrMatchSameTeams
		}
	}
	return err
}
