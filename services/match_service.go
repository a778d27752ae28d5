package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"github.com/Dosada05/matchday/results"
)

type MatchService interface {
	CreateMatch(ctx context.Context, actor Actor, input CreateMatchInput) (*models.Match, error)
	GetMatch(ctx context.Context, id int) (*models.Match, error)
	ListMatches(ctx context.Context, filter ListMatchesFilter, page models.Page) ([]*models.Match, models.Pagination, error)
	UpdateMatch(ctx context.Context, actor Actor, id int, input UpdateMatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, actor Actor, id int) error

	UpdateStatus(ctx context.Context, actor Actor, id int, status models.MatchStatus) (*models.Match, error)
	UpdateScore(ctx context.Context, actor Actor, id int, input results.ScoreUpdate) (*models.Match, error)
	ConfirmResult(ctx context.Context, actor Actor, id int, role string) (*models.Match, error)
	ResetConfirmation(ctx context.Context, actor Actor, id int) (*models.Match, error)
}

type CreateMatchInput struct {
	TournamentID int       `json:"tournament_id"`
	HomeTeamID   int       `json:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id"`
	RefereeID    *int      `json:"referee_id,omitempty"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Venue        *string   `json:"venue,omitempty"`
}

type UpdateMatchInput struct {
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	RefereeID   *int       `json:"referee_id,omitempty"`
}

type ListMatchesFilter struct {
	TournamentID *int
	TeamID       *int
	Status       *models.MatchStatus
}

type MatchServiceDeps struct {
	Tx             repositories.Transactor
	MatchRepo      repositories.MatchRepository
	EventRepo      repositories.MatchEventRepository
	TeamRepo       repositories.TeamRepository
	TournamentRepo repositories.TournamentRepository
	Notifier       NotificationSender
	Hub            live.Broadcaster
	Logger         *slog.Logger
}

type matchService struct {
	tx             repositories.Transactor
	matchRepo      repositories.MatchRepository
	eventRepo      repositories.MatchEventRepository
	teamRepo       repositories.TeamRepository
	tournamentRepo repositories.TournamentRepository
	notifier       NotificationSender
	hub            live.Broadcaster
	logger         *slog.Logger
	now            func() time.Time
}

func NewMatchService(deps MatchServiceDeps) MatchService {
	return &matchService{
		tx:             deps.Tx,
		matchRepo:      deps.MatchRepo,
		eventRepo:      deps.EventRepo,
		teamRepo:       deps.TeamRepo,
		tournamentRepo: deps.TournamentRepo,
		notifier:       deps.Notifier,
		hub:            deps.Hub,
		logger:         deps.Logger,
		now:            time.Now,
	}
}

func (s *matchService) CreateMatch(ctx context.Context, actor Actor, input CreateMatchInput) (*models.Match, error) {
	if input.HomeTeamID <= 0 || input.AwayTeamID <= 0 {
		return nil, newError(ErrInvalidArgument, "home_team_id and away_team_id are required")
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeams
	}
	if input.ScheduledAt.IsZero() {
		return nil, newError(ErrInvalidArgument, "scheduled_at is required")
	}
	t, err := s.tournamentRepo.GetByID(ctx, input.TournamentID)
	if err != nil {
		return nil, mapTournamentError(err)
	}
	if !actor.OrganizesTournament(t) {
		return nil, ErrOrganizerRequired
	}

	m := &models.Match{
		TournamentID: input.TournamentID,
		HomeTeamID:   input.HomeTeamID,
		AwayTeamID:   input.AwayTeamID,
		RefereeID:    input.RefereeID,
		ScheduledAt:  input.ScheduledAt,
		Venue:        input.Venue,
		Status:       models.MatchScheduled,
	}
	if err := s.matchRepo.Create(ctx, nil, m); err != nil {
		return nil, mapMatchError(err)
	}
	s.logger.InfoContext(ctx, "match created", slog.Int("match_id", m.ID), slog.Int("tournament_id", m.TournamentID))
	return m, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int) (*models.Match, error) {
	m, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapMatchError(err)
	}
	mc, err := loadMatchContext(ctx, s.teamRepo, s.tournamentRepo, m)
	if err != nil {
		return nil, err
	}
	mc.attach(m)
	return m, nil
}

func (s *matchService) ListMatches(ctx context.Context, filter ListMatchesFilter, page models.Page) ([]*models.Match, models.Pagination, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, models.Pagination{}, ErrInvalidStatus
	}
	page = page.Normalize()
	list, total, err := s.matchRepo.List(ctx, repositories.MatchFilter{
		TournamentID: filter.TournamentID,
		TeamID:       filter.TeamID,
		Status:       filter.Status,
	}, page)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list matches: %w", err)
	}
	return list, models.Pagination{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *matchService) UpdateMatch(ctx context.Context, actor Actor, id int, input UpdateMatchInput) (*models.Match, error) {
	var m *models.Match
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var mc *matchContext
		var err error
		if m, mc, err = s.lockMatch(ctx, exec, id); err != nil {
			return err
		}
		if !actor.OrganizesTournament(mc.tournament) {
			return ErrOrganizerRequired
		}
		if input.ScheduledAt != nil {
			if m.Status == models.MatchCompleted || m.Status == models.MatchCancelled {
				return newError(ErrInvalidOperation, fmt.Sprintf("cannot reschedule a %s match", m.Status))
			}
			m.ScheduledAt = *input.ScheduledAt
		}
		if input.Venue != nil {
			m.Venue = input.Venue
		}
		if input.RefereeID != nil {
			if *input.RefereeID <= 0 {
				m.RefereeID = nil
			} else {
				m.RefereeID = input.RefereeID
			}
		}
		return s.matchRepo.Update(ctx, exec, m)
	})
	if err != nil {
		return nil, mapMatchError(err)
	}
	s.publish(m)
	return m, nil
}

// DeleteMatch удаляет матч без событий физически, а матч с событиями - мягко.
func (s *matchService) DeleteMatch(ctx context.Context, actor Actor, id int) error {
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		_, mc, err := s.lockMatch(ctx, exec, id)
		if err != nil {
			return err
		}
		if !actor.OrganizesTournament(mc.tournament) {
			return ErrOrganizerRequired
		}
		events, err := s.eventRepo.CountByMatch(ctx, exec, id)
		if err != nil {
			return err
		}
		if events > 0 {
			return s.matchRepo.SoftDelete(ctx, exec, id)
		}
		return s.matchRepo.Delete(ctx, exec, id)
	})
	if err != nil {
		return mapMatchError(err)
	}
	s.logger.InfoContext(ctx, "match deleted", slog.Int("match_id", id), slog.Int("actor_id", actor.UserID))
	return nil
}

func (s *matchService) UpdateStatus(ctx context.Context, actor Actor, id int, status models.MatchStatus) (*models.Match, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w %q", ErrInvalidStatus, status)
	}

	var (
		m            *models.Match
		mc           *matchContext
		completedNow bool
		changed      bool
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		if m, mc, err = s.lockMatch(ctx, exec, id); err != nil {
			return err
		}
		if !actor.Officiates(m, mc.tournament) {
			return ErrOfficialRequired
		}
		prev := m.Status
		if completedNow, err = results.ApplyStatus(m, status); err != nil {
			return domainError(err)
		}
		if prev == m.Status {
			return nil
		}
		changed = true
		return s.matchRepo.Update(ctx, exec, m)
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	if changed {
		s.logger.InfoContext(ctx, "match status changed",
			slog.Int("match_id", id), slog.String("status", string(m.Status)), slog.Int("actor_id", actor.UserID))
		s.publish(m)
	}
	if completedNow {
		s.notifier.Send(ctx, mc.resultNotifications(m)...)
	}
	mc.attach(m)
	return m, nil
}

func (s *matchService) UpdateScore(ctx context.Context, actor Actor, id int, input results.ScoreUpdate) (*models.Match, error) {
	if input.Empty() {
		return nil, ErrEmptyScoreUpdate
	}

	var (
		m      *models.Match
		mc     *matchContext
		change results.ScoreChange
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		if m, mc, err = s.lockMatch(ctx, exec, id); err != nil {
			return err
		}
		if !actor.Officiates(m, mc.tournament) {
			return ErrOfficialRequired
		}
		wasConfirmed := m.IsResultConfirmed
		if change, err = results.ApplyScore(m, input); err != nil {
			return domainError(err)
		}
		if !change.Changed {
			return nil
		}
		// Изменение подтверждённого результата - явный сброс, только для организатора.
		if wasConfirmed && !actor.OrganizesTournament(mc.tournament) {
			return ErrConfirmedScoreLocked
		}
		return s.matchRepo.Update(ctx, exec, m)
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	if change.Changed {
		s.logger.InfoContext(ctx, "match score updated",
			slog.Int("match_id", id),
			slog.Bool("confirmation_reset", change.ConfirmationReset),
			slog.Int("actor_id", actor.UserID))
		s.publish(m)
	}
	if change.ScoreChanged {
		s.notifier.Send(ctx, mc.scoreUpdatedNotifications(m, change.ConfirmationReset)...)
	}
	mc.attach(m)
	return m, nil
}

func (s *matchService) ConfirmResult(ctx context.Context, actor Actor, id int, roleValue string) (*models.Match, error) {
	role, err := results.ParseRole(roleValue)
	if err != nil {
		return nil, domainError(err)
	}

	var (
		m         *models.Match
		mc        *matchContext
		finalized bool
		changed   bool
	)
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		if m, mc, err = s.lockMatch(ctx, exec, id); err != nil {
			return err
		}
		if m.Status != models.MatchCompleted {
			return domainError(results.ErrNotCompleted)
		}
		if !canConfirmAs(actor, role, m, mc) {
			return fmt.Errorf("%w: %s", ErrConfirmRoleForbidden, role)
		}
		before := results.ConfirmedBy(m)
		if finalized, err = results.Confirm(m, role, s.now()); err != nil {
			return domainError(err)
		}
		if before == results.ConfirmedBy(m) && !finalized {
			return nil
		}
		changed = true
		return s.matchRepo.Update(ctx, exec, m)
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	if changed {
		s.logger.InfoContext(ctx, "match result confirmed",
			slog.Int("match_id", id),
			slog.String("role", string(role)),
			slog.Bool("finalized", finalized),
			slog.Int("actor_id", actor.UserID))
		s.publish(m)
		if finalized {
			s.notifier.Send(ctx, mc.finalizedNotifications(m)...)
		} else {
			s.notifier.Send(ctx, mc.confirmationNotifications(m, role, actor.UserID)...)
		}
	}
	mc.attach(m)
	return m, nil
}

func (s *matchService) ResetConfirmation(ctx context.Context, actor Actor, id int) (*models.Match, error) {
	var (
		m     *models.Match
		mc    *matchContext
		reset bool
	)
	err := s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		var err error
		if m, mc, err = s.lockMatch(ctx, exec, id); err != nil {
			return err
		}
		if !actor.OrganizesTournament(mc.tournament) {
			return ErrOrganizerRequired
		}
		if reset = results.ResetConfirmation(m); !reset {
			return nil
		}
		return s.matchRepo.Update(ctx, exec, m)
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	if reset {
		s.logger.InfoContext(ctx, "match confirmation reset", slog.Int("match_id", id), slog.Int("actor_id", actor.UserID))
		s.publish(m)
		s.notifier.Send(ctx, mc.resetNotifications(m)...)
	}
	mc.attach(m)
	return m, nil
}

func canConfirmAs(actor Actor, role results.Role, m *models.Match, mc *matchContext) bool {
	if actor.IsAdmin() {
		return true
	}
	switch role {
	case results.RoleHome:
		return actor.LeadsTeam(m.HomeTeamID)
	case results.RoleAway:
		return actor.LeadsTeam(m.AwayTeamID)
	case results.RoleReferee:
		return actor.HasRole(models.RoleReferee)
	case results.RoleOrganizer:
		return actor.OrganizesTournament(mc.tournament)
	}
	return false
}

// lockMatch читает матч с блокировкой строки в транзакции exec.
func (s *matchService) lockMatch(ctx context.Context, exec repositories.SQLExecutor, id int) (*models.Match, *matchContext, error) {
	m, err := s.matchRepo.GetByIDForUpdate(ctx, exec, id)
	if err != nil {
		return nil, nil, err
	}
	mc, err := loadMatchContext(ctx, s.teamRepo, s.tournamentRepo, m)
	if err != nil {
		return nil, nil, err
	}
	return m, mc, nil
}

func (s *matchService) publish(m *models.Match) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(live.MatchRoom(m.ID), live.WebSocketMessage{Type: live.MessageMatchUpdated, Payload: m})
}

func mapMatchError(err error) error {
	var svcErr *serviceError
	switch {
	case errors.As(err, &svcErr):
		return err
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrMatchEventNotFound):
		return ErrMatchEventNotFound
	case errors.Is(err, repositories.ErrMatchTournamentInvalid):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrMatchTeamInvalid):
		return ErrInvalidTeam
	case errors.Is(err, repositories.ErrMatchRefereeInvalid):
		return ErrInvalidReferee
	case errors.Is(err, repositories.ErrMatchSameTeams):
		return ErrSameTeams
	case errors.Is(err, repositories.ErrMatchEventPlayerInvalid):
		return ErrInvalidPlayer
	}
	return fmt.Errorf("match repository failure: %w", err)
}
