package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/matchday/brackets"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
)

type TournamentService interface {
	CreateTournament(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id int) (*models.Tournament, error)
	ListTournaments(ctx context.Context, filter ListTournamentsFilter, page models.Page) ([]*models.Tournament, models.Pagination, error)
	UpdateTournament(ctx context.Context, actor Actor, id int, input UpdateTournamentInput) (*models.Tournament, error)
	DeleteTournament(ctx context.Context, actor Actor, id int) error
	GenerateFixtures(ctx context.Context, actor Actor, id int, input GenerateFixturesInput) ([]*models.Match, error)
}

type CreateTournamentInput struct {
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
}

type UpdateTournamentInput struct {
	Name        *string                  `json:"name,omitempty"`
	Description *string                  `json:"description,omitempty"`
	StartDate   *time.Time               `json:"start_date,omitempty"`
	EndDate     *time.Time               `json:"end_date,omitempty"`
	Status      *models.TournamentStatus `json:"status,omitempty"`
}

type ListTournamentsFilter struct {
	Status      *models.TournamentStatus
	OrganizerID *int
}

type GenerateFixturesInput struct {
	TeamIDs []int `json:"team_ids"`
	// Legs - 1 (по умолчанию) или 2.
	Legs int `json:"legs"`
	// FirstMatchAt - время матчей первого тура; по умолчанию дата начала турнира.
	FirstMatchAt *time.Time `json:"first_match_at,omitempty"`
	// IntervalDays - дней между турами, по умолчанию 7.
	IntervalDays int     `json:"interval_days"`
	Venue        *string `json:"venue,omitempty"`
}

const defaultFixtureIntervalDays = 7

type tournamentService struct {
	tx             repositories.Transactor
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	matchRepo      repositories.MatchRepository
	generator      brackets.BracketGenerator
	logger         *slog.Logger
}

func NewTournamentService(
	tx repositories.Transactor,
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	generator brackets.BracketGenerator,
	logger *slog.Logger,
) TournamentService {
	return &tournamentService{
		tx:             tx,
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		generator:      generator,
		logger:         logger,
	}
}

func validateTournamentDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return newError(ErrInvalidArgument, "start_date and end_date are required")
	}
	if end.Before(start) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidDateRange, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, actor Actor, input CreateTournamentInput) (*models.Tournament, error) {
	if !actor.HasRole(models.RoleOrganizer) && !actor.IsAdmin() {
		return nil, ErrOrganizerRoleRequired
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTournamentNameReq
	}
	if err := validateTournamentDates(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	t := &models.Tournament{
		Name:        name,
		Description: input.Description,
		OrganizerID: actor.UserID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      models.TournamentUpcoming,
	}
	if err := s.tournamentRepo.Create(ctx, t); err != nil {
		return nil, mapTournamentError(err)
	}
	s.logger.InfoContext(ctx, "tournament created", slog.Int("tournament_id", t.ID), slog.Int("organizer_id", t.OrganizerID))
	return t, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentError(err)
	}
	return t, nil
}

func (s *tournamentService) ListTournaments(ctx context.Context, filter ListTournamentsFilter, page models.Page) ([]*models.Tournament, models.Pagination, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, models.Pagination{}, ErrInvalidStatus
	}
	page = page.Normalize()
	list, total, err := s.tournamentRepo.List(ctx, repositories.TournamentFilter{
		Status:      filter.Status,
		OrganizerID: filter.OrganizerID,
	}, page)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return list, models.Pagination{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *tournamentService) UpdateTournament(ctx context.Context, actor Actor, id int, input UpdateTournamentInput) (*models.Tournament, error) {
	t, err := s.authorizedTournament(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTournamentNameReq
		}
		t.Name = name
	}
	if input.Description != nil {
		t.Description = input.Description
	}
	if input.StartDate != nil {
		t.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		t.EndDate = *input.EndDate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		t.Status = *input.Status
	}
	if err := validateTournamentDates(t.StartDate, t.EndDate); err != nil {
		return nil, err
	}
	if err := s.tournamentRepo.Update(ctx, t); err != nil {
		return nil, mapTournamentError(err)
	}
	return t, nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, actor Actor, id int) error {
	if _, err := s.authorizedTournament(ctx, actor, id); err != nil {
		return err
	}
	if err := s.tournamentRepo.Delete(ctx, id); err != nil {
		return mapTournamentError(err)
	}
	return nil
}

// GenerateFixtures создаёт матчи кругового турнира. Все матчи сохраняются
// в одной транзакции: либо весь календарь, либо ничего.
func (s *tournamentService) GenerateFixtures(ctx context.Context, actor Actor, id int, input GenerateFixturesInput) ([]*models.Match, error) {
	t, err := s.authorizedTournament(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if t.Status == models.TournamentCompleted || t.Status == models.TournamentCancelled {
		return nil, newError(ErrInvalidOperation, fmt.Sprintf("cannot schedule matches for a %s tournament", t.Status))
	}

	pairs, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{
		TournamentID: id,
		TeamIDs:      input.TeamIDs,
		Legs:         input.Legs,
	})
	if err != nil {
		return nil, domainError(err)
	}

	teams, err := s.teamRepo.GetByIDs(ctx, input.TeamIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	for _, teamID := range input.TeamIDs {
		if _, ok := teams[teamID]; !ok {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTeam, teamID)
		}
	}

	interval := input.IntervalDays
	if interval <= 0 {
		interval = defaultFixtureIntervalDays
	}
	firstAt := t.StartDate
	if input.FirstMatchAt != nil {
		firstAt = *input.FirstMatchAt
	}

	matches := make([]*models.Match, 0, len(pairs))
	err = s.tx.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		for _, p := range pairs {
			m := &models.Match{
				TournamentID: id,
				HomeTeamID:   p.HomeTeamID,
				AwayTeamID:   p.AwayTeamID,
				ScheduledAt:  firstAt.AddDate(0, 0, (p.Round-1)*interval),
				Venue:        input.Venue,
				Status:       models.MatchScheduled,
			}
			if err := s.matchRepo.Create(ctx, exec, m); err != nil {
				return err
			}
			matches = append(matches, m)
		}
		return nil
	})
	if err != nil {
		return nil, mapMatchError(err)
	}

	s.logger.InfoContext(ctx, "fixtures generated",
		slog.Int("tournament_id", id),
		slog.String("generator", s.generator.GetName()),
		slog.Int("matches", len(matches)))
	return matches, nil
}

func (s *tournamentService) authorizedTournament(ctx context.Context, actor Actor, id int) (*models.Tournament, error) {
	t, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTournamentError(err)
	}
	if !actor.OrganizesTournament(t) {
		return nil, ErrOrganizerRequired
	}
	return t, nil
}

func mapTournamentError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repositories.ErrTournamentNameConflict):
		return ErrTournamentNameConflict
	case errors.Is(err, repositories.ErrOrganizerNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrTournamentInUse):
		return ErrTournamentInUse
	}
	return fmt.Errorf("tournament repository failure: %w", err)
}
