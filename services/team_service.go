package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"github.com/Dosada05/matchday/storage"
)

type TeamService interface {
	CreateTeam(ctx context.Context, actor Actor, input TeamInput) (*models.Team, error)
	GetTeam(ctx context.Context, id int) (*models.Team, error)
	ListTeams(ctx context.Context, page models.Page) ([]*models.Team, models.Pagination, error)
	UpdateTeam(ctx context.Context, actor Actor, id int, input TeamInput) (*models.Team, error)
	DeleteTeam(ctx context.Context, actor Actor, id int) error
	UploadTeamLogo(ctx context.Context, actor Actor, id int, file io.Reader, contentType string) (*models.Team, error)
}

type TeamInput struct {
	Name string `json:"name"`
	// LeaderID может сменить только администратор.
	LeaderID *int `json:"leader_id,omitempty"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, actor Actor, input TeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	team := &models.Team{Name: name, LeaderID: actor.UserID}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}
	return team, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load players of team %d: %w", id, err)
	}
	team.Players = players
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, page models.Page) ([]*models.Team, models.Pagination, error) {
	page = page.Normalize()
	teams, total, err := s.teamRepo.List(ctx, page)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, t := range teams {
		populateTeamLogoURLFunc(t, s.uploader)
	}
	return teams, models.Pagination{Page: page.Page, Limit: page.Limit, Total: total}, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, actor Actor, id int, input TeamInput) (*models.Team, error) {
	team, err := s.authorizedTeam(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		team.Name = name
	}
	if input.LeaderID != nil && *input.LeaderID != team.LeaderID {
		if !actor.IsAdmin() {
			return nil, newError(ErrForbidden, "only an administrator can change the team leader")
		}
		team.LeaderID = *input.LeaderID
	}
	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, s.mapTeamError(err)
	}
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

func (s *teamService) DeleteTeam(ctx context.Context, actor Actor, id int) error {
	team, err := s.authorizedTeam(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.teamRepo.Delete(ctx, id); err != nil {
		return s.mapTeamError(err)
	}
	if team.LogoKey != nil && s.uploader != nil {
		if err := s.uploader.Delete(ctx, *team.LogoKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete team logo", slog.Int("team_id", id), slog.Any("error", err))
		}
	}
	return nil
}

func (s *teamService) UploadTeamLogo(ctx context.Context, actor Actor, id int, file io.Reader, contentType string) (*models.Team, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}
	team, err := s.authorizedTeam(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	ext, err := storage.ImageExtension(contentType)
	if err != nil {
		return nil, classify(ErrInvalidArgument, err)
	}

	key := fmt.Sprintf("teams/%d/logo_%d%s", id, time.Now().UnixNano(), ext)
	if _, err := s.uploader.Upload(ctx, key, contentType, file); err != nil {
		return nil, fmt.Errorf("failed to upload logo of team %d: %w", id, err)
	}
	oldKey := team.LogoKey
	if err := s.teamRepo.UpdateLogoKey(ctx, id, &key); err != nil {
		// Не оставляем сиротский объект в хранилище.
		if delErr := s.uploader.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to clean up uploaded logo", slog.String("key", key), slog.Any("error", delErr))
		}
		return nil, s.mapTeamError(err)
	}
	if oldKey != nil && *oldKey != "" {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.WarnContext(ctx, "failed to delete previous team logo", slog.String("key", *oldKey), slog.Any("error", err))
		}
	}

	team.LogoKey = &key
	populateTeamLogoURLFunc(team, s.uploader)
	return team, nil
}

// authorizedTeam загружает команду и проверяет, что actor - её лидер или администратор.
func (s *teamService) authorizedTeam(ctx context.Context, actor Actor, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapTeamError(err)
	}
	if team.LeaderID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrTeamLeaderRequired
	}
	return team, nil
}

func (s *teamService) mapTeamError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrTeamLeaderInvalid):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrTeamInUse):
		return ErrTeamInUse
	}
	return fmt.Errorf("team repository failure: %w", err)
}
