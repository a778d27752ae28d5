package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
)

type PlayerService interface {
	AddPlayer(ctx context.Context, actor Actor, teamID int, input PlayerInput) (*models.Player, error)
	ListPlayers(ctx context.Context, teamID int) ([]models.Player, error)
	UpdatePlayer(ctx context.Context, actor Actor, teamID, playerID int, input PlayerInput) (*models.Player, error)
	RemovePlayer(ctx context.Context, actor Actor, teamID, playerID int) error
}

type PlayerInput struct {
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	JerseyNumber *int    `json:"jersey_number,omitempty"`
	Position     *string `json:"position,omitempty"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{playerRepo: playerRepo, teamRepo: teamRepo}
}

func (s *playerService) AddPlayer(ctx context.Context, actor Actor, teamID int, input PlayerInput) (*models.Player, error) {
	if err := s.checkLeader(ctx, actor, teamID); err != nil {
		return nil, err
	}
	if err := validatePlayerInput(input); err != nil {
		return nil, err
	}
	player := &models.Player{
		TeamID:       teamID,
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		JerseyNumber: input.JerseyNumber,
		Position:     input.Position,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, mapPlayerError(err)
	}
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context, teamID int) ([]models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

func (s *playerService) UpdatePlayer(ctx context.Context, actor Actor, teamID, playerID int, input PlayerInput) (*models.Player, error) {
	if err := s.checkLeader(ctx, actor, teamID); err != nil {
		return nil, err
	}
	player, err := s.teamPlayer(ctx, teamID, playerID)
	if err != nil {
		return nil, err
	}
	if input.FirstName != "" {
		player.FirstName = strings.TrimSpace(input.FirstName)
	}
	if input.LastName != "" {
		player.LastName = strings.TrimSpace(input.LastName)
	}
	if input.JerseyNumber != nil {
		player.JerseyNumber = input.JerseyNumber
	}
	if input.Position != nil {
		player.Position = input.Position
	}
	if err := validatePlayerInput(PlayerInput{FirstName: player.FirstName, JerseyNumber: player.JerseyNumber}); err != nil {
		return nil, err
	}
	if err := s.playerRepo.Update(ctx, player); err != nil {
		return nil, mapPlayerError(err)
	}
	return player, nil
}

func (s *playerService) RemovePlayer(ctx context.Context, actor Actor, teamID, playerID int) error {
	if err := s.checkLeader(ctx, actor, teamID); err != nil {
		return err
	}
	if _, err := s.teamPlayer(ctx, teamID, playerID); err != nil {
		return err
	}
	if err := s.playerRepo.Delete(ctx, playerID); err != nil {
		return mapPlayerError(err)
	}
	return nil
}

func (s *playerService) checkLeader(ctx context.Context, actor Actor, teamID int) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to get team %d: %w", teamID, err)
	}
	if team.LeaderID != actor.UserID && !actor.IsAdmin() {
		return ErrTeamLeaderRequired
	}
	return nil
}

// teamPlayer возвращает игрока, только если он заявлен за teamID.
func (s *playerService) teamPlayer(ctx context.Context, teamID, playerID int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, mapPlayerError(err)
	}
	if player.TeamID != teamID {
		return nil, ErrPlayerNotFound
	}
	return player, nil
}

func validatePlayerInput(input PlayerInput) error {
	if strings.TrimSpace(input.FirstName) == "" {
		return ErrPlayerNameRequired
	}
	if input.JerseyNumber != nil && (*input.JerseyNumber < 0 || *input.JerseyNumber > 99) {
		return newError(ErrInvalidArgument, "jersey number must be between 0 and 99")
	}
	return nil
}

func mapPlayerError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPlayerJerseyConflict):
		return ErrJerseyConflict
	case errors.Is(err, repositories.ErrPlayerTeamInvalid):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrPlayerInUse):
		return ErrPlayerInUse
	}
	return fmt.Errorf("player repository failure: %w", err)
}
