package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"golang.org/x/sync/errgroup"
)

// Actor - права текущего пользователя, загруженные один раз на запрос.
type Actor struct {
	UserID  int
	Roles   []models.UserRole
	TeamIDs []int // команды, где пользователь - лидер
}

func (a Actor) HasRole(role models.UserRole) bool {
	return slices.Contains(a.Roles, role)
}

func (a Actor) IsAdmin() bool {
	return a.HasRole(models.RoleAdmin)
}

func (a Actor) LeadsTeam(teamID int) bool {
	return slices.Contains(a.TeamIDs, teamID)
}

func (a Actor) Authenticated() bool {
	return a.UserID > 0
}

// OrganizesTournament - организатор турнира или администратор.
func (a Actor) OrganizesTournament(t *models.Tournament) bool {
	return a.IsAdmin() || (t != nil && t.OrganizerID == a.UserID)
}

// Officiates - может вести протокол матча: назначенный судья (или любой судья,
// если судья не назначен), организатор турнира или администратор.
func (a Actor) Officiates(m *models.Match, t *models.Tournament) bool {
	if a.OrganizesTournament(t) {
		return true
	}
	if !a.HasRole(models.RoleReferee) {
		return false
	}
	return m.RefereeID == nil || *m.RefereeID == a.UserID
}

type ActorService interface {
	Resolve(ctx context.Context, userID int) (Actor, error)
}

type actorService struct {
	userRepo repositories.UserRepository
	teamRepo repositories.TeamRepository
}

func NewActorService(userRepo repositories.UserRepository, teamRepo repositories.TeamRepository) ActorService {
	return &actorService{userRepo: userRepo, teamRepo: teamRepo}
}

func (s *actorService) Resolve(ctx context.Context, userID int) (Actor, error) {
	actor := Actor{UserID: userID}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		roles, err := s.userRepo.ListRoles(gctx, userID)
		if err != nil {
			return err
		}
		actor.Roles = roles
		return nil
	})
	g.Go(func() error {
		teamIDs, err := s.teamRepo.ListIDsByLeader(gctx, userID)
		if err != nil {
			return err
		}
		actor.TeamIDs = teamIDs
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return Actor{}, ErrUserNotFound
		}
		return Actor{}, fmt.Errorf("failed to resolve permissions of user %d: %w", userID, err)
	}
	return actor, nil
}
