package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"github.com/Dosada05/matchday/results"
	"golang.org/x/sync/errgroup"
)

// matchContext - команды и турнир матча, нужные для проверки прав и уведомлений.
type matchContext struct {
	home       *models.Team
	away       *models.Team
	tournament *models.Tournament
}

func loadMatchContext(
	ctx context.Context,
	teamRepo repositories.TeamRepository,
	tournamentRepo repositories.TournamentRepository,
	m *models.Match,
) (*matchContext, error) {
	mc := &matchContext{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := teamRepo.GetByIDs(gctx, []int{m.HomeTeamID, m.AwayTeamID})
		if err != nil {
			return fmt.Errorf("failed to load teams of match %d: %w", m.ID, err)
		}
		mc.home, mc.away = teams[m.HomeTeamID], teams[m.AwayTeamID]
		if mc.home == nil || mc.away == nil {
			return fmt.Errorf("teams of match %d are missing", m.ID)
		}
		return nil
	})
	g.Go(func() error {
		t, err := tournamentRepo.GetByID(gctx, m.TournamentID)
		if err != nil {
			return fmt.Errorf("failed to load tournament of match %d: %w", m.ID, err)
		}
		mc.tournament = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return mc, nil
}

func (mc *matchContext) attach(m *models.Match) {
	m.HomeTeam = mc.home
	m.AwayTeam = mc.away
	m.Tournament = mc.tournament
}

// stakeholders - лидеры обеих команд и организатор турнира.
func (mc *matchContext) stakeholders() []int {
	return uniqueIDs(mc.home.LeaderID, mc.away.LeaderID, mc.tournament.OrganizerID)
}

func (mc *matchContext) scoreLine(m *models.Match) string {
	return fmt.Sprintf("%s %d:%d %s", mc.home.Name, derefInt(m.HomeScore), derefInt(m.AwayScore), mc.away.Name)
}

type notificationMeta struct {
	MatchID      int    `json:"match_id"`
	TournamentID int    `json:"tournament_id"`
	HomeScore    *int   `json:"home_score"`
	AwayScore    *int   `json:"away_score"`
	Role         string `json:"role,omitempty"`
}

func (mc *matchContext) build(
	m *models.Match,
	recipients []int,
	typ models.NotificationType,
	priority models.NotificationPriority,
	email bool,
	title, message string,
	role results.Role,
) []*models.Notification {
	meta, _ := json.Marshal(notificationMeta{
		MatchID:      m.ID,
		TournamentID: m.TournamentID,
		HomeScore:    m.HomeScore,
		AwayScore:    m.AwayScore,
		Role:         string(role),
	})
	out := make([]*models.Notification, 0, len(recipients))
	for _, userID := range recipients {
		out = append(out, &models.Notification{
			UserID:    userID,
			Type:      typ,
			Title:     title,
			Message:   message,
			Metadata:  meta,
			Priority:  priority,
			SendEmail: email,
		})
	}
	return out
}

func (mc *matchContext) resultNotifications(m *models.Match) []*models.Notification {
	return mc.build(m, mc.stakeholders(), models.NotificationMatchResult, models.PriorityNormal, false,
		"Match result",
		fmt.Sprintf("Final score: %s (%s). Please confirm the result.", mc.scoreLine(m), mc.tournament.Name),
		"")
}

func (mc *matchContext) scoreUpdatedNotifications(m *models.Match, confirmationReset bool) []*models.Notification {
	msg := fmt.Sprintf("Score updated: %s (%s).", mc.scoreLine(m), mc.tournament.Name)
	if confirmationReset {
		msg += " Previous confirmations were reset."
	}
	return mc.build(m, mc.stakeholders(), models.NotificationScoreUpdated, models.PriorityNormal, false,
		"Score updated", msg, "")
}

// confirmationNotifications сообщает сторонам, ещё не подтвердившим результат.
func (mc *matchContext) confirmationNotifications(m *models.Match, role results.Role, actorID int) []*models.Notification {
	var pending []int
	if !m.HomeConfirmed {
		pending = append(pending, mc.home.LeaderID)
	}
	if !m.AwayConfirmed {
		pending = append(pending, mc.away.LeaderID)
	}
	if !m.RefereeConfirmed && m.RefereeID != nil {
		pending = append(pending, *m.RefereeID)
	}
	recipients := make([]int, 0, len(pending))
	for _, id := range uniqueIDs(pending...) {
		if id != actorID {
			recipients = append(recipients, id)
		}
	}
	return mc.build(m, recipients, models.NotificationMatchConfirmed, models.PriorityNormal, false,
		"Result confirmation",
		fmt.Sprintf("The %s side confirmed the result %s. Your confirmation is pending.", role, mc.scoreLine(m)),
		role)
}

func (mc *matchContext) finalizedNotifications(m *models.Match) []*models.Notification {
	return mc.build(m, mc.stakeholders(), models.NotificationResultFinalized, models.PriorityHigh, true,
		"Result finalized",
		fmt.Sprintf("The result %s (%s) has been confirmed by all parties.", mc.scoreLine(m), mc.tournament.Name),
		"")
}

func (mc *matchContext) resetNotifications(m *models.Match) []*models.Notification {
	return mc.build(m, mc.stakeholders(), models.NotificationConfirmationDrop, models.PriorityNormal, false,
		"Confirmation reset",
		fmt.Sprintf("Confirmations of %s were reset. Please review and confirm again.", mc.scoreLine(m)),
		"")
}
