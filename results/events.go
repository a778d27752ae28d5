package results

import (
	"errors"

	"github.com/Dosada05/matchday/models"
)

var (
	ErrEventsBeforeStart   = errors.New("cannot record events before the match has started")
	ErrEventTeamNotInMatch = errors.New("team is not playing in this match")
	ErrSubstitutionTeam    = errors.New("both substitution players must belong to the event team")
	ErrInvalidEventType    = errors.New("invalid match event type")
)

// CanAddEvent checks whether a new event may be recorded for the match.
func CanAddEvent(m *models.Match) error {
	switch {
	case m.Status == models.MatchScheduled:
		return ErrEventsBeforeStart
	case m.Status == models.MatchCancelled:
		return ErrMatchCancelled
	case m.IsResultConfirmed:
		return ErrResultConfirmed
	}
	return nil
}

// CanEditEvent checks whether existing events of the match may change.
func CanEditEvent(m *models.Match) error {
	switch {
	case m.Status == models.MatchCancelled:
		return ErrMatchCancelled
	case m.IsResultConfirmed:
		return ErrResultConfirmed
	}
	return nil
}

// CreditedTeam returns the team whose score an event of this type counts
// for, or 0 when the event does not score. Own goals count for the opponent.
func CreditedTeam(m *models.Match, eventType models.MatchEventType, teamID int) int {
	switch eventType {
	case models.EventGoal, models.EventPenaltyGoal:
		return teamID
	case models.EventOwnGoal:
		return m.Opponent(teamID)
	}
	return 0
}

// AdjustScore moves one goal from the team credited before to the team
// credited after. Either side may be 0 (no scoring). Scores never drop below
// zero. A changed score clears the confirmation flags.
func AdjustScore(m *models.Match, before, after int) bool {
	if before == after {
		return false
	}
	changed := false
	if slot := scoreSlot(m, before); slot != nil && *slot != nil && **slot > 0 {
		*slot = intPtr(**slot - 1)
		changed = true
	}
	if slot := scoreSlot(m, after); slot != nil {
		current := 0
		if *slot != nil {
			current = **slot
		}
		*slot = intPtr(current + 1)
		changed = true
	}
	if changed {
		ResetConfirmation(m)
	}
	return changed
}

// scoreSlot returns the score field of a team, nil for teams outside the match.
func scoreSlot(m *models.Match, teamID int) **int {
	switch {
	case teamID == 0:
		return nil
	case teamID == m.HomeTeamID:
		return &m.HomeScore
	case teamID == m.AwayTeamID:
		return &m.AwayScore
	}
	return nil
}
