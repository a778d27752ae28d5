package results

import (
	"errors"
	"fmt"

	"github.com/Dosada05/matchday/models"
)

var ErrInvalidTransition = errors.New("invalid match status transition")

// ValidateTransition checks a status change against the match lifecycle.
// A completed match is frozen; a cancelled match may only be reopened.
func ValidateTransition(current, next models.MatchStatus) error {
	if !next.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	switch current {
	case models.MatchCompleted:
		if next != models.MatchCompleted {
			return fmt.Errorf("%w: completed match cannot move to %q", ErrInvalidTransition, next)
		}
	case models.MatchCancelled:
		if next != models.MatchScheduled {
			return fmt.Errorf("%w: cancelled match can only be reopened as %q", ErrInvalidTransition, models.MatchScheduled)
		}
	}
	return nil
}

// ApplyStatus validates and applies the transition. It reports whether the
// match has just become completed.
func ApplyStatus(m *models.Match, next models.MatchStatus) (completedNow bool, err error) {
	if err := ValidateTransition(m.Status, next); err != nil {
		return false, err
	}
	prev := m.Status
	m.Status = next

	if next == models.MatchInProgress || next == models.MatchCompleted {
		if m.HomeScore == nil {
			m.HomeScore = intPtr(0)
		}
		if m.AwayScore == nil {
			m.AwayScore = intPtr(0)
		}
	}
	return next == models.MatchCompleted && prev != models.MatchCompleted, nil
}
