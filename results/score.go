package results

import (
	"errors"

	"github.com/Dosada05/matchday/models"
)

var (
	ErrScoreBeforeStart = errors.New("cannot set a score before the match has started")
	ErrMatchCancelled   = errors.New("match is cancelled")
	ErrNegativeScore    = errors.New("scores cannot be negative")
	ErrResultConfirmed  = errors.New("match result is confirmed; reset the confirmation first")
)

// ScoreUpdate carries the score fields a caller wants to set. Nil fields are
// left untouched.
type ScoreUpdate struct {
	HomeScore         *int  `json:"home_score"`
	AwayScore         *int  `json:"away_score"`
	HalfTimeHomeScore *int  `json:"half_time_home_score"`
	HalfTimeAwayScore *int  `json:"half_time_away_score"`
	HomePenaltyScore  *int  `json:"home_penalty_score"`
	AwayPenaltyScore  *int  `json:"away_penalty_score"`
	HasPenalties      *bool `json:"has_penalties"`
}

func (u ScoreUpdate) Empty() bool {
	return u.HomeScore == nil && u.AwayScore == nil &&
		u.HalfTimeHomeScore == nil && u.HalfTimeAwayScore == nil &&
		u.HomePenaltyScore == nil && u.AwayPenaltyScore == nil &&
		u.HasPenalties == nil
}

// ScoreChange describes what ApplyScore did.
type ScoreChange struct {
	// Changed is true when at least one supplied field differed from the stored value.
	Changed bool
	// ScoreChanged is true when the main home or away score changed.
	ScoreChanged bool
	// ConfirmationReset is true when confirmation flags were cleared.
	ConfirmationReset bool
}

// ApplyScore compares the update with the stored match and writes the
// differing fields. Any difference clears all confirmations; resubmitting
// the stored values leaves the match untouched.
func ApplyScore(m *models.Match, u ScoreUpdate) (ScoreChange, error) {
	var change ScoreChange
	switch m.Status {
	case models.MatchScheduled:
		return change, ErrScoreBeforeStart
	case models.MatchCancelled:
		return change, ErrMatchCancelled
	}
	for _, v := range []*int{u.HomeScore, u.AwayScore, u.HalfTimeHomeScore, u.HalfTimeAwayScore, u.HomePenaltyScore, u.AwayPenaltyScore} {
		if v != nil && *v < 0 {
			return change, ErrNegativeScore
		}
	}

	if setInt(&m.HomeScore, u.HomeScore) {
		change.ScoreChanged = true
	}
	if setInt(&m.AwayScore, u.AwayScore) {
		change.ScoreChanged = true
	}
	change.Changed = change.ScoreChanged
	if setInt(&m.HalfTimeHomeScore, u.HalfTimeHomeScore) {
		change.Changed = true
	}
	if setInt(&m.HalfTimeAwayScore, u.HalfTimeAwayScore) {
		change.Changed = true
	}
	if setInt(&m.HomePenaltyScore, u.HomePenaltyScore) {
		change.Changed = true
	}
	if setInt(&m.AwayPenaltyScore, u.AwayPenaltyScore) {
		change.Changed = true
	}
	if u.HasPenalties != nil && *u.HasPenalties != m.HasPenalties {
		m.HasPenalties = *u.HasPenalties
		change.Changed = true
	}

	if change.Changed {
		change.ConfirmationReset = ResetConfirmation(m)
	}
	return change, nil
}

// setInt writes v into *dst when it differs and reports whether it did.
func setInt(dst **int, v *int) bool {
	if v == nil {
		return false
	}
	if *dst != nil && **dst == *v {
		return false
	}
	*dst = intPtr(*v)
	return true
}

func intPtr(v int) *int {
	return &v
}
