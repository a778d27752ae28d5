package models

import "time"

type MatchStatus string

const (
	MatchScheduled  MatchStatus = "scheduled"
	MatchInProgress MatchStatus = "in_progress"
	MatchCompleted  MatchStatus = "completed"
	MatchCancelled  MatchStatus = "cancelled"
	MatchPostponed  MatchStatus = "postponed"
)

var MatchStatuses = []MatchStatus{MatchScheduled, MatchInProgress, MatchCompleted, MatchCancelled, MatchPostponed}

func (s MatchStatus) Valid() bool {
	for _, st := range MatchStatuses {
		if s == st {
			return true
		}
	}
	return false
}

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	HomeTeamID   int         `json:"home_team_id" db:"home_team_id"`
	AwayTeamID   int         `json:"away_team_id" db:"away_team_id"`
	RefereeID    *int        `json:"referee_id,omitempty" db:"referee_id"`
	ScheduledAt  time.Time   `json:"scheduled_at" db:"scheduled_at"`
	Venue        *string     `json:"venue,omitempty" db:"venue"`
	Status       MatchStatus `json:"status" db:"status"`

	HomeScore         *int `json:"home_score" db:"home_score"`
	AwayScore         *int `json:"away_score" db:"away_score"`
	HalfTimeHomeScore *int `json:"half_time_home_score" db:"half_time_home_score"`
	HalfTimeAwayScore *int `json:"half_time_away_score" db:"half_time_away_score"`
	HomePenaltyScore  *int `json:"home_penalty_score" db:"home_penalty_score"`
	AwayPenaltyScore  *int `json:"away_penalty_score" db:"away_penalty_score"`
	HasPenalties      bool `json:"has_penalties" db:"has_penalties"`

	HomeConfirmed      bool       `json:"home_confirmed" db:"home_confirmed"`
	HomeConfirmedAt    *time.Time `json:"home_confirmed_at,omitempty" db:"home_confirmed_at"`
	AwayConfirmed      bool       `json:"away_confirmed" db:"away_confirmed"`
	AwayConfirmedAt    *time.Time `json:"away_confirmed_at,omitempty" db:"away_confirmed_at"`
	RefereeConfirmed   bool       `json:"referee_confirmed" db:"referee_confirmed"`
	RefereeConfirmedAt *time.Time `json:"referee_confirmed_at,omitempty" db:"referee_confirmed_at"`
	IsResultConfirmed  bool       `json:"is_result_confirmed" db:"is_result_confirmed"`
	ResultConfirmedAt  *time.Time `json:"result_confirmed_at,omitempty" db:"result_confirmed_at"`

	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"-" db:"deleted_at"`

	HomeTeam   *Team       `json:"home_team,omitempty" db:"-"`
	AwayTeam   *Team       `json:"away_team,omitempty" db:"-"`
	Tournament *Tournament `json:"tournament,omitempty" db:"-"`
}

// HasTeam сообщает, участвует ли команда в матче.
func (m *Match) HasTeam(teamID int) bool {
	return teamID == m.HomeTeamID || teamID == m.AwayTeamID
}

// Opponent возвращает соперника команды teamID. Для чужой команды - 0.
func (m *Match) Opponent(teamID int) int {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	}
	return 0
}
