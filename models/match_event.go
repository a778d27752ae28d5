package models

import "time"

type MatchEventType string

const (
	EventGoal            MatchEventType = "goal"
	EventOwnGoal         MatchEventType = "own_goal"
	EventPenaltyGoal     MatchEventType = "penalty_goal"
	EventPenaltyMissed   MatchEventType = "penalty_missed"
	EventYellowCard      MatchEventType = "yellow_card"
	EventRedCard         MatchEventType = "red_card"
	EventSecondYellow    MatchEventType = "second_yellow"
	EventSubstitutionIn  MatchEventType = "substitution_in"
	EventSubstitutionOut MatchEventType = "substitution_out"
	EventInjury          MatchEventType = "injury"
)

var MatchEventTypes = []MatchEventType{
	EventGoal, EventOwnGoal, EventPenaltyGoal, EventPenaltyMissed,
	EventYellowCard, EventRedCard, EventSecondYellow,
	EventSubstitutionIn, EventSubstitutionOut, EventInjury,
}

func (t MatchEventType) Valid() bool {
	for _, et := range MatchEventTypes {
		if t == et {
			return true
		}
	}
	return false
}

func (t MatchEventType) IsSubstitution() bool {
	return t == EventSubstitutionIn || t == EventSubstitutionOut
}

type MatchEvent struct {
	ID                int            `json:"id" db:"id"`
	MatchID           int            `json:"match_id" db:"match_id"`
	EventType         MatchEventType `json:"event_type" db:"event_type"`
	PlayerID          *int           `json:"player_id,omitempty" db:"player_id"`
	SecondaryPlayerID *int           `json:"secondary_player_id,omitempty" db:"secondary_player_id"`
	TeamID            int            `json:"team_id" db:"team_id"`
	Minute            int            `json:"minute" db:"minute"`
	StoppageMinute    *int           `json:"stoppage_minute,omitempty" db:"stoppage_minute"`
	Period            int            `json:"period" db:"period"`
	Description       *string        `json:"description,omitempty" db:"description"`
	CoordX            *float64       `json:"coord_x,omitempty" db:"coord_x"`
	CoordY            *float64       `json:"coord_y,omitempty" db:"coord_y"`
	CreatedBy         int            `json:"created_by" db:"created_by"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time     `json:"-" db:"deleted_at"`

	VideoKey *string `json:"-" db:"video_key"`
	VideoURL *string `json:"video_url,omitempty" db:"-"`
}
