package brackets

import (
	"context"
	"errors"
)

var (
	ErrNotEnoughTeams = errors.New("not enough teams to generate fixtures (minimum 2)")
	ErrDuplicateTeam  = errors.New("team listed more than once")
	ErrInvalidLegs    = errors.New("legs must be 1 or 2")
	ErrInvalidTeamID  = errors.New("team id must be positive")
)

type GenerateBracketParams struct {
	TournamentID int
	TeamIDs      []int
	// Legs - 1 для однокругового турнира, 2 для двухкругового.
	Legs int
}

// BracketMatch - пара команд в конкретном туре, ещё не сохранённая в БД.
type BracketMatch struct {
	Round        int
	OrderInRound int
	HomeTeamID   int
	AwayTeamID   int
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
