package brackets

import (
	"context"
	"fmt"
	"sort"
)

type RoundRobinGenerator struct{}

func NewRoundRobinGenerator() BracketGenerator {
	return &RoundRobinGenerator{}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// bye занимает слот при нечётном числе команд; пара с ним не порождает матч.
const bye = 0

// GenerateBracket builds a round-robin schedule with the circle method: every
// team meets every other team once per leg and plays at most once per round.
// The second leg repeats the first with home and away swapped.
func (g *RoundRobinGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	legs := params.Legs
	if legs == 0 {
		legs = 1
	}
	if legs != 1 && legs != 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidLegs, params.Legs)
	}
	if len(params.TeamIDs) < 2 {
		return nil, fmt.Errorf("%w: found %d", ErrNotEnoughTeams, len(params.TeamIDs))
	}

	seen := make(map[int]bool, len(params.TeamIDs))
	slots := make([]int, 0, len(params.TeamIDs)+1)
	for _, id := range params.TeamIDs {
		if id <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidTeamID, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTeam, id)
		}
		seen[id] = true
		slots = append(slots, id)
	}
	if len(slots)%2 == 1 {
		slots = append(slots, bye)
	}

	n := len(slots)
	roundsPerLeg := n - 1
	matches := make([]*BracketMatch, 0, legs*n*(n-1)/2)

	for round := 0; round < roundsPerLeg; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		order := 0
		for i := 0; i < n/2; i++ {
			home, away := slots[i], slots[n-1-i]
			if home == bye || away == bye {
				continue
			}
			// Фиксированная команда чередует дом и выезд по турам.
			if i == 0 && round%2 == 1 {
				home, away = away, home
			}
			order++
			matches = append(matches, &BracketMatch{
				Round:        round + 1,
				OrderInRound: order,
				HomeTeamID:   home,
				AwayTeamID:   away,
			})
		}
		rotate(slots)
	}

	if legs == 2 {
		firstLeg := len(matches)
		for i := 0; i < firstLeg; i++ {
			m := matches[i]
			matches = append(matches, &BracketMatch{
				Round:        m.Round + roundsPerLeg,
				OrderInRound: m.OrderInRound,
				HomeTeamID:   m.AwayTeamID,
				AwayTeamID:   m.HomeTeamID,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Round != matches[j].Round {
			return matches[i].Round < matches[j].Round
		}
		return matches[i].OrderInRound < matches[j].OrderInRound
	})

	return matches, nil
}

// rotate сдвигает все слоты, кроме первого, на одну позицию по часовой стрелке.
func rotate(slots []int) {
	if len(slots) < 3 {
		return
	}
	last := slots[len(slots)-1]
	copy(slots[2:], slots[1:len(slots)-1])
	slots[1] = last
}
