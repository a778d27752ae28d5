package brackets

import (
	"context"
	"errors"
	"testing"
)

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

func TestRoundRobinEveryPairOncePerLeg(t *testing.T) {
	for _, teams := range [][]int{{1, 2}, {1, 2, 3}, {4, 8, 15, 16}, {1, 2, 3, 4, 5, 6, 7}} {
		g := NewRoundRobinGenerator()
		matches, err := g.GenerateBracket(context.Background(), GenerateBracketParams{TeamIDs: teams, Legs: 1})
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", teams, err)
		}

		want := len(teams) * (len(teams) - 1) / 2
		if len(matches) != want {
			t.Fatalf("teams %v: expected %d matches, got %d", teams, want, len(matches))
		}

		pairs := make(map[[2]int]int)
		perRound := make(map[int]map[int]bool)
		for _, m := range matches {
			if m.HomeTeamID == m.AwayTeamID {
				t.Fatalf("team %d plays itself", m.HomeTeamID)
			}
			pairs[pairKey(m.HomeTeamID, m.AwayTeamID)]++
			if perRound[m.Round] == nil {
				perRound[m.Round] = make(map[int]bool)
			}
			for _, id := range []int{m.HomeTeamID, m.AwayTeamID} {
				if perRound[m.Round][id] {
					t.Fatalf("team %d plays twice in round %d", id, m.Round)
				}
				perRound[m.Round][id] = true
			}
		}
		for pair, n := range pairs {
			if n != 1 {
				t.Fatalf("pair %v scheduled %d times", pair, n)
			}
		}
	}
}

func TestRoundRobinDoubleLegSwapsVenues(t *testing.T) {
	teams := []int{1, 2, 3, 4}
	matches, err := NewRoundRobinGenerator().GenerateBracket(context.Background(), GenerateBracketParams{TeamIDs: teams, Legs: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 12 {
		t.Fatalf("expected 12 matches, got %d", len(matches))
	}

	fixtures := make(map[[2]int]bool)
	for _, m := range matches {
		key := [2]int{m.HomeTeamID, m.AwayTeamID}
		if fixtures[key] {
			t.Fatalf("fixture %v repeated with same venue", key)
		}
		fixtures[key] = true
	}
	for _, m := range matches {
		if !fixtures[[2]int{m.AwayTeamID, m.HomeTeamID}] {
			t.Fatalf("reverse fixture of %d vs %d missing", m.HomeTeamID, m.AwayTeamID)
		}
	}
	if last := matches[len(matches)-1].Round; last != 6 {
		t.Fatalf("expected 6 rounds, got %d", last)
	}
}

func TestRoundRobinRejectsBadInput(t *testing.T) {
	tests := []struct {
		name   string
		params GenerateBracketParams
		want   error
	}{
		{"one team", GenerateBracketParams{TeamIDs: []int{1}}, ErrNotEnoughTeams},
		{"duplicate", GenerateBracketParams{TeamIDs: []int{1, 2, 1}}, ErrDuplicateTeam},
		{"three legs", GenerateBracketParams{TeamIDs: []int{1, 2}, Legs: 3}, ErrInvalidLegs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRoundRobinGenerator().GenerateBracket(context.Background(), tt.params)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
