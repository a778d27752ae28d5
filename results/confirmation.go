package results

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/matchday/models"
)

var (
	ErrInvalidRole  = errors.New("invalid confirmation role")
	ErrNotCompleted = errors.New("can only confirm completed matches")
)

// Role is the capacity in which a caller confirms a result.
type Role string

const (
	RoleHome      Role = "home"
	RoleAway      Role = "away"
	RoleReferee   Role = "referee"
	RoleOrganizer Role = "organizer"
)

var Roles = []Role{RoleHome, RoleAway, RoleReferee, RoleOrganizer}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	valid := make([]string, len(Roles))
	for i, known := range Roles {
		valid[i] = string(known)
	}
	return "", fmt.Errorf("%w %q: valid roles are %s", ErrInvalidRole, s, strings.Join(valid, ", "))
}

// Party is one of the three mandatory confirming sides.
type Party uint8

const (
	PartyHome Party = 1 << iota
	PartyAway
	PartyReferee
)

// PartySet is a set of parties that have confirmed the result.
type PartySet uint8

const AllParties = PartySet(PartyHome | PartyAway | PartyReferee)

func (s PartySet) Has(p Party) bool { return s&PartySet(p) != 0 }

func (s PartySet) With(p Party) PartySet { return s | PartySet(p) }

// Complete reports whether home, away and referee have all confirmed.
func (s PartySet) Complete() bool { return s&AllParties == AllParties }

// Parties returns the parties a role confirms for. Organizer confirms all three.
func (r Role) Parties() PartySet {
	switch r {
	case RoleHome:
		return PartySet(PartyHome)
	case RoleAway:
		return PartySet(PartyAway)
	case RoleReferee:
		return PartySet(PartyReferee)
	case RoleOrganizer:
		return AllParties
	}
	return 0
}

// ConfirmedBy reads the confirmation flags of a match as a set.
func ConfirmedBy(m *models.Match) PartySet {
	var s PartySet
	if m.HomeConfirmed {
		s = s.With(PartyHome)
	}
	if m.AwayConfirmed {
		s = s.With(PartyAway)
	}
	if m.RefereeConfirmed {
		s = s.With(PartyReferee)
	}
	return s
}

// Confirm records the role's confirmation. Already confirmed parties keep
// their original timestamps. finalized is true only when this call moved the
// match into the fully confirmed state.
func Confirm(m *models.Match, role Role, now time.Time) (finalized bool, err error) {
	parties := role.Parties()
	if parties == 0 {
		_, err := ParseRole(string(role))
		return false, err
	}
	if m.Status != models.MatchCompleted {
		return false, ErrNotCompleted
	}

	if parties.Has(PartyHome) && !m.HomeConfirmed {
		m.HomeConfirmed = true
		m.HomeConfirmedAt = timePtr(now)
	}
	if parties.Has(PartyAway) && !m.AwayConfirmed {
		m.AwayConfirmed = true
		m.AwayConfirmedAt = timePtr(now)
	}
	if parties.Has(PartyReferee) && !m.RefereeConfirmed {
		m.RefereeConfirmed = true
		m.RefereeConfirmedAt = timePtr(now)
	}

	if ConfirmedBy(m).Complete() && !m.IsResultConfirmed {
		m.IsResultConfirmed = true
		m.ResultConfirmedAt = timePtr(now)
		return true, nil
	}
	return false, nil
}

// ResetConfirmation clears every confirmation flag and the aggregate.
// It reports whether anything was set before.
func ResetConfirmation(m *models.Match) bool {
	had := ConfirmedBy(m) != 0 || m.IsResultConfirmed
	m.HomeConfirmed, m.HomeConfirmedAt = false, nil
	m.AwayConfirmed, m.AwayConfirmedAt = false, nil
	m.RefereeConfirmed, m.RefereeConfirmedAt = false, nil
	m.IsResultConfirmed, m.ResultConfirmedAt = false, nil
	return had
}

func timePtr(t time.Time) *time.Time {
	return &t
}
