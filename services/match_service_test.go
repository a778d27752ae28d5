package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/results"
)

const (
	adminID     = 1
	organizerID = 2
	refereeID   = 3
	homeLeader  = 4
	awayLeader  = 5
	otherRef    = 6

	homeTeamID   = 10
	awayTeamID   = 20
	tournamentID = 100
)

var (
	adminActor     = Actor{UserID: adminID, Roles: []models.UserRole{models.RoleAdmin}}
	organizerActor = Actor{UserID: organizerID, Roles: []models.UserRole{models.RoleOrganizer}}
	refereeActor   = Actor{UserID: refereeID, Roles: []models.UserRole{models.RoleReferee}}
	homeActor      = Actor{UserID: homeLeader, Roles: []models.UserRole{models.RolePlayer}, TeamIDs: []int{homeTeamID}}
	awayActor      = Actor{UserID: awayLeader, Roles: []models.UserRole{models.RolePlayer}, TeamIDs: []int{awayTeamID}}
	otherRefActor  = Actor{UserID: otherRef, Roles: []models.UserRole{models.RoleReferee}}
)

type matchFixture struct {
	matches     *fakeMatchRepo
	events      *fakeEventRepo
	players     *fakePlayerRepo
	sender      *recordingSender
	hub         *recordingHub
	tx          *fakeTx
	service     MatchService
	eventSvc    MatchEventService
	uploader    *fakeUploader
	teams       *fakeTeamRepo
	tournaments *fakeTournamentRepo
}

func newMatchFixture(ms ...models.Match) *matchFixture {
	f := &matchFixture{
		matches: newFakeMatchRepo(ms...),
		events:  newFakeEventRepo(),
		players: newFakePlayerRepo(
			models.Player{ID: 101, TeamID: homeTeamID, FirstName: "Home", LastName: "One"},
			models.Player{ID: 102, TeamID: homeTeamID, FirstName: "Home", LastName: "Two"},
			models.Player{ID: 201, TeamID: awayTeamID, FirstName: "Away", LastName: "One"},
		),
		sender:   &recordingSender{},
		hub:      newRecordingHub(),
		tx:       &fakeTx{},
		uploader: newFakeUploader(),
		teams: newFakeTeamRepo(
			models.Team{ID: homeTeamID, Name: "Lions", LeaderID: homeLeader},
			models.Team{ID: awayTeamID, Name: "Tigers", LeaderID: awayLeader},
		),
		tournaments: newFakeTournamentRepo(models.Tournament{
			ID: tournamentID, Name: "Spring Cup", OrganizerID: organizerID, Status: models.TournamentActive,
		}),
	}
	f.service = NewMatchService(MatchServiceDeps{
		Tx:             f.tx,
		MatchRepo:      f.matches,
		EventRepo:      f.events,
		TeamRepo:       f.teams,
		TournamentRepo: f.tournaments,
		Notifier:       f.sender,
		Hub:            f.hub,
		Logger:         discardLogger(),
	})
	f.eventSvc = NewMatchEventService(MatchEventServiceDeps{
		Tx:             f.tx,
		EventRepo:      f.events,
		MatchRepo:      f.matches,
		PlayerRepo:     f.players,
		TeamRepo:       f.teams,
		TournamentRepo: f.tournaments,
		Uploader:       f.uploader,
		Notifier:       f.sender,
		Hub:            f.hub,
		Logger:         discardLogger(),
	})
	return f
}

func testMatch(status models.MatchStatus, home, away *int) models.Match {
	return models.Match{
		ID:           1,
		TournamentID: tournamentID,
		HomeTeamID:   homeTeamID,
		AwayTeamID:   awayTeamID,
		RefereeID:    intPtr(refereeID),
		ScheduledAt:  time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC),
		Status:       status,
		HomeScore:    home,
		AwayScore:    away,
	}
}

func TestConfirmResult_ThreePartyScenario(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchCompleted, intPtr(2), intPtr(1)))
	ctx := context.Background()

	m, err := f.service.ConfirmResult(ctx, homeActor, 1, "home")
	if err != nil {
		t.Fatalf("home confirm: unexpected error: %v", err)
	}
	if !m.HomeConfirmed || m.IsResultConfirmed {
		t.Fatalf("expected only home confirmed, got %+v", m)
	}
	pending := f.sender.ofType(models.NotificationMatchConfirmed)
	if got := recipients(pending); !reflect.DeepEqual(got, []int{refereeID, awayLeader}) {
		t.Fatalf("expected pending parties [3 5] notified, got %v", got)
	}

	if _, err := f.service.ConfirmResult(ctx, awayActor, 1, "away"); err != nil {
		t.Fatalf("away confirm: unexpected error: %v", err)
	}
	if finalized := f.sender.ofType(models.NotificationResultFinalized); len(finalized) != 0 {
		t.Fatalf("expected no finalized notification yet, got %d", len(finalized))
	}

	m, err = f.service.ConfirmResult(ctx, refereeActor, 1, "referee")
	if err != nil {
		t.Fatalf("referee confirm: unexpected error: %v", err)
	}
	if !m.IsResultConfirmed || m.ResultConfirmedAt == nil {
		t.Fatalf("expected result confirmed after referee, got %+v", m)
	}
	if stored := f.matches.stored(1); !stored.IsResultConfirmed {
		t.Fatal("expected confirmed state to be persisted")
	}

	finalized := f.sender.ofType(models.NotificationResultFinalized)
	if got := recipients(finalized); !reflect.DeepEqual(got, []int{organizerID, homeLeader, awayLeader}) {
		t.Fatalf("expected finalized notification for leaders and organizer, got %v", got)
	}
	for _, n := range finalized {
		if n.Priority != models.PriorityHigh || !n.SendEmail {
			t.Fatalf("expected high priority email notification, got %+v", n)
		}
		if !strings.Contains(n.Message, "Lions 2:1 Tigers") {
			t.Fatalf("expected score line in message, got %q", n.Message)
		}
	}
	if got := f.hub.count(live.MatchRoom(1), live.MessageMatchUpdated); got != 3 {
		t.Fatalf("expected 3 live updates, got %d", got)
	}
}

func TestConfirmResult_Idempotent(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchCompleted, intPtr(1), intPtr(0)))
	ctx := context.Background()

	first, err := f.service.ConfirmResult(ctx, homeActor, 1, "home")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	updates, sent := f.matches.updates, len(f.sender.sent)

	second, err := f.service.ConfirmResult(ctx, homeActor, 1, "HOME")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.matches.updates != updates {
		t.Fatalf("expected no write on repeated confirmation, got %d writes", f.matches.updates-updates)
	}
	if len(f.sender.sent) != sent {
		t.Fatal("expected no notifications on repeated confirmation")
	}
	if !second.HomeConfirmedAt.Equal(*first.HomeConfirmedAt) {
		t.Fatalf("expected original timestamp kept, got %v and %v", first.HomeConfirmedAt, second.HomeConfirmedAt)
	}
}

func TestConfirmResult_OrganizerFinalizesAtOnce(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchCompleted, intPtr(0), intPtr(0)))

	m, err := f.service.ConfirmResult(context.Background(), organizerActor, 1, "organizer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.HomeConfirmed || !m.AwayConfirmed || !m.RefereeConfirmed || !m.IsResultConfirmed {
		t.Fatalf("expected organizer to confirm all parties, got %+v", m)
	}
	if got := len(f.sender.ofType(models.NotificationResultFinalized)); got != 3 {
		t.Fatalf("expected 3 finalized notifications, got %d", got)
	}
}

func TestConfirmResult_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status models.MatchStatus
		actor  Actor
		id     int
		role   string
		class  error
		text   string
	}{
		{"invalid role", models.MatchCompleted, homeActor, 1, "captain", ErrInvalidArgument, "home, away, referee, organizer"},
		{"not completed", models.MatchInProgress, homeActor, 1, "home", ErrInvalidOperation, "can only confirm completed matches"},
		{"wrong team leader", models.MatchCompleted, awayActor, 1, "home", ErrForbidden, ""},
		{"leader as referee", models.MatchCompleted, homeActor, 1, "referee", ErrForbidden, ""},
		{"referee as organizer", models.MatchCompleted, refereeActor, 1, "organizer", ErrForbidden, ""},
		{"unknown match", models.MatchCompleted, homeActor, 42, "home", ErrNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(testMatch(tt.status, intPtr(1), intPtr(1)))
			_, err := f.service.ConfirmResult(context.Background(), tt.actor, tt.id, tt.role)
			if !errors.Is(err, tt.class) {
				t.Fatalf("expected %v, got %v", tt.class, err)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Fatalf("expected message to contain %q, got %q", tt.text, err.Error())
			}
			if f.matches.updates != 0 {
				t.Fatalf("expected no writes, got %d", f.matches.updates)
			}
		})
	}
}

func TestConfirmResult_AdminMayConfirmAnyRole(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchCompleted, intPtr(1), intPtr(1)))
	for _, role := range []string{"home", "away", "referee"} {
		if _, err := f.service.ConfirmResult(context.Background(), adminActor, 1, role); err != nil {
			t.Fatalf("admin confirm %s: unexpected error: %v", role, err)
		}
	}
	if !f.matches.stored(1).IsResultConfirmed {
		t.Fatal("expected admin confirmations to finalize the result")
	}
}

func confirmedMatch() models.Match {
	m := testMatch(models.MatchCompleted, intPtr(2), intPtr(1))
	now := time.Now()
	m.HomeConfirmed, m.HomeConfirmedAt = true, &now
	m.AwayConfirmed, m.AwayConfirmedAt = true, &now
	m.RefereeConfirmed, m.RefereeConfirmedAt = true, &now
	m.IsResultConfirmed, m.ResultConfirmedAt = true, &now
	return m
}

func TestUpdateScore_OrganizerChangesConfirmedResult(t *testing.T) {
	f := newMatchFixture(confirmedMatch())

	m, err := f.service.UpdateScore(context.Background(), organizerActor, 1, results.ScoreUpdate{HomeScore: intPtr(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.HomeConfirmed || m.AwayConfirmed || m.RefereeConfirmed || m.IsResultConfirmed {
		t.Fatalf("expected all confirmations reset, got %+v", m)
	}
	stored := f.matches.stored(1)
	if *stored.HomeScore != 3 || stored.IsResultConfirmed {
		t.Fatalf("expected stored 3:1 unconfirmed, got %d confirmed=%v", *stored.HomeScore, stored.IsResultConfirmed)
	}
	updated := f.sender.ofType(models.NotificationScoreUpdated)
	if got := recipients(updated); !reflect.DeepEqual(got, []int{organizerID, homeLeader, awayLeader}) {
		t.Fatalf("expected score notifications for leaders and organizer, got %v", got)
	}
	if !strings.Contains(updated[0].Message, "reset") {
		t.Fatalf("expected reset mentioned, got %q", updated[0].Message)
	}

	// Результат снова можно подтверждать.
	if _, err := f.service.ConfirmResult(context.Background(), homeActor, 1, "home"); err != nil {
		t.Fatalf("expected confirmation to be accepted again, got %v", err)
	}
}

func TestUpdateScore_RefereeCannotChangeConfirmedResult(t *testing.T) {
	f := newMatchFixture(confirmedMatch())

	_, err := f.service.UpdateScore(context.Background(), refereeActor, 1, results.ScoreUpdate{HomeScore: intPtr(3)})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if stored := f.matches.stored(1); !stored.IsResultConfirmed || *stored.HomeScore != 2 {
		t.Fatalf("expected stored match untouched, got %+v", stored)
	}
}

func TestUpdateScore_IdenticalResubmissionKeepsConfirmations(t *testing.T) {
	f := newMatchFixture(confirmedMatch())

	m, err := f.service.UpdateScore(context.Background(), refereeActor, 1, results.ScoreUpdate{HomeScore: intPtr(2), AwayScore: intPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsResultConfirmed || !m.HomeConfirmed {
		t.Fatalf("expected confirmations kept, got %+v", m)
	}
	if f.matches.updates != 0 || len(f.sender.sent) != 0 {
		t.Fatalf("expected no write and no notification, got %d writes %d notifications", f.matches.updates, len(f.sender.sent))
	}
}

func TestUpdateScore_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status models.MatchStatus
		actor  Actor
		input  results.ScoreUpdate
		class  error
	}{
		{"scheduled match", models.MatchScheduled, refereeActor, results.ScoreUpdate{HomeScore: intPtr(1)}, ErrInvalidOperation},
		{"cancelled match", models.MatchCancelled, refereeActor, results.ScoreUpdate{HomeScore: intPtr(1)}, ErrInvalidOperation},
		{"negative score", models.MatchInProgress, refereeActor, results.ScoreUpdate{AwayScore: intPtr(-1)}, ErrInvalidArgument},
		{"empty update", models.MatchInProgress, refereeActor, results.ScoreUpdate{}, ErrInvalidArgument},
		{"not assigned referee", models.MatchInProgress, otherRefActor, results.ScoreUpdate{HomeScore: intPtr(1)}, ErrForbidden},
		{"team leader", models.MatchInProgress, homeActor, results.ScoreUpdate{HomeScore: intPtr(1)}, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var home, away *int
			if tt.status != models.MatchScheduled {
				home, away = intPtr(0), intPtr(0)
			}
			f := newMatchFixture(testMatch(tt.status, home, away))
			_, err := f.service.UpdateScore(context.Background(), tt.actor, 1, tt.input)
			if !errors.Is(err, tt.class) {
				t.Fatalf("expected %v, got %v", tt.class, err)
			}
		})
	}
}

func TestUpdateScore_HalfTimeChangeResetsWithoutScoreNotification(t *testing.T) {
	m := testMatch(models.MatchCompleted, intPtr(1), intPtr(0))
	m.HomeConfirmed = true
	f := newMatchFixture(m)

	got, err := f.service.UpdateScore(context.Background(), refereeActor, 1, results.ScoreUpdate{HalfTimeHomeScore: intPtr(1)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.HomeConfirmed {
		t.Fatal("expected home confirmation reset")
	}
	if len(f.sender.sent) != 0 {
		t.Fatalf("expected no notification for half-time change, got %d", len(f.sender.sent))
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Run("completion notifies stakeholders", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(2), intPtr(2)))
		m, err := f.service.UpdateStatus(context.Background(), refereeActor, 1, models.MatchCompleted)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Status != models.MatchCompleted || m.HomeTeam == nil || m.Tournament == nil {
			t.Fatalf("expected completed match with context, got %+v", m)
		}
		if got := recipients(f.sender.ofType(models.NotificationMatchResult)); !reflect.DeepEqual(got, []int{organizerID, homeLeader, awayLeader}) {
			t.Fatalf("expected result notification for leaders and organizer, got %v", got)
		}
	})

	t.Run("start fills scores", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchScheduled, nil, nil))
		m, err := f.service.UpdateStatus(context.Background(), refereeActor, 1, models.MatchInProgress)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.HomeScore == nil || *m.HomeScore != 0 || m.AwayScore == nil || *m.AwayScore != 0 {
			t.Fatalf("expected 0:0 after start, got %v:%v", m.HomeScore, m.AwayScore)
		}
		if len(f.sender.sent) != 0 {
			t.Fatal("expected no notification when the match starts")
		}
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchCompleted, intPtr(1), intPtr(0)))
		if _, err := f.service.UpdateStatus(context.Background(), refereeActor, 1, models.MatchCompleted); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.matches.updates != 0 || len(f.sender.sent) != 0 {
			t.Fatal("expected no write and no notification")
		}
	})

	tests := []struct {
		name  string
		from  models.MatchStatus
		to    models.MatchStatus
		actor Actor
		class error
	}{
		{"completed is frozen", models.MatchCompleted, models.MatchInProgress, refereeActor, ErrInvalidOperation},
		{"cancelled only reopens", models.MatchCancelled, models.MatchInProgress, organizerActor, ErrInvalidOperation},
		{"unknown status", models.MatchScheduled, models.MatchStatus("finished"), refereeActor, ErrInvalidArgument},
		{"foreign referee", models.MatchScheduled, models.MatchInProgress, otherRefActor, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(testMatch(tt.from, intPtr(0), intPtr(0)))
			_, err := f.service.UpdateStatus(context.Background(), tt.actor, 1, tt.to)
			if !errors.Is(err, tt.class) {
				t.Fatalf("expected %v, got %v", tt.class, err)
			}
		})
	}

	t.Run("cancelled reopens as scheduled", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchCancelled, nil, nil))
		m, err := f.service.UpdateStatus(context.Background(), organizerActor, 1, models.MatchScheduled)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m.Status != models.MatchScheduled {
			t.Fatalf("expected scheduled, got %s", m.Status)
		}
	})
}

func TestResetConfirmation(t *testing.T) {
	f := newMatchFixture(confirmedMatch())

	if _, err := f.service.ResetConfirmation(context.Background(), homeActor, 1); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for team leader, got %v", err)
	}
	m, err := f.service.ResetConfirmation(context.Background(), organizerActor, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.IsResultConfirmed || m.HomeConfirmed {
		t.Fatalf("expected confirmations cleared, got %+v", m)
	}
	if got := len(f.sender.ofType(models.NotificationConfirmationDrop)); got != 3 {
		t.Fatalf("expected 3 reset notifications, got %d", got)
	}
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture()
	input := CreateMatchInput{
		TournamentID: tournamentID,
		HomeTeamID:   homeTeamID,
		AwayTeamID:   awayTeamID,
		ScheduledAt:  time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC),
	}

	if _, err := f.service.CreateMatch(context.Background(), refereeActor, input); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for referee, got %v", err)
	}
	m, err := f.service.CreateMatch(context.Background(), organizerActor, input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != models.MatchScheduled || m.HomeScore != nil {
		t.Fatalf("expected scheduled match without score, got %+v", m)
	}

	input.AwayTeamID = homeTeamID
	if _, err := f.service.CreateMatch(context.Background(), organizerActor, input); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for same teams, got %v", err)
	}
}

func TestDeleteMatch(t *testing.T) {
	t.Run("without events removes the row", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchScheduled, nil, nil))
		if err := f.service.DeleteMatch(context.Background(), organizerActor, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := f.matches.matches[1]; ok {
			t.Fatal("expected match row removed")
		}
	})

	t.Run("with events soft deletes", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
		if _, err := f.eventSvc.AddEvent(context.Background(), refereeActor, 1, MatchEventInput{
			EventType: models.EventYellowCard, TeamID: homeTeamID, PlayerID: intPtr(101), Minute: 12,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := f.service.DeleteMatch(context.Background(), organizerActor, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !f.matches.softDeleted[1] {
			t.Fatal("expected match soft deleted")
		}
		if _, err := f.service.GetMatch(context.Background(), 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected deleted match to be hidden, got %v", err)
		}
	})

	t.Run("referee cannot delete", func(t *testing.T) {
		f := newMatchFixture(testMatch(models.MatchScheduled, nil, nil))
		if err := f.service.DeleteMatch(context.Background(), refereeActor, 1); !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected forbidden, got %v", err)
		}
	})
}

func TestUpdateMatch_AssignsReferee(t *testing.T) {
	m := testMatch(models.MatchScheduled, nil, nil)
	m.RefereeID = nil
	f := newMatchFixture(m)

	got, err := f.service.UpdateMatch(context.Background(), organizerActor, 1, UpdateMatchInput{RefereeID: intPtr(otherRef)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.RefereeID == nil || *got.RefereeID != otherRef {
		t.Fatalf("expected referee %d, got %v", otherRef, got.RefereeID)
	}
	if _, err := f.service.UpdateStatus(context.Background(), refereeActor, 1, models.MatchInProgress); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected previously eligible referee to be forbidden, got %v", err)
	}
	if _, err := f.service.UpdateStatus(context.Background(), otherRefActor, 1, models.MatchInProgress); err != nil {
		t.Fatalf("expected assigned referee to manage the match, got %v", err)
	}
}
