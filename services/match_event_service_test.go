package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/results"
)

func score(m *models.Match) (int, int) {
	return derefInt(m.HomeScore), derefInt(m.AwayScore)
}

func TestAddEvent_GoalThenTeamChange(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	ctx := context.Background()

	added, err := f.eventSvc.AddEvent(ctx, refereeActor, 1, MatchEventInput{
		EventType: models.EventGoal, TeamID: homeTeamID, PlayerID: intPtr(101), Minute: 23,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h, a := score(added.Match); h != 1 || a != 0 {
		t.Fatalf("expected 1:0 after goal, got %d:%d", h, a)
	}
	if !added.ScoreChanged || added.Event.Period != 1 || added.Event.CreatedBy != refereeID {
		t.Fatalf("unexpected change %+v", added)
	}

	updated, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, added.Event.ID, MatchEventUpdate{TeamID: intPtr(awayTeamID)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h, a := score(updated.Match); h != 0 || a != 1 {
		t.Fatalf("expected 0:1 after team change, got %d:%d", h, a)
	}
	if h, a := score(ptrTo(f.matches.stored(1))); h != 0 || a != 1 {
		t.Fatalf("expected stored 0:1, got %d:%d", h, a)
	}
	if got := f.hub.count(live.MatchRoom(1), live.MessageEventChanged); got != 2 {
		t.Fatalf("expected 2 event broadcasts, got %d", got)
	}
	if got := len(f.sender.ofType(models.NotificationScoreUpdated)); got != 6 {
		t.Fatalf("expected score notifications for both changes, got %d", got)
	}
}

func ptrTo(m models.Match) *models.Match { return &m }

func TestEvents_GoalCountInvariant(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	ctx := context.Background()

	add := func(typ models.MatchEventType, team int) int {
		t.Helper()
		c, err := f.eventSvc.AddEvent(ctx, refereeActor, 1, MatchEventInput{EventType: typ, TeamID: team, Minute: 10})
		if err != nil {
			t.Fatalf("add %s: unexpected error: %v", typ, err)
		}
		return c.Event.ID
	}
	g1 := add(models.EventGoal, homeTeamID)
	g2 := add(models.EventPenaltyGoal, awayTeamID)
	og := add(models.EventOwnGoal, awayTeamID) // засчитывается хозяевам
	card := add(models.EventYellowCard, homeTeamID)

	steps := []struct {
		name string
		run  func() error
	}{
		{"card becomes goal", func() error {
			typ := models.EventGoal
			_, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, card, MatchEventUpdate{EventType: &typ})
			return err
		}},
		{"goal becomes miss", func() error {
			typ := models.EventPenaltyMissed
			_, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, g2, MatchEventUpdate{EventType: &typ})
			return err
		}},
		{"delete own goal", func() error {
			_, err := f.eventSvc.DeleteEvent(ctx, refereeActor, 1, og)
			return err
		}},
		{"move goal to away", func() error {
			_, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, g1, MatchEventUpdate{TeamID: intPtr(awayTeamID)})
			return err
		}},
		{"minute only", func() error {
			_, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, g1, MatchEventUpdate{Minute: intPtr(44)})
			return err
		}},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		events, err := f.eventSvc.ListEvents(ctx, 1)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", step.name, err)
		}
		m := f.matches.stored(1)
		var wantHome, wantAway int
		for _, e := range events {
			switch {
			case (e.EventType == models.EventGoal || e.EventType == models.EventPenaltyGoal) && e.TeamID == homeTeamID,
				e.EventType == models.EventOwnGoal && e.TeamID == awayTeamID:
				wantHome++
			case (e.EventType == models.EventGoal || e.EventType == models.EventPenaltyGoal) && e.TeamID == awayTeamID,
				e.EventType == models.EventOwnGoal && e.TeamID == homeTeamID:
				wantAway++
			}
		}
		if h, a := score(&m); h != wantHome || a != wantAway {
			t.Fatalf("%s: expected %d:%d from events, got %d:%d", step.name, wantHome, wantAway, h, a)
		}
	}
}

func TestDeleteEvent_FloorsAtZero(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	ctx := context.Background()

	c, err := f.eventSvc.AddEvent(ctx, refereeActor, 1, MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID, Minute: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Счёт поправили вручную, событие осталось.
	if _, err := f.service.UpdateScore(ctx, refereeActor, 1, results.ScoreUpdate{HomeScore: intPtr(0), AwayScore: intPtr(0)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deleted, err := f.eventSvc.DeleteEvent(ctx, refereeActor, 1, c.Event.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h, _ := score(deleted.Match); h != 0 {
		t.Fatalf("expected home score floored at 0, got %d", h)
	}
	if _, err := f.eventSvc.DeleteEvent(ctx, refereeActor, 1, c.Event.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected deleted event to be gone, got %v", err)
	}
	events, _ := f.eventSvc.ListEvents(ctx, 1)
	if len(events) != 0 {
		t.Fatalf("expected soft deleted event hidden, got %d events", len(events))
	}
}

func TestAddEvent_Validation(t *testing.T) {
	tests := []struct {
		name   string
		status models.MatchStatus
		actor  Actor
		input  MatchEventInput
		class  error
		text   string
	}{
		{"scheduled match", models.MatchScheduled, refereeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID}, ErrInvalidOperation, "before the match has started"},
		{"cancelled match", models.MatchCancelled, refereeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID}, ErrInvalidOperation, ""},
		{"foreign team", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: 99}, ErrInvalidArgument, "not playing"},
		{"unknown type", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: "corner", TeamID: homeTeamID}, ErrInvalidArgument, "corner"},
		{"minute out of range", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID, Minute: 200}, ErrInvalidArgument, ""},
		{"unknown player", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID, PlayerID: intPtr(999)}, ErrInvalidArgument, "player"},
		{"substitution across teams", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: models.EventSubstitutionIn, TeamID: homeTeamID, PlayerID: intPtr(101), SecondaryPlayerID: intPtr(201)},
			ErrInvalidArgument, "substitution"},
		{"substitution without second player", models.MatchInProgress, refereeActor,
			MatchEventInput{EventType: models.EventSubstitutionOut, TeamID: homeTeamID, PlayerID: intPtr(101)}, ErrInvalidArgument, ""},
		{"team leader", models.MatchInProgress, homeActor,
			MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID}, ErrForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchFixture(testMatch(tt.status, intPtr(0), intPtr(0)))
			_, err := f.eventSvc.AddEvent(context.Background(), tt.actor, 1, tt.input)
			if !errors.Is(err, tt.class) {
				t.Fatalf("expected %v, got %v", tt.class, err)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Fatalf("expected message to contain %q, got %q", tt.text, err.Error())
			}
			if len(f.events.events) != 0 {
				t.Fatal("expected no event stored")
			}
		})
	}
}

func TestAddEvent_SecondaryPlayerUnconstrainedOutsideSubstitutions(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	_, err := f.eventSvc.AddEvent(context.Background(), refereeActor, 1, MatchEventInput{
		EventType: models.EventRedCard, TeamID: homeTeamID, PlayerID: intPtr(101), SecondaryPlayerID: intPtr(201), Minute: 70,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = f.eventSvc.AddEvent(context.Background(), refereeActor, 1, MatchEventInput{
		EventType: models.EventSubstitutionIn, TeamID: homeTeamID, PlayerID: intPtr(101), SecondaryPlayerID: intPtr(102), Minute: 71,
	})
	if err != nil {
		t.Fatalf("expected same-team substitution to pass, got %v", err)
	}
}

func TestEvents_ConfirmedMatchIsLocked(t *testing.T) {
	f := newMatchFixture(confirmedMatch())
	ctx := context.Background()

	if _, err := f.eventSvc.AddEvent(ctx, refereeActor, 1, MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID}); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected invalid operation on add, got %v", err)
	}

	f.events.events[7] = models.MatchEvent{ID: 7, MatchID: 1, EventType: models.EventGoal, TeamID: homeTeamID, Period: 1}
	if _, err := f.eventSvc.UpdateEvent(ctx, refereeActor, 1, 7, MatchEventUpdate{Minute: intPtr(3)}); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected invalid operation on update, got %v", err)
	}
	if _, err := f.eventSvc.DeleteEvent(ctx, organizerActor, 1, 7); !errors.Is(err, ErrInvalidOperation) {
		t.Fatalf("expected invalid operation on delete, got %v", err)
	}
}

func TestAddEvent_ResetsPartialConfirmation(t *testing.T) {
	m := testMatch(models.MatchCompleted, intPtr(1), intPtr(0))
	m.HomeConfirmed = true
	f := newMatchFixture(m)

	c, err := f.eventSvc.AddEvent(context.Background(), refereeActor, 1, MatchEventInput{EventType: models.EventGoal, TeamID: awayTeamID, Minute: 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Match.HomeConfirmed {
		t.Fatal("expected score change to reset confirmations")
	}
}

func TestUpdateEvent_WrongMatch(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	f.events.events[5] = models.MatchEvent{ID: 5, MatchID: 2, EventType: models.EventGoal, TeamID: homeTeamID, Period: 1}

	if _, err := f.eventSvc.UpdateEvent(context.Background(), refereeActor, 1, 5, MatchEventUpdate{Minute: intPtr(1)}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for event of another match, got %v", err)
	}
}

func TestUploadEventVideo(t *testing.T) {
	f := newMatchFixture(testMatch(models.MatchInProgress, intPtr(0), intPtr(0)))
	ctx := context.Background()
	c, err := f.eventSvc.AddEvent(ctx, refereeActor, 1, MatchEventInput{EventType: models.EventGoal, TeamID: homeTeamID, Minute: 30})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := f.eventSvc.UploadEventVideo(ctx, refereeActor, 1, c.Event.ID, strings.NewReader("x"), "text/plain"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for text file, got %v", err)
	}
	if _, err := f.eventSvc.UploadEventVideo(ctx, homeActor, 1, c.Event.ID, strings.NewReader("x"), "video/mp4"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected forbidden for team leader, got %v", err)
	}

	event, err := f.eventSvc.UploadEventVideo(ctx, refereeActor, 1, c.Event.ID, strings.NewReader("clip"), "video/mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.VideoURL == nil || !strings.HasSuffix(*event.VideoURL, ".mp4") {
		t.Fatalf("expected mp4 video url, got %v", event.VideoURL)
	}
	events, _ := f.eventSvc.ListEvents(ctx, 1)
	if events[0].VideoURL == nil || *events[0].VideoURL != *event.VideoURL {
		t.Fatalf("expected listed event to expose the video url, got %v", events[0].VideoURL)
	}

	second, err := f.eventSvc.UploadEventVideo(ctx, refereeActor, 1, c.Event.ID, strings.NewReader("clip2"), "video/webm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.uploader.deleted) != 1 || f.uploader.deleted[0] != *event.VideoKey {
		t.Fatalf("expected previous clip removed, got %v", f.uploader.deleted)
	}
	if *second.VideoKey == *event.VideoKey {
		t.Fatal("expected a new object key")
	}
}

func TestUploadEventVideo_StorageDisabled(t *testing.T) {
	svc := NewMatchEventService(MatchEventServiceDeps{Logger: discardLogger()})
	if _, err := svc.UploadEventVideo(context.Background(), refereeActor, 1, 1, strings.NewReader("x"), "video/mp4"); !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
}
