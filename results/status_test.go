package results

import (
	"errors"
	"testing"

	"github.com/Dosada05/matchday/models"
)

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    models.MatchStatus
		to      models.MatchStatus
		wantErr bool
	}{
		{name: "scheduled to in progress", from: models.MatchScheduled, to: models.MatchInProgress},
		{name: "scheduled to completed", from: models.MatchScheduled, to: models.MatchCompleted},
		{name: "in progress back to scheduled", from: models.MatchInProgress, to: models.MatchScheduled},
		{name: "postponed to cancelled", from: models.MatchPostponed, to: models.MatchCancelled},
		{name: "completed stays completed", from: models.MatchCompleted, to: models.MatchCompleted},
		{name: "completed to in progress", from: models.MatchCompleted, to: models.MatchInProgress, wantErr: true},
		{name: "completed to cancelled", from: models.MatchCompleted, to: models.MatchCancelled, wantErr: true},
		{name: "cancelled reopened", from: models.MatchCancelled, to: models.MatchScheduled},
		{name: "cancelled to in progress", from: models.MatchCancelled, to: models.MatchInProgress, wantErr: true},
		{name: "cancelled to cancelled", from: models.MatchCancelled, to: models.MatchCancelled, wantErr: true},
		{name: "unknown target", from: models.MatchScheduled, to: "finished", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to)
			if tt.wantErr && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestStatusMachineNeverLeavesCompleted(t *testing.T) {
	m := &models.Match{Status: models.MatchScheduled}
	if _, err := ApplyStatus(m, models.MatchCompleted); err != nil {
		t.Fatalf("complete match: %v", err)
	}
	for _, next := range models.MatchStatuses {
		_, _ = ApplyStatus(m, next)
		if m.Status != models.MatchCompleted {
			t.Fatalf("expected status to stay completed after %q, got %q", next, m.Status)
		}
	}
}

func TestStatusMachineCancelledOnlyReopens(t *testing.T) {
	for _, next := range models.MatchStatuses {
		m := &models.Match{Status: models.MatchCancelled}
		_, err := ApplyStatus(m, next)
		if next == models.MatchScheduled {
			if err != nil || m.Status != models.MatchScheduled {
				t.Fatalf("expected reopen to succeed, got status %q err %v", m.Status, err)
			}
			continue
		}
		if m.Status != models.MatchCancelled {
			t.Fatalf("expected cancelled match to stay cancelled after %q, got %q", next, m.Status)
		}
	}
}

func TestApplyStatusStartsScores(t *testing.T) {
	m := &models.Match{Status: models.MatchScheduled}
	completedNow, err := ApplyStatus(m, models.MatchInProgress)
	if err != nil {
		t.Fatalf("start match: %v", err)
	}
	if completedNow {
		t.Fatal("expected completedNow false for in_progress")
	}
	if m.HomeScore == nil || m.AwayScore == nil || *m.HomeScore != 0 || *m.AwayScore != 0 {
		t.Fatalf("expected 0-0 once the match starts, got %v-%v", m.HomeScore, m.AwayScore)
	}

	completedNow, err = ApplyStatus(m, models.MatchCompleted)
	if err != nil || !completedNow {
		t.Fatalf("expected completedNow true, got %v err %v", completedNow, err)
	}
	completedNow, err = ApplyStatus(m, models.MatchCompleted)
	if err != nil || completedNow {
		t.Fatalf("expected repeated completion to report false, got %v err %v", completedNow, err)
	}
}

func TestApplyStatusPostponedKeepsNullScores(t *testing.T) {
	m := &models.Match{Status: models.MatchScheduled}
	if _, err := ApplyStatus(m, models.MatchPostponed); err != nil {
		t.Fatalf("postpone: %v", err)
	}
	if m.HomeScore != nil || m.AwayScore != nil {
		t.Fatal("expected scores to stay null for a postponed match")
	}
}
