package attempt

import (
	"testing"
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/models"
)

func TestCheckOwnership(t *testing.T) {
	a := &models.Attempt{UserID: "user-1"}

	if err := CheckOwnership(a, "user-1"); err != nil {
		t.Errorf("owner should pass, got %v", err)
	}

	err := CheckOwnership(a, "user-2")
	if err == nil {
		t.Fatal("foreign user should be rejected")
	}
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("expected Forbidden, got kind %v", apperr.KindOf(err))
	}
}

func TestCheckSubmittable(t *testing.T) {
	inProgress := &models.Attempt{Status: models.AttemptInProgress}
	if err := CheckSubmittable(inProgress); err != nil {
		t.Errorf("in-progress attempt should be submittable, got %v", err)
	}

	completed := &models.Attempt{Status: models.AttemptCompleted}
	err := CheckSubmittable(completed)
	if err == nil {
		t.Fatal("completed attempt must reject re-submission")
	}
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Errorf("expected InvalidState, got kind %v", apperr.KindOf(err))
	}
}

func TestCompletionType(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	limit := 10 // minutes

	testCases := []struct {
		name        string
		completedAt time.Time
		want        string
	}{
		{"well within limit", started.Add(5 * time.Minute), models.CompletionSubmitted},
		{"exactly at limit", started.Add(10 * time.Minute), models.CompletionSubmitted},
		{"inside grace", started.Add(10*time.Minute + 20*time.Second), models.CompletionSubmitted},
		{"just past grace", started.Add(10*time.Minute + 31*time.Second), models.CompletionExpired},
		{"far past limit", started.Add(2 * time.Hour), models.CompletionExpired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CompletionType(started, tc.completedAt, limit); got != tc.want {
				t.Errorf("CompletionType = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRemainingSeconds(t *testing.T) {
	started := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := &models.Attempt{StartedAt: started}

	if got := RemainingSeconds(a, 10, started.Add(4*time.Minute)); got != 360 {
		t.Errorf("expected 360 seconds remaining, got %d", got)
	}
	if got := RemainingSeconds(a, 10, started.Add(15*time.Minute)); got != 0 {
		t.Errorf("expected 0 remaining past deadline, got %d", got)
	}
}
