// Package attempt holds the lifecycle rules for quiz attempts:
// IN_PROGRESS -> COMPLETED, terminal, one owner, one submission.
package attempt

import (
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/models"
)

// SubmitGrace covers network delay after a client-side auto-submit at
// the time limit. Submissions past deadline+grace are still scored but
// flagged as expired rather than rejected.
const SubmitGrace = 30 * time.Second

// CheckOwnership rejects a caller that does not own the attempt.
func CheckOwnership(a *models.Attempt, userID string) error {
	if a.UserID != userID {
		return apperr.Forbidden("this attempt does not belong to you")
	}
	return nil
}

// CheckSubmittable rejects re-submission of a completed attempt.
func CheckSubmittable(a *models.Attempt) error {
	if a.Status == models.AttemptCompleted {
		return apperr.InvalidState("this quiz has already been submitted")
	}
	return nil
}

// Deadline is the advisory submission deadline for an attempt.
func Deadline(startedAt time.Time, timeLimitMinutes int) time.Time {
	return startedAt.Add(time.Duration(timeLimitMinutes) * time.Minute)
}

// CompletionType classifies a submission as on-time or expired.
func CompletionType(startedAt, completedAt time.Time, timeLimitMinutes int) string {
	if completedAt.After(Deadline(startedAt, timeLimitMinutes).Add(SubmitGrace)) {
		return models.CompletionExpired
	}
	return models.CompletionSubmitted
}

// RemainingSeconds reports the time left on an in-progress attempt,
// clamped at zero.
func RemainingSeconds(a *models.Attempt, timeLimitMinutes int, now time.Time) int {
	remaining := Deadline(a.StartedAt, timeLimitMinutes).Sub(now)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds())
}
