// Package scoring grades a set of submitted answers against the quiz's
// questions. It is pure: no storage, no clock.
package scoring

import (
	"strings"

	"quiz-platform/internal/models"
)

// SubmittedAnswer is one answer as sent by the client.
type SubmittedAnswer struct {
	QuestionID       string `json:"questionId" binding:"required"`
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"timeSpent"`
}

// Outcome is the graded result of one submission.
type Outcome struct {
	Answers      []models.AnswerRecord
	CorrectCount int
	Score        float64
}

// Grade scores each submitted answer against the quiz's questions.
// Answers referencing unknown question ids are recorded as incorrect
// rather than rejected. The score denominator is the quiz's full
// question count, so unanswered questions count as wrong.
func Grade(questions []models.Question, answers []SubmittedAnswer) Outcome {
	byID := make(map[string]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	outcome := Outcome{Answers: make([]models.AnswerRecord, 0, len(answers))}
	for _, a := range answers {
		record := models.AnswerRecord{
			QuestionID:       a.QuestionID,
			UserAnswer:       a.Answer,
			TimeSpentSeconds: a.TimeSpentSeconds,
		}
		if q, ok := byID[a.QuestionID]; ok && Matches(a.Answer, q.CorrectAnswer) {
			record.IsCorrect = true
			outcome.CorrectCount++
		}
		outcome.Answers = append(outcome.Answers, record)
	}

	if len(questions) > 0 {
		outcome.Score = float64(outcome.CorrectCount) / float64(len(questions)) * 100
	}
	return outcome
}

// Matches compares a submitted answer to the correct one: exact string
// equality after trimming whitespace, case-insensitive. No partial credit.
func Matches(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}
