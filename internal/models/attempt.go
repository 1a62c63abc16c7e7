package models

import "time"

const (
	AttemptInProgress = "IN_PROGRESS"
	AttemptCompleted  = "COMPLETED"
)

const (
	CompletionSubmitted = "submitted"
	// CompletionExpired marks an attempt submitted after the quiz time
	// limit plus grace. The answers are still scored normally.
	CompletionExpired = "expired"
)

type AnswerRecord struct {
	QuestionID       string `bson:"question_id" json:"questionId"`
	UserAnswer       string `bson:"user_answer" json:"userAnswer"`
	IsCorrect        bool   `bson:"is_correct" json:"isCorrect"`
	TimeSpentSeconds int    `bson:"time_spent_seconds" json:"timeSpent"`
}

// QuestionSnapshot freezes a question's content plus the user's result at
// submission time, so later edits or deletes of the question row cannot
// change what a completed attempt displays.
type QuestionSnapshot struct {
	QuestionID       string   `bson:"question_id" json:"id"`
	Question         string   `bson:"question" json:"question"`
	Options          []string `bson:"options" json:"options"`
	CorrectAnswer    string   `bson:"correct_answer" json:"correctAnswer"`
	Explanation      string   `bson:"explanation" json:"explanation"`
	Difficulty       string   `bson:"difficulty" json:"difficulty"`
	Type             string   `bson:"type" json:"type"`
	UserAnswer       string   `bson:"user_answer" json:"userAnswer"`
	IsCorrect        bool     `bson:"is_correct" json:"isCorrect"`
	TimeSpentSeconds int      `bson:"time_spent_seconds" json:"timeSpent"`
}

type Attempt struct {
	ID             string             `bson:"_id,omitempty" json:"id"`
	UserID         string             `bson:"user_id" json:"userId"`
	QuizID         string             `bson:"quiz_id" json:"quizId"`
	Score          float64            `bson:"score" json:"score"`
	TotalQuestions int                `bson:"total_questions" json:"totalQuestions"`
	Answers        []AnswerRecord     `bson:"answers" json:"answers"`
	Snapshots      []QuestionSnapshot `bson:"snapshots,omitempty" json:"-"`
	StartedAt      time.Time          `bson:"started_at" json:"startedAt"`
	CompletedAt    *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	Status         string             `bson:"status" json:"status"`
	CompletionType string             `bson:"completion_type,omitempty" json:"completionType,omitempty"`
}
