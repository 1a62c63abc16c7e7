package models

import "time"

type Quiz struct {
	ID               string    `bson:"_id,omitempty" json:"id"`
	Title            string    `bson:"title" json:"title"`
	CategoryID       string    `bson:"category_id" json:"categoryId"`
	Difficulty       string    `bson:"difficulty" json:"difficulty"`
	TotalQuestions   int       `bson:"total_questions" json:"totalQuestions"`
	TimeLimitMinutes int       `bson:"time_limit_minutes" json:"timeLimitMinutes"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// QuizQuestion links a quiz to one of its questions and fixes its
// position in the play-through order (1-based).
type QuizQuestion struct {
	ID         string `bson:"_id,omitempty" json:"id"`
	QuizID     string `bson:"quiz_id" json:"quizId"`
	QuestionID string `bson:"question_id" json:"questionId"`
	Order      int    `bson:"order" json:"order"`
}
