package models

import "time"

const (
	DifficultyEasy   = "EASY"
	DifficultyMedium = "MEDIUM"
	DifficultyHard   = "HARD"

	// DifficultyMix is a selector meaning "any difficulty". It is never
	// stored on a question, only accepted as a filter and quiz setting.
	DifficultyMix = "MIX"
)

const (
	TypeMCQ         = "MCQ"
	TypeShortAnswer = "SHORT_ANSWER"
	TypeCoding      = "CODING"
)

type Question struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Question      string    `bson:"question" json:"question"`
	Options       []string  `bson:"options" json:"options"`
	CorrectAnswer string    `bson:"correct_answer" json:"correctAnswer"`
	Explanation   string    `bson:"explanation" json:"explanation"`
	Difficulty    string    `bson:"difficulty" json:"difficulty"`
	Type          string    `bson:"type" json:"type"`
	CategoryID    string    `bson:"category_id" json:"categoryId"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
}

// PublicQuestion is a question as seen by a user taking a quiz. The
// correct answer and explanation must never appear here.
type PublicQuestion struct {
	ID         string    `json:"id"`
	Question   string    `json:"question"`
	Options    []string  `json:"options"`
	Difficulty string    `json:"difficulty"`
	Type       string    `json:"type"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"created_at"`
}

func (q Question) Public() PublicQuestion {
	return PublicQuestion{
		ID:         q.ID,
		Question:   q.Question,
		Options:    q.Options,
		Difficulty: q.Difficulty,
		Type:       q.Type,
		CategoryID: q.CategoryID,
		CreatedAt:  q.CreatedAt,
	}
}

// ValidDifficulty reports whether d is a storable question difficulty.
func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// ValidDifficultySelector additionally allows MIX.
func ValidDifficultySelector(d string) bool {
	return d == DifficultyMix || ValidDifficulty(d)
}

func ValidQuestionType(t string) bool {
	return t == TypeMCQ || t == TypeShortAnswer || t == TypeCoding
}
