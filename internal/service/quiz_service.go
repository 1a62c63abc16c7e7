package service

import (
	"context"
	"fmt"
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/attempt"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"
	"quiz-platform/internal/scoring"
	"quiz-platform/internal/selection"

	"go.mongodb.org/mongo-driver/bson"
)

const minutesPerQuestion = 2

type QuizService struct {
	Quizzes   *repository.QuizRepository
	Attempts  *repository.AttemptRepository
	Questions *QuestionService
	selector  *selection.Selector
}

func NewQuizService(quizzes *repository.QuizRepository, attempts *repository.AttemptRepository, questions *QuestionService) *QuizService {
	return &QuizService{
		Quizzes:   quizzes,
		Attempts:  attempts,
		Questions: questions,
		selector:  selection.NewSelector(),
	}
}

type StartQuizInput struct {
	CategoryID        string `json:"categoryId" binding:"required"`
	Difficulty        string `json:"difficulty" binding:"required"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"required,min=1,max=50"`
}

type StartQuizResponse struct {
	AttemptID string                  `json:"attemptId"`
	Quiz      models.Quiz             `json:"quiz"`
	Questions []models.PublicQuestion `json:"questions"`
	StartedAt time.Time               `json:"startedAt"`
}

// StartQuiz assembles a fresh quiz for one play-through: candidate pool,
// uniform selection, quiz + ordered links, and an IN_PROGRESS attempt.
// The returned questions never carry the correct answer or explanation.
func (s *QuizService) StartQuiz(ctx context.Context, userID string, in StartQuizInput) (*StartQuizResponse, error) {
	if !models.ValidDifficultySelector(in.Difficulty) {
		return nil, apperr.InvalidRequest("invalid difficulty %q", in.Difficulty)
	}

	category, err := s.Questions.Categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, asNotFound(err, "category not found")
	}

	candidates, err := s.Questions.FindByCategoryAndDifficulty(ctx, in.CategoryID, in.Difficulty, in.NumberOfQuestions)
	if err != nil {
		return nil, err
	}
	selected, err := SelectQuestions(s.selector, candidates, in.NumberOfQuestions)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Title:            fmt.Sprintf("%s - %s Quiz", category.Name, in.Difficulty),
		CategoryID:       in.CategoryID,
		Difficulty:       in.Difficulty,
		TotalQuestions:   in.NumberOfQuestions,
		TimeLimitMinutes: in.NumberOfQuestions * minutesPerQuestion,
		CreatedAt:        time.Now(),
	}
	if err := s.Quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}

	questionIDs := make([]string, len(selected))
	for i, q := range selected {
		questionIDs[i] = q.ID
	}
	if err := s.Quizzes.InsertLinks(ctx, quiz.ID, questionIDs); err != nil {
		return nil, err
	}

	att := &models.Attempt{
		UserID:         userID,
		QuizID:         quiz.ID,
		TotalQuestions: in.NumberOfQuestions,
		Answers:        []models.AnswerRecord{},
		StartedAt:      time.Now(),
		Status:         models.AttemptInProgress,
	}
	if err := s.Attempts.Create(ctx, att); err != nil {
		return nil, err
	}

	public := make([]models.PublicQuestion, len(selected))
	for i, q := range selected {
		public[i] = q.Public()
	}

	return &StartQuizResponse{
		AttemptID: att.ID,
		Quiz:      *quiz,
		Questions: public,
		StartedAt: att.StartedAt,
	}, nil
}

type SubmitQuizResponse struct {
	Attempt          models.Attempt            `json:"attempt"`
	Questions        []models.QuestionSnapshot `json:"questions"`
	TotalScore       float64                   `json:"totalScore"`
	Percentage       float64                   `json:"percentage"`
	TimeTakenSeconds int                       `json:"timeTaken"`
}

// SubmitQuiz runs the single terminal transition of an attempt. The
// completing write is conditional on status, so of two racing calls
// exactly one succeeds; the loser gets InvalidState.
func (s *QuizService) SubmitQuiz(ctx context.Context, userID, attemptID string, answers []scoring.SubmittedAnswer) (*SubmitQuizResponse, error) {
	att, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, asNotFound(err, "quiz attempt not found")
	}
	if err := attempt.CheckOwnership(att, userID); err != nil {
		return nil, err
	}
	if err := attempt.CheckSubmittable(att); err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, att.QuizID)
	if err != nil {
		return nil, asNotFound(err, "quiz not found")
	}
	questions, err := s.loadQuizQuestions(ctx, att.QuizID)
	if err != nil {
		return nil, err
	}

	outcome := scoring.Grade(questions, answers)
	completedAt := time.Now()
	completionType := attempt.CompletionType(att.StartedAt, completedAt, quiz.TimeLimitMinutes)
	snapshots := BuildSnapshots(questions, outcome.Answers)

	modified, err := s.Attempts.Complete(ctx, attemptID, bson.M{
		"answers":         outcome.Answers,
		"snapshots":       snapshots,
		"score":           outcome.Score,
		"status":          models.AttemptCompleted,
		"completed_at":    completedAt,
		"completion_type": completionType,
	})
	if err != nil {
		return nil, err
	}
	if !modified {
		return nil, apperr.InvalidState("this quiz has already been submitted")
	}

	att.Answers = outcome.Answers
	att.Snapshots = snapshots
	att.Score = outcome.Score
	att.Status = models.AttemptCompleted
	att.CompletedAt = &completedAt
	att.CompletionType = completionType

	return &SubmitQuizResponse{
		Attempt:          *att,
		Questions:        snapshots,
		TotalScore:       outcome.Score,
		Percentage:       outcome.Score,
		TimeTakenSeconds: int(completedAt.Sub(att.StartedAt).Seconds()),
	}, nil
}

type AttemptView struct {
	Attempt          models.Attempt            `json:"attempt"`
	Quiz             models.Quiz               `json:"quiz"`
	Questions        []models.PublicQuestion   `json:"questions,omitempty"`
	Results          []models.QuestionSnapshot `json:"results,omitempty"`
	RemainingSeconds *int                      `json:"remainingSeconds,omitempty"`
}

// GetAttempt lets a client reconstruct an active quiz from the server
// instead of local cache. While in progress the question set is
// sanitized; once completed the frozen snapshots come back.
func (s *QuizService) GetAttempt(ctx context.Context, userID, attemptID string) (*AttemptView, error) {
	att, err := s.Attempts.FindByID(ctx, attemptID)
	if err != nil {
		return nil, asNotFound(err, "quiz attempt not found")
	}
	if err := attempt.CheckOwnership(att, userID); err != nil {
		return nil, err
	}

	quiz, err := s.Quizzes.FindByID(ctx, att.QuizID)
	if err != nil {
		return nil, asNotFound(err, "quiz not found")
	}

	view := &AttemptView{Attempt: *att, Quiz: *quiz}
	if att.Status == models.AttemptCompleted {
		view.Results = att.Snapshots
		return view, nil
	}

	questions, err := s.loadQuizQuestions(ctx, att.QuizID)
	if err != nil {
		return nil, err
	}
	view.Questions = make([]models.PublicQuestion, len(questions))
	for i, q := range questions {
		view.Questions[i] = q.Public()
	}
	remaining := attempt.RemainingSeconds(att, quiz.TimeLimitMinutes, time.Now())
	view.RemainingSeconds = &remaining
	view.Attempt.Answers = nil
	return view, nil
}

// loadQuizQuestions fetches the quiz's questions in their stored order.
func (s *QuizService) loadQuizQuestions(ctx context.Context, quizID string) ([]models.Question, error) {
	ids, err := s.Quizzes.FindLinkedQuestionIDs(ctx, quizID)
	if err != nil {
		return nil, err
	}
	fetched, err := s.Questions.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Question, len(fetched))
	for _, q := range fetched {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		if q, ok := byID[id]; ok {
			ordered = append(ordered, q)
		}
	}
	return ordered, nil
}

// SelectQuestions draws count questions from the candidate pool. A pool
// smaller than the requested count is a caller-visible failure, not a
// silent short quiz.
func SelectQuestions(selector *selection.Selector, candidates []models.Question, count int) ([]models.Question, error) {
	if len(candidates) < count {
		return nil, apperr.InvalidRequest(
			"not enough questions available. Found %d, requested %d",
			len(candidates), count,
		)
	}
	return selector.Pick(candidates, count), nil
}

// BuildSnapshots freezes each quiz question together with the user's
// graded answer. Questions left unanswered snapshot with an empty
// answer and isCorrect false.
func BuildSnapshots(questions []models.Question, answers []models.AnswerRecord) []models.QuestionSnapshot {
	byQuestion := make(map[string]models.AnswerRecord, len(answers))
	for _, a := range answers {
		if _, seen := byQuestion[a.QuestionID]; !seen {
			byQuestion[a.QuestionID] = a
		}
	}

	snapshots := make([]models.QuestionSnapshot, len(questions))
	for i, q := range questions {
		snap := models.QuestionSnapshot{
			QuestionID:    q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
			Difficulty:    q.Difficulty,
			Type:          q.Type,
		}
		if a, ok := byQuestion[q.ID]; ok {
			snap.UserAnswer = a.UserAnswer
			snap.IsCorrect = a.IsCorrect
			snap.TimeSpentSeconds = a.TimeSpentSeconds
		}
		snapshots[i] = snap
	}
	return snapshots
}
