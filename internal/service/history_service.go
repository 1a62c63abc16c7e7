package service

import (
	"context"

	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"
)

type HistoryService struct {
	Attempts   *repository.AttemptRepository
	Quizzes    *repository.QuizRepository
	Categories *repository.CategoryRepository
}

func NewHistoryService(attempts *repository.AttemptRepository, quizzes *repository.QuizRepository, categories *repository.CategoryRepository) *HistoryService {
	return &HistoryService{Attempts: attempts, Quizzes: quizzes, Categories: categories}
}

type CategoryStat struct {
	CategoryID   string  `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
}

type Statistics struct {
	TotalQuizzes      int            `json:"totalQuizzes"`
	AverageScore      float64        `json:"averageScore"`
	TotalTimeSpent    int            `json:"totalTimeSpent"`
	CategoryBreakdown []CategoryStat `json:"categoryBreakdown"`
}

type HistoryResponse struct {
	Attempts   []models.Attempt `json:"attempts"`
	Statistics Statistics       `json:"statistics"`
	Meta       PageMeta         `json:"meta"`
}

// GetUserHistory returns one page of completed attempts, newest first,
// with statistics aggregated over the user's entire completed set.
func (s *HistoryService) GetUserHistory(ctx context.Context, userID string, page, limit int) (*HistoryResponse, error) {
	all, err := s.Attempts.FindCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	skip := int64(page-1) * int64(limit)
	attempts, err := s.Attempts.FindCompletedPage(ctx, userID, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	if attempts == nil {
		attempts = []models.Attempt{}
	}

	quizByID := make(map[string]models.Quiz)
	for _, a := range all {
		if _, ok := quizByID[a.QuizID]; ok {
			continue
		}
		quiz, err := s.Quizzes.FindByID(ctx, a.QuizID)
		if err != nil {
			continue
		}
		quizByID[a.QuizID] = *quiz
	}

	categoryNames := make(map[string]string)
	for _, quiz := range quizByID {
		if _, ok := categoryNames[quiz.CategoryID]; ok {
			continue
		}
		if category, err := s.Categories.FindByID(ctx, quiz.CategoryID); err == nil {
			categoryNames[category.ID] = category.Name
		}
	}

	return &HistoryResponse{
		Attempts:   attempts,
		Statistics: ComputeStatistics(all, quizByID, categoryNames),
		Meta:       NewPageMeta(int64(len(all)), page, limit),
	}, nil
}

// ComputeStatistics aggregates over every completed attempt passed in.
func ComputeStatistics(attempts []models.Attempt, quizByID map[string]models.Quiz, categoryNames map[string]string) Statistics {
	stats := Statistics{CategoryBreakdown: []CategoryStat{}}
	stats.TotalQuizzes = len(attempts)
	if len(attempts) == 0 {
		return stats
	}

	var scoreSum float64
	totals := make(map[string]*CategoryStat)
	var order []string
	for _, a := range attempts {
		scoreSum += a.Score
		if a.CompletedAt != nil {
			stats.TotalTimeSpent += int(a.CompletedAt.Sub(a.StartedAt).Seconds())
		}

		quiz, ok := quizByID[a.QuizID]
		if !ok {
			continue
		}
		entry, ok := totals[quiz.CategoryID]
		if !ok {
			entry = &CategoryStat{
				CategoryID:   quiz.CategoryID,
				CategoryName: categoryNames[quiz.CategoryID],
			}
			totals[quiz.CategoryID] = entry
			order = append(order, quiz.CategoryID)
		}
		entry.Attempts++
		// AverageScore accumulates the raw sum here; divided below.
		entry.AverageScore += a.Score
	}

	stats.AverageScore = scoreSum / float64(len(attempts))
	for _, id := range order {
		entry := totals[id]
		entry.AverageScore /= float64(entry.Attempts)
		stats.CategoryBreakdown = append(stats.CategoryBreakdown, *entry)
	}
	return stats
}
