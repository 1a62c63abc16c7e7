package service

import (
	"context"
	"fmt"
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/generation"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"
)

type AdminService struct {
	Questions  *repository.QuestionRepository
	Categories *repository.CategoryRepository
	Attempts   *repository.AttemptRepository
	Generator  *generation.Client
}

func NewAdminService(questions *repository.QuestionRepository, categories *repository.CategoryRepository, attempts *repository.AttemptRepository, generator *generation.Client) *AdminService {
	return &AdminService{
		Questions:  questions,
		Categories: categories,
		Attempts:   attempts,
		Generator:  generator,
	}
}

type GenerateInput struct {
	CategoryID        string `json:"categoryId" binding:"required"`
	SubcategoryID     string `json:"subcategoryId"`
	Difficulty        string `json:"difficulty" binding:"required"`
	NumberOfQuestions int    `json:"numberOfQuestions" binding:"required,min=1,max=20"`
	Type              string `json:"type" binding:"required"`
}

type GenerateResult struct {
	Message   string            `json:"message"`
	Questions []models.Question `json:"questions"`
}

// GenerateQuestions calls the generation collaborator once (no retries)
// and persists the questions that pass validation as ordinary rows.
func (s *AdminService) GenerateQuestions(ctx context.Context, in GenerateInput) (*GenerateResult, error) {
	if !models.ValidDifficultySelector(in.Difficulty) {
		return nil, apperr.InvalidRequest("invalid difficulty %q", in.Difficulty)
	}
	if !models.ValidQuestionType(in.Type) {
		return nil, apperr.InvalidRequest("invalid question type %q", in.Type)
	}
	if s.Generator == nil {
		return nil, apperr.Upstream("question generation is not configured", nil)
	}

	category, err := s.Categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return nil, asNotFound(err, "category not found")
	}
	targetCategoryID := in.CategoryID
	subName := ""
	if in.SubcategoryID != "" {
		sub, err := s.Categories.FindByID(ctx, in.SubcategoryID)
		if err != nil {
			return nil, asNotFound(err, "subcategory not found")
		}
		targetCategoryID = sub.ID
		subName = sub.Name
	}

	generated, err := s.Generator.GenerateQuestions(ctx, generation.Params{
		Category:    category.Name,
		Subcategory: subName,
		Difficulty:  in.Difficulty,
		Count:       in.NumberOfQuestions,
		Type:        in.Type,
	})
	if err != nil {
		return nil, apperr.Upstream("failed to generate questions", err)
	}

	now := time.Now()
	saved := make([]models.Question, 0, len(generated))
	for _, g := range generated {
		options := g.Options
		if options == nil {
			options = []string{}
		}
		question := &models.Question{
			Question:      g.Question,
			Options:       options,
			CorrectAnswer: g.CorrectAnswer,
			Explanation:   g.Explanation,
			Difficulty:    g.Difficulty,
			Type:          in.Type,
			CategoryID:    targetCategoryID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.Questions.Create(ctx, question); err != nil {
			return nil, err
		}
		saved = append(saved, *question)
	}

	return &GenerateResult{
		Message:   fmt.Sprintf("Successfully generated %d questions", len(saved)),
		Questions: saved,
	}, nil
}

type DifficultyCount struct {
	Difficulty string `json:"difficulty"`
	Count      int64  `json:"count"`
}

type CategoryCount struct {
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

type DashboardStats struct {
	TotalCategories       int               `json:"totalCategories"`
	TotalQuestions        int64             `json:"totalQuestions"`
	TotalQuizAttempts     int64             `json:"totalQuizAttempts"`
	AverageScore          float64           `json:"averageScore"`
	QuestionsByDifficulty []DifficultyCount `json:"questionsByDifficulty"`
	QuestionsByCategory   []CategoryCount   `json:"questionsByCategory"`
	RecentAttempts        []models.Attempt  `json:"recentAttempts"`
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	categories, err := s.Categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	totalQuestions, err := s.Questions.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAttempts, err := s.Attempts.CountCompleted(ctx)
	if err != nil {
		return nil, err
	}
	avgScore, err := s.Attempts.AverageCompletedScore(ctx)
	if err != nil {
		return nil, err
	}

	byDifficulty := make([]DifficultyCount, 0, 3)
	for _, d := range []string{models.DifficultyEasy, models.DifficultyMedium, models.DifficultyHard} {
		count, err := s.Questions.CountByDifficulty(ctx, d)
		if err != nil {
			return nil, err
		}
		byDifficulty = append(byDifficulty, DifficultyCount{Difficulty: d, Count: count})
	}

	byCategory := make([]CategoryCount, 0, len(categories))
	for _, c := range categories {
		count, err := s.Questions.CountByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		byCategory = append(byCategory, CategoryCount{CategoryID: c.ID, CategoryName: c.Name, Count: count})
	}

	recent, err := s.Attempts.FindRecentCompleted(ctx, 10)
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []models.Attempt{}
	}

	return &DashboardStats{
		TotalCategories:       len(categories),
		TotalQuestions:        totalQuestions,
		TotalQuizAttempts:     totalAttempts,
		AverageScore:          avgScore,
		QuestionsByDifficulty: byDifficulty,
		QuestionsByCategory:   byCategory,
		RecentAttempts:        recent,
	}, nil
}
