package service

import (
	"context"
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
)

type QuestionService struct {
	Repo       *repository.QuestionRepository
	Categories *repository.CategoryRepository
}

func NewQuestionService(repo *repository.QuestionRepository, categories *repository.CategoryRepository) *QuestionService {
	return &QuestionService{Repo: repo, Categories: categories}
}

type QuestionInput struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty" binding:"required"`
	Type          string   `json:"type" binding:"required"`
	CategoryID    string   `json:"categoryId" binding:"required"`
}

type QuestionPatch struct {
	Question      *string   `json:"question"`
	Options       *[]string `json:"options"`
	CorrectAnswer *string   `json:"correctAnswer"`
	Explanation   *string   `json:"explanation"`
	Difficulty    *string   `json:"difficulty"`
	Type          *string   `json:"type"`
	CategoryID    *string   `json:"categoryId"`
}

type PageMeta struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

func NewPageMeta(total int64, page, limit int) PageMeta {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return PageMeta{Total: total, Page: page, Limit: limit, TotalPages: pages}
}

type QuestionPage struct {
	Data []models.Question `json:"data"`
	Meta PageMeta          `json:"meta"`
}

func (s *QuestionService) Create(ctx context.Context, in QuestionInput) (*models.Question, error) {
	if !models.ValidDifficulty(in.Difficulty) {
		return nil, apperr.InvalidRequest("invalid difficulty %q", in.Difficulty)
	}
	if !models.ValidQuestionType(in.Type) {
		return nil, apperr.InvalidRequest("invalid question type %q", in.Type)
	}
	if _, err := s.Categories.FindByID(ctx, in.CategoryID); err != nil {
		return nil, asNotFound(err, "category not found")
	}

	options := in.Options
	if options == nil {
		options = []string{}
	}
	now := time.Now()
	question := &models.Question{
		Question:      in.Question,
		Options:       options,
		CorrectAnswer: in.CorrectAnswer,
		Explanation:   in.Explanation,
		Difficulty:    in.Difficulty,
		Type:          in.Type,
		CategoryID:    in.CategoryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Repo.Create(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) List(ctx context.Context, page, limit int, categoryID, difficulty string) (*QuestionPage, error) {
	filter := bson.M{}
	if categoryID != "" {
		filter["category_id"] = categoryID
	}
	if difficulty != "" {
		if !models.ValidDifficulty(difficulty) {
			return nil, apperr.InvalidRequest("invalid difficulty %q", difficulty)
		}
		filter["difficulty"] = difficulty
	}

	skip := int64(page-1) * int64(limit)
	questions, total, err := s.Repo.FindPage(ctx, filter, skip, int64(limit))
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return &QuestionPage{Data: questions, Meta: NewPageMeta(total, page, limit)}, nil
}

func (s *QuestionService) Get(ctx context.Context, id string) (*models.Question, error) {
	question, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "question not found")
	}
	return question, nil
}

func (s *QuestionService) Update(ctx context.Context, id string, patch QuestionPatch) (*models.Question, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, asNotFound(err, "question not found")
	}

	update := bson.M{"updated_at": time.Now()}
	if patch.Question != nil {
		update["question"] = *patch.Question
	}
	if patch.Options != nil {
		update["options"] = *patch.Options
	}
	if patch.CorrectAnswer != nil {
		update["correct_answer"] = *patch.CorrectAnswer
	}
	if patch.Explanation != nil {
		update["explanation"] = *patch.Explanation
	}
	if patch.Difficulty != nil {
		if !models.ValidDifficulty(*patch.Difficulty) {
			return nil, apperr.InvalidRequest("invalid difficulty %q", *patch.Difficulty)
		}
		update["difficulty"] = *patch.Difficulty
	}
	if patch.Type != nil {
		if !models.ValidQuestionType(*patch.Type) {
			return nil, apperr.InvalidRequest("invalid question type %q", *patch.Type)
		}
		update["type"] = *patch.Type
	}
	if patch.CategoryID != nil {
		if _, err := s.Categories.FindByID(ctx, *patch.CategoryID); err != nil {
			return nil, asNotFound(err, "category not found")
		}
		update["category_id"] = *patch.CategoryID
	}

	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(ctx, id)
}

func (s *QuestionService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return asNotFound(err, "question not found")
	}
	return s.Repo.Delete(ctx, id)
}

// FindByCategoryAndDifficulty resolves the eligible category set as the
// category plus its direct children (not deeper descendants) and returns
// an oversampled candidate pool, newest first. The caller handles any
// shortfall against its requested count.
func (s *QuestionService) FindByCategoryAndDifficulty(ctx context.Context, categoryID, difficulty string, limit int) ([]models.Question, error) {
	if _, err := s.Categories.FindByID(ctx, categoryID); err != nil {
		return nil, asNotFound(err, "category not found")
	}
	children, err := s.Categories.FindByParent(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return s.Repo.FindByCategories(ctx, EligibleCategoryIDs(categoryID, children), difficulty, int64(limit))
}

// EligibleCategoryIDs is the category set a quiz may draw from: the
// chosen category plus its direct children. Grandchildren are excluded.
func EligibleCategoryIDs(categoryID string, children []models.Category) []string {
	ids := make([]string, 0, len(children)+1)
	ids = append(ids, categoryID)
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	return ids
}
