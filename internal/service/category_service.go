package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"quiz-platform/internal/apperr"
	"quiz-platform/internal/models"
	"quiz-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryService struct {
	Repo      *repository.CategoryRepository
	Questions *repository.QuestionRepository
}

func NewCategoryService(repo *repository.CategoryRepository, questions *repository.QuestionRepository) *CategoryService {
	return &CategoryService{Repo: repo, Questions: questions}
}

type CategoryPatch struct {
	Name     *string `json:"name"`
	ParentID *string `json:"parentId"`
}

func (s *CategoryService) Create(ctx context.Context, name, parentID string) (*models.CategoryDetail, error) {
	var parent *models.Category
	if parentID != "" {
		p, err := s.Repo.FindByID(ctx, parentID)
		if err != nil {
			return nil, asNotFound(err, "parent category not found")
		}
		parent = p
	}

	now := time.Now()
	category := &models.Category{
		Name:      name,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, category); err != nil {
		return nil, err
	}

	return &models.CategoryDetail{
		Category: *category,
		Parent:   parent,
		Children: []models.Category{},
	}, nil
}

func (s *CategoryService) FindAll(ctx context.Context) ([]models.CategoryDetail, error) {
	categories, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Category, len(categories))
	childrenOf := make(map[string][]models.Category)
	for _, c := range categories {
		byID[c.ID] = c
		if c.ParentID != "" {
			childrenOf[c.ParentID] = append(childrenOf[c.ParentID], c)
		}
	}

	details := make([]models.CategoryDetail, 0, len(categories))
	for _, c := range categories {
		detail := models.CategoryDetail{Category: c, Children: childrenOf[c.ID]}
		if detail.Children == nil {
			detail.Children = []models.Category{}
		}
		if p, ok := byID[c.ParentID]; ok {
			parent := p
			detail.Parent = &parent
		}
		count, err := s.Questions.CountByCategory(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		detail.QuestionCount = count
		details = append(details, detail)
	}
	return details, nil
}

func (s *CategoryService) FindTree(ctx context.Context) ([]*models.CategoryNode, error) {
	categories, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTree(categories), nil
}

func (s *CategoryService) FindOne(ctx context.Context, id string) (*models.CategoryDetail, error) {
	category, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, asNotFound(err, "category not found")
	}

	detail := &models.CategoryDetail{Category: *category, Children: []models.Category{}}
	if category.ParentID != "" {
		if parent, err := s.Repo.FindByID(ctx, category.ParentID); err == nil {
			detail.Parent = parent
		}
	}
	children, err := s.Repo.FindByParent(ctx, id)
	if err != nil {
		return nil, err
	}
	if children != nil {
		detail.Children = children
	}
	count, err := s.Questions.CountByCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.QuestionCount = count
	return detail, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, patch CategoryPatch) (*models.CategoryDetail, error) {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return nil, asNotFound(err, "category not found")
	}

	update := bson.M{"updated_at": time.Now()}
	if patch.Name != nil {
		update["name"] = *patch.Name
	}
	if patch.ParentID != nil {
		newParent := *patch.ParentID
		if newParent != "" {
			if newParent == id {
				return nil, apperr.InvalidRequest("category cannot be its own parent")
			}
			if _, err := s.Repo.FindByID(ctx, newParent); err != nil {
				return nil, asNotFound(err, "parent category not found")
			}
			categories, err := s.Repo.FindAll(ctx)
			if err != nil {
				return nil, err
			}
			parentOf := make(map[string]string, len(categories))
			for _, c := range categories {
				parentOf[c.ID] = c.ParentID
			}
			if WouldCreateCycle(parentOf, id, newParent) {
				return nil, apperr.InvalidRequest("reparenting would create a category cycle")
			}
		}
		update["parent_id"] = newParent
	}

	if err := s.Repo.Update(ctx, id, update); err != nil {
		return nil, err
	}
	return s.FindOne(ctx, id)
}

// Remove deletes a category. The policy is restrict: a category that
// still has children or questions cannot be deleted.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return asNotFound(err, "category not found")
	}

	children, err := s.Repo.FindByParent(ctx, id)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return apperr.InvalidRequest("category has %d subcategories; move or delete them first", len(children))
	}
	count, err := s.Questions.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperr.InvalidRequest("category has %d questions; move or delete them first", count)
	}

	return s.Repo.Delete(ctx, id)
}

// BuildTree materializes the category forest from a flat list: roots
// sorted by name ascending, children in storage order, expanded two
// levels below each root.
func BuildTree(categories []models.Category) []*models.CategoryNode {
	childrenOf := make(map[string][]models.Category)
	var roots []models.Category
	for _, c := range categories {
		if c.ParentID == "" {
			roots = append(roots, c)
		} else {
			childrenOf[c.ParentID] = append(childrenOf[c.ParentID], c)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })

	nodes := make([]*models.CategoryNode, 0, len(roots))
	for _, root := range roots {
		nodes = append(nodes, buildNode(root, childrenOf, 2))
	}
	return nodes
}

func buildNode(c models.Category, childrenOf map[string][]models.Category, depth int) *models.CategoryNode {
	node := &models.CategoryNode{Category: c, Children: []*models.CategoryNode{}}
	if depth == 0 {
		return node
	}
	for _, child := range childrenOf[c.ID] {
		node.Children = append(node.Children, buildNode(child, childrenOf, depth-1))
	}
	return node
}

// WouldCreateCycle walks the ancestor chain starting at newParentID and
// reports whether id reappears. A visited set bounds the walk even if
// the stored data already contains a cycle.
func WouldCreateCycle(parentOf map[string]string, id, newParentID string) bool {
	visited := make(map[string]bool)
	for current := newParentID; current != ""; current = parentOf[current] {
		if current == id {
			return true
		}
		if visited[current] {
			return false
		}
		visited[current] = true
	}
	return false
}

// asNotFound maps a missing-document error to the NotFound kind; other
// storage errors pass through untouched.
func asNotFound(err error, msg string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return apperr.NotFound("%s", msg)
	}
	return err
}
