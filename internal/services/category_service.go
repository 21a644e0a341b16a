package services

import (
	"context"
	"fmt"
	"log/slog"

	"gudang/internal/models"
	"gudang/internal/repositories"
)

// CategoryInput is the writable shape of a category. Nil fields are absent
// from the request.
type CategoryInput struct {
	Name        *string `json:"name" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
}

// CategoryService handles business logic related to categories.
type CategoryService struct {
	repo repositories.CategoryRepository
	log  *slog.Logger
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo repositories.CategoryRepository, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo: repo,
		log:  log.With(slog.String("component", "category_service")),
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAll(ctx)
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateCategory validates in and stores a new category.
func (s *CategoryService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if err := validateInput(in, nil); err != nil {
		return nil, err
	}

	category := &models.Category{Name: *in.Name}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "category created", slog.Uint64("category_id", uint64(category.ID)))
	return category, nil
}

// UpdateCategory replaces the category fields. When partial is set, an absent
// name keeps its stored value. An absent description is always kept.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, in CategoryInput, partial bool) (*models.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if partial && in.Name == nil {
		name := category.Name
		in.Name = &name
	}
	if err := validateInput(in, nil); err != nil {
		return nil, err
	}

	category.Name = *in.Name
	if in.Description != nil {
		category.Description = *in.Description
	}
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}
	return category, nil
}

// DeleteCategory deletes a category; its products stay, uncategorised.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "category deleted", slog.Uint64("category_id", uint64(id)))
	return nil
}
