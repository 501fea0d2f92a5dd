package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"todoapp/internal/model"
	"todoapp/internal/repository"
)

const defaultCategoryColor = "#3B82F6"

// CreateCategoryInput carries the fields accepted on category creation.
type CreateCategoryInput struct {
	Name        string
	Color       string
	Description string
}

// UpdateCategoryInput is a partial update: nil fields stay untouched.
type UpdateCategoryInput struct {
	Name        *string
	Color       *string
	Description *string
}

// CategoryService manages the owner's category collection.
type CategoryService struct {
	categories *repository.CategoryRepository
	tasks      *repository.TaskRepository
}

func NewCategoryService(categories *repository.CategoryRepository, tasks *repository.TaskRepository) *CategoryService {
	return &CategoryService{categories: categories, tasks: tasks}
}

func (s *CategoryService) List(ctx context.Context, ownerID uint) ([]model.Category, error) {
	return s.categories.ListForOwner(ctx, ownerID)
}

func (s *CategoryService) Get(ctx context.Context, id, ownerID uint) (*model.Category, error) {
	return s.find(ctx, id, ownerID)
}

func (s *CategoryService) Create(ctx context.Context, ownerID uint, input CreateCategoryInput) (*model.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalid)
	}

	taken, err := s.categories.ExistsByNameForOwner(ctx, name, ownerID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("category %q: %w", name, ErrConflict)
	}

	category := model.Category{
		UserID:      ownerID,
		Name:        name,
		Color:       input.Color,
		Description: input.Description,
	}
	if category.Color == "" {
		category.Color = defaultCategoryColor
	}

	if err := s.categories.Create(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id, ownerID uint, input UpdateCategoryInput) (*model.Category, error) {
	category, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name is required: %w", ErrInvalid)
		}
		taken, err := s.categories.ExistsByNameForOwner(ctx, name, ownerID, category.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("category %q: %w", name, ErrConflict)
		}
		category.Name = name
	}
	if input.Color != nil {
		category.Color = *input.Color
	}
	if input.Description != nil {
		category.Description = *input.Description
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete hard-deletes, permitted only when no task references the category.
func (s *CategoryService) Delete(ctx context.Context, id, ownerID uint) error {
	category, err := s.find(ctx, id, ownerID)
	if err != nil {
		return err
	}

	count, err := s.tasks.CountForCategory(ctx, category.ID, ownerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category with existing tasks: %w", ErrHasDependents)
	}

	return s.categories.DeleteForOwner(ctx, category.ID, ownerID)
}

func (s *CategoryService) find(ctx context.Context, id, ownerID uint) (*model.Category, error) {
	category, err := s.categories.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return category, nil
}
