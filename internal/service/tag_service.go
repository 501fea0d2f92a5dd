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

const defaultTagColor = "#6B7280"

// UpdateTagInput is a partial update: nil fields stay untouched.
type UpdateTagInput struct {
	Name  *string
	Color *string
}

// TagService manages the owner's tag collection. Structurally a sibling of
// CategoryService; the delete guard counts join rows instead of tasks.
type TagService struct {
	tags  *repository.TagRepository
	tasks *repository.TaskRepository
}

func NewTagService(tags *repository.TagRepository, tasks *repository.TaskRepository) *TagService {
	return &TagService{tags: tags, tasks: tasks}
}

func (s *TagService) List(ctx context.Context, ownerID uint) ([]model.Tag, error) {
	return s.tags.ListForOwner(ctx, ownerID)
}

func (s *TagService) Get(ctx context.Context, id, ownerID uint) (*model.Tag, error) {
	return s.find(ctx, id, ownerID)
}

func (s *TagService) Create(ctx context.Context, ownerID uint, name, color string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrInvalid)
	}

	taken, err := s.tags.ExistsByNameForOwner(ctx, name, ownerID, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("tag %q: %w", name, ErrConflict)
	}

	tag := model.Tag{UserID: ownerID, Name: name, Color: color}
	if tag.Color == "" {
		tag.Color = defaultTagColor
	}

	if err := s.tags.Create(ctx, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) Update(ctx context.Context, id, ownerID uint, input UpdateTagInput) (*model.Tag, error) {
	tag, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("name is required: %w", ErrInvalid)
		}
		taken, err := s.tags.ExistsByNameForOwner(ctx, name, ownerID, tag.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, fmt.Errorf("tag %q: %w", name, ErrConflict)
		}
		tag.Name = name
	}
	if input.Color != nil {
		tag.Color = *input.Color
	}

	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

func (s *TagService) Delete(ctx context.Context, id, ownerID uint) error {
	tag, err := s.find(ctx, id, ownerID)
	if err != nil {
		return err
	}

	count, err := s.tasks.CountForTag(ctx, tag.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete tag with existing tasks: %w", ErrHasDependents)
	}

	return s.tags.DeleteForOwner(ctx, tag.ID, ownerID)
}

func (s *TagService) find(ctx context.Context, id, ownerID uint) (*model.Tag, error) {
	tag, err := s.tags.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return tag, nil
}
