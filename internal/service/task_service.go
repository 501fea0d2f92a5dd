package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// CreateTaskInput carries the fields accepted on task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	Priority    *model.TaskPriority
	DueDate     *time.Time
	CategoryID  *uint
	TagIDs      []uint
}

// UpdateTaskInput is a partial update: nil fields stay untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *model.TaskPriority
	DueDate     *time.Time
	CategoryID  *uint
	TagIDs      []uint
}

// BulkOperation names the batch mutations tasks support.
type BulkOperation string

const (
	BulkDelete         BulkOperation = "DELETE"
	BulkComplete       BulkOperation = "COMPLETE"
	BulkMoveToCategory BulkOperation = "MOVE_TO_CATEGORY"
)

// TaskPage is one page of list results plus paging metadata.
type TaskPage struct {
	Tasks      []model.Task `json:"tasks"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
	Total      int64        `json:"total"`
	TotalPages int          `json:"totalPages"`
}

// TaskService wraps task lifecycle logic.
type TaskService struct {
	tasks      *repository.TaskRepository
	categories *repository.CategoryRepository
	tags       *repository.TagRepository
}

func NewTaskService(tasks *repository.TaskRepository, categories *repository.CategoryRepository, tags *repository.TagRepository) *TaskService {
	return &TaskService{tasks: tasks, categories: categories, tags: tags}
}

func (s *TaskService) Create(ctx context.Context, ownerID uint, input CreateTaskInput) (*model.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", ErrInvalid)
	}

	task := model.Task{
		UserID:      ownerID,
		Title:       title,
		Description: input.Description,
		Status:      model.StatusPending,
		Priority:    model.PriorityMedium,
		DueDate:     input.DueDate,
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}

	if input.CategoryID != nil {
		// Legacy behavior: existence check only, no ownership check on create.
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d: %w", *input.CategoryID, ErrNotFound)
			}
			return nil, err
		}
		task.CategoryID = input.CategoryID
	}

	if len(input.TagIDs) > 0 {
		tags, err := s.tags.FindAllByIDsForOwner(ctx, input.TagIDs, ownerID)
		if err != nil {
			return nil, err
		}
		task.Tags = tags
	}

	if err := s.tasks.Create(ctx, &task); err != nil {
		return nil, err
	}
	return s.tasks.FindByIDForOwner(ctx, task.ID, ownerID)
}

func (s *TaskService) List(ctx context.Context, ownerID uint, filter repository.TaskFilter) (*TaskPage, error) {
	if filter.Size <= 0 {
		filter.Size = 10
	}
	if filter.Size > 100 {
		filter.Size = 100
	}
	if filter.Page < 0 {
		filter.Page = 0
	}

	tasks, total, err := s.tasks.List(ctx, ownerID, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.Size) - 1) / int64(filter.Size))
	return &TaskPage{
		Tasks:      tasks,
		Page:       filter.Page,
		Size:       filter.Size,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *TaskService) Get(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	return s.find(ctx, id, ownerID)
}

func (s *TaskService) Update(ctx context.Context, id, ownerID uint, input UpdateTaskInput) (*model.Task, error) {
	task, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("title is required: %w", ErrInvalid)
		}
		task.Title = title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}
	if input.CategoryID != nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d: %w", *input.CategoryID, ErrNotFound)
			}
			return nil, err
		}
		task.CategoryID = input.CategoryID
	}

	if input.TagIDs != nil {
		tags, err := s.tags.FindAllByIDsForOwner(ctx, input.TagIDs, ownerID)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.SaveWithTags(ctx, task, tags); err != nil {
			return nil, err
		}
	} else if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}

	return s.tasks.FindByIDForOwner(ctx, task.ID, ownerID)
}

// Delete soft-deletes: the row stays, the status flips. Calling it again on
// an already-deleted task is a no-op success.
func (s *TaskService) Delete(ctx context.Context, id, ownerID uint) error {
	task, err := s.find(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if task.Status == model.StatusDeleted {
		return nil
	}
	applyStatus(task, model.StatusDeleted, time.Now())
	return s.tasks.Save(ctx, task)
}

// SetStatus transitions the task; completedAt is coupled to COMPLETED and
// cleared on every other status.
func (s *TaskService) SetStatus(ctx context.Context, id, ownerID uint, status model.TaskStatus) (*model.Task, error) {
	task, err := s.find(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	applyStatus(task, status, time.Now())
	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Bulk applies one operation to many tasks. Ids the owner does not hold are
// skipped, not errors; the count covers only rows actually mutated. The
// mutation itself is all-or-nothing: one transaction covers every row.
func (s *TaskService) Bulk(ctx context.Context, ownerID uint, op BulkOperation, taskIDs []uint, categoryID *uint) (int, error) {
	switch op {
	case BulkDelete, BulkComplete, BulkMoveToCategory:
	default:
		return 0, fmt.Errorf("unsupported bulk operation %q: %w", op, ErrInvalid)
	}
	if len(taskIDs) == 0 {
		return 0, fmt.Errorf("taskIds is required: %w", ErrInvalid)
	}

	var category *model.Category
	if op == BulkMoveToCategory {
		if categoryID == nil {
			return 0, fmt.Errorf("categoryId is required for move: %w", ErrInvalid)
		}
		var err error
		category, err = s.categories.FindByID(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("category %d: %w", *categoryID, ErrNotFound)
			}
			return 0, err
		}
	}

	tasks, err := s.tasks.FindAllByIDsForOwner(ctx, taskIDs, ownerID)
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	now := time.Now()
	for i := range tasks {
		task := &tasks[i]
		switch op {
		case BulkDelete:
			applyStatus(task, model.StatusDeleted, now)
		case BulkComplete:
			applyStatus(task, model.StatusCompleted, now)
		case BulkMoveToCategory:
			task.CategoryID = &category.ID
		}
	}

	if err := s.tasks.SaveAll(ctx, tasks); err != nil {
		return 0, err
	}
	return len(tasks), nil
}

// Export renders every task the owner holds. JSON is the only format.
func (s *TaskService) Export(ctx context.Context, ownerID uint, format string) (string, error) {
	if !strings.EqualFold(format, "json") {
		return "", fmt.Errorf("unsupported export format %q: %w", format, ErrInvalid)
	}
	tasks, err := s.tasks.FindAllForOwner(ctx, ownerID)
	if err != nil {
		return "", err
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", fmt.Errorf("encode tasks: %w", err)
	}
	return string(data), nil
}

func (s *TaskService) find(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	task, err := s.tasks.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		// Absent and owned-by-someone-else look the same to the caller.
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return task, nil
}

func applyStatus(task *model.Task, status model.TaskStatus, now time.Time) {
	task.Status = status
	if status == model.StatusCompleted {
		task.CompletedAt = &now
	} else {
		task.CompletedAt = nil
	}
}
