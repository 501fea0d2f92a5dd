package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"todoapp/internal/model"
)

// TaskFilter narrows List results. All set dimensions combine (AND).
type TaskFilter struct {
	Search     string
	Status     *model.TaskStatus
	Priority   *model.TaskPriority
	CategoryID *uint
	Page       int
	Size       int
	SortBy     string
	SortDir    string
}

var taskSortColumns = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"title":     "title",
}

func (f TaskFilter) order() string {
	column, ok := taskSortColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortDir, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}

// TaskRepository handles owner-scoped persistence for tasks. Every lookup
// that crosses a trust boundary takes (id, ownerID), never id alone.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns one page of the owner's tasks plus the unpaged total.
func (r *TaskRepository) List(ctx context.Context, ownerID uint, filter TaskFilter) ([]model.Task, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).Where("user_id = ?", ownerID)

	if s := strings.TrimSpace(filter.Search); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	var tasks []model.Task
	err := query.
		Preload("Category").Preload("Tags").
		Order(filter.order()).
		Offset(filter.Page * filter.Size).
		Limit(filter.Size).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, total, nil
}

// Save persists scalar fields only; tag links go through SaveWithTags.
func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// SaveWithTags persists the scalar fields and swaps the tag set in one
// transaction; a failed tag write rolls the scalar update back too.
func (r *TaskRepository) SaveWithTags(ctx context.Context, task *model.Task, tags []model.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(task).Error; err != nil {
			return err
		}
		return tx.Model(task).Association("Tags").Replace(tags)
	})
	if err != nil {
		return fmt.Errorf("save task with tags: %w", err)
	}
	task.Tags = tags
	return nil
}

// SaveAll persists the given tasks in one transaction: every row updates
// or none does.
func (r *TaskRepository) SaveAll(ctx context.Context, tasks []model.Task) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range tasks {
			if err := tx.Omit(clause.Associations).Save(&tasks[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// FindAllByIDsForOwner silently drops ids the owner does not hold; bulk
// operations are best-effort over the caller's own rows.
func (r *TaskRepository) FindAllByIDsForOwner(ctx context.Context, ids []uint, ownerID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, ownerID).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find tasks by ids: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindAllForOwner(ctx context.Context, ownerID uint) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) CountForOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, ownerID uint, status model.TaskStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND status = ?", ownerID, status).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tasks by status: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) FindOverdue(ctx context.Context, ownerID uint, now time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		Where("user_id = ? AND status = ? AND due_date IS NOT NULL AND due_date < ?", ownerID, model.StatusPending, now).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find overdue tasks: %w", err)
	}
	return tasks, nil
}

// FindDueBetween returns pending tasks with a due date in [from, to).
func (r *TaskRepository) FindDueBetween(ctx context.Context, ownerID uint, from, to time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Preload("Category").Preload("Tags").
		Where("user_id = ? AND status = ? AND due_date >= ? AND due_date < ?", ownerID, model.StatusPending, from, to).
		Order("due_date ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find due tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindCreatedSince(ctx context.Context, ownerID uint, since time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ?", ownerID, since).
		Order("created_at DESC").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("find recent tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) CountCompletedSince(ctx context.Context, ownerID uint, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("user_id = ? AND status = ? AND completed_at >= ?", ownerID, model.StatusCompleted, since).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count completed tasks: %w", err)
	}
	return count, nil
}

// CountForCategory is the explicit reverse query used by the
// delete-if-unused guard; there are no ORM back-references to traverse.
func (r *TaskRepository) CountForCategory(ctx context.Context, categoryID, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("category_id = ? AND user_id = ?", categoryID, ownerID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tasks for category: %w", err)
	}
	return count, nil
}

func (r *TaskRepository) CountForTag(ctx context.Context, tagID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("task_tags").
		Where("tag_id = ?", tagID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count tasks for tag: %w", err)
	}
	return count, nil
}
