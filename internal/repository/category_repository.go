package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// CategoryRepository manages task categories.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListForOwner(ctx context.Context, ownerID uint) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *CategoryRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByID looks up a category without an owner scope. Task creation keeps
// the legacy existence-only check, so this stays around; nothing else may
// use it.
func (r *CategoryRepository) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	var category model.Category
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// ExistsByNameForOwner reports a name collision within the owner's scope,
// ignoring the row with excludeID (zero means exclude nothing).
func (r *CategoryRepository) ExistsByNameForOwner(ctx context.Context, name string, ownerID, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Category{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count categories: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// DeleteForOwner hard-deletes the row; the service guards against dangling
// task references before calling this.
func (r *CategoryRepository) DeleteForOwner(ctx context.Context, id, ownerID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Category{}).Error
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
