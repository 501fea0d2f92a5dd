package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// TagRepository manages task tags.
type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

func (r *TagRepository) ListForOwner(ctx context.Context, ownerID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) FindByIDForOwner(ctx context.Context, id, ownerID uint) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindAllByIDsForOwner drops ids the owner does not hold; attaching someone
// else's tag to a task silently does nothing.
func (r *TagRepository) FindAllByIDsForOwner(ctx context.Context, ids []uint, ownerID uint) ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.WithContext(ctx).
		Where("id IN ? AND user_id = ?", ids, ownerID).
		Find(&tags).Error
	if err != nil {
		return nil, fmt.Errorf("find tags by ids: %w", err)
	}
	return tags, nil
}

func (r *TagRepository) ExistsByNameForOwner(ctx context.Context, name string, ownerID, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Tag{}).
		Where("user_id = ? AND name = ?", ownerID, name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("count tags: %w", err)
	}
	return count > 0, nil
}

func (r *TagRepository) Save(ctx context.Context, tag *model.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		return fmt.Errorf("save tag: %w", err)
	}
	return nil
}

func (r *TagRepository) DeleteForOwner(ctx context.Context, id, ownerID uint) error {
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Tag{}).Error
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return nil
}
