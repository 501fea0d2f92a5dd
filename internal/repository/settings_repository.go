package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// SettingsRepository manages the one-to-one user settings rows.
type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// GetOrCreate returns the owner's settings, creating the default row on
// first access. Callers never see a missing-settings state.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, ownerID uint) (*model.UserSettings, error) {
	var settings model.UserSettings
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ?", ownerID).First(&settings).Error
	switch {
	case err == nil:
		return &settings, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		defaults := model.DefaultSettings(ownerID)
		if err := db.Create(defaults).Error; err != nil {
			return nil, fmt.Errorf("create default settings: %w", err)
		}
		return defaults, nil
	default:
		return nil, fmt.Errorf("find settings: %w", err)
	}
}

func (r *SettingsRepository) Save(ctx context.Context, settings *model.UserSettings) error {
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
