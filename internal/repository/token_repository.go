package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// TokenRepository manages single-use verification tokens.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.VerificationToken) error {
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return fmt.Errorf("create verification token: %w", err)
	}
	return nil
}

// FindByValue looks a token up by its opaque value and purpose. Expiry and
// single-use checks happen in the service, which distinguishes expired from
// unknown.
func (r *TokenRepository) FindByValue(ctx context.Context, value string, purpose model.TokenPurpose) (*model.VerificationToken, error) {
	var token model.VerificationToken
	err := r.db.WithContext(ctx).
		Where("token = ? AND purpose = ?", value, purpose).
		First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepository) MarkUsed(ctx context.Context, token *model.VerificationToken, usedAt time.Time) error {
	token.UsedAt = &usedAt
	if err := r.db.WithContext(ctx).Save(token).Error; err != nil {
		return fmt.Errorf("mark token used: %w", err)
	}
	return nil
}
