package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"todoapp/internal/model"
)

// UserRepository handles CRUD for users. Users are the only entity looked
// up without an owner scope; they are the owners.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// CreateWithOnboarding inserts the user together with their email
// verification token and welcome notification in one transaction, so a
// failed onboarding write never leaves a registered user behind. The token
// and notification receive the new user's id.
func (r *UserRepository) CreateWithOnboarding(ctx context.Context, user *model.User, token *model.VerificationToken, welcome *model.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		token.UserID = user.ID
		if err := tx.Create(token).Error; err != nil {
			return err
		}
		welcome.UserID = user.ID
		return tx.Create(welcome).Error
	})
	if err != nil {
		return fmt.Errorf("create user with onboarding: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

// DeleteCascade removes the user together with every owned row in one
// transaction, so no orphaned ownership references survive. These are the
// only full-table-scan style deletes in the repository layer.
func (r *UserRepository) DeleteCascade(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM task_tags WHERE task_id IN (SELECT id FROM tasks WHERE user_id = ?)",
			userID,
		).Error; err != nil {
			return fmt.Errorf("delete task tags: %w", err)
		}
		for _, m := range []any{
			&model.Task{},
			&model.Category{},
			&model.Tag{},
			&model.Notification{},
			&model.UserSettings{},
			&model.VerificationToken{},
		} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return fmt.Errorf("delete owned rows: %w", err)
			}
		}
		if err := tx.Delete(&model.User{}, userID).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete account %d: %w", userID, err)
	}
	return nil
}
