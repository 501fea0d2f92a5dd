package service

import (
	"context"

	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// UpdateProfileInput is a partial update: nil fields stay untouched.
type UpdateProfileInput struct {
	Name      *string
	FirstName *string
	LastName  *string
	AvatarURL *string
}

// UpdateSettingsInput covers the full settings row, channels included.
type UpdateSettingsInput struct {
	Theme                *model.Theme
	NotificationsEnabled *bool
	Timezone             *string
	Language             *string
	DateFormat           *string
	TimeFormat           *string
	EmailNotifications   *bool
	PushNotifications    *bool
	TaskReminders        *bool
	DailyDigest          *bool
	WeeklyReport         *bool
}

// UserService handles profile and settings operations for the
// authenticated user; the middleware has already resolved the row.
type UserService struct {
	users    *repository.UserRepository
	settings *repository.SettingsRepository
}

func NewUserService(users *repository.UserRepository, settings *repository.SettingsRepository) *UserService {
	return &UserService{users: users, settings: settings}
}

func (s *UserService) UpdateProfile(ctx context.Context, user *model.User, input UpdateProfileInput) (*model.User, error) {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and every owned row atomically.
func (s *UserService) DeleteAccount(ctx context.Context, ownerID uint) error {
	return s.users.DeleteCascade(ctx, ownerID)
}

func (s *UserService) GetSettings(ctx context.Context, ownerID uint) (*model.UserSettings, error) {
	return s.settings.GetOrCreate(ctx, ownerID)
}

func (s *UserService) UpdateSettings(ctx context.Context, ownerID uint, input UpdateSettingsInput) (*model.UserSettings, error) {
	settings, err := s.settings.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		settings.Theme = *input.Theme
	}
	if input.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *input.NotificationsEnabled
	}
	if input.Timezone != nil {
		settings.Timezone = *input.Timezone
	}
	if input.Language != nil {
		settings.Language = *input.Language
	}
	if input.DateFormat != nil {
		settings.DateFormat = *input.DateFormat
	}
	if input.TimeFormat != nil {
		settings.TimeFormat = *input.TimeFormat
	}
	if input.EmailNotifications != nil {
		settings.EmailNotifications = *input.EmailNotifications
	}
	if input.PushNotifications != nil {
		settings.PushNotifications = *input.PushNotifications
	}
	if input.TaskReminders != nil {
		settings.TaskReminders = *input.TaskReminders
	}
	if input.DailyDigest != nil {
		settings.DailyDigest = *input.DailyDigest
	}
	if input.WeeklyReport != nil {
		settings.WeeklyReport = *input.WeeklyReport
	}

	if err := s.settings.Save(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}
