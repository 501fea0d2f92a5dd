package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// NotificationSettings is the channel subset of UserSettings exposed under
// /api/notifications/settings. Pointer fields make updates partial.
type NotificationSettings struct {
	EmailNotifications *bool `json:"emailNotifications,omitempty"`
	PushNotifications  *bool `json:"pushNotifications,omitempty"`
	TaskReminders      *bool `json:"taskReminders,omitempty"`
	DailyDigest        *bool `json:"dailyDigest,omitempty"`
	WeeklyReport       *bool `json:"weeklyReport,omitempty"`
}

// NotificationService manages the inbox and the channel preferences.
type NotificationService struct {
	notifications *repository.NotificationRepository
	settings      *repository.SettingsRepository
}

func NewNotificationService(notifications *repository.NotificationRepository, settings *repository.SettingsRepository) *NotificationService {
	return &NotificationService{notifications: notifications, settings: settings}
}

func (s *NotificationService) List(ctx context.Context, ownerID uint) ([]model.Notification, error) {
	return s.notifications.ListForOwner(ctx, ownerID)
}

// Append adds a notification to a user's inbox. The inbox is append-only;
// nothing ever edits a delivered message.
func (s *NotificationService) Append(ctx context.Context, userID uint, kind, title, message string) error {
	return s.notifications.Create(ctx, &model.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	})
}

func (s *NotificationService) MarkRead(ctx context.Context, id, ownerID uint) (*model.Notification, error) {
	notification, err := s.notifications.FindByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("notification %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if notification.Read {
		return notification, nil
	}
	notification.Read = true
	if err := s.notifications.Save(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, ownerID uint) (int64, error) {
	return s.notifications.MarkAllRead(ctx, ownerID)
}

func (s *NotificationService) GetSettings(ctx context.Context, ownerID uint) (*model.UserSettings, error) {
	return s.settings.GetOrCreate(ctx, ownerID)
}

func (s *NotificationService) UpdateSettings(ctx context.Context, ownerID uint, input NotificationSettings) (*model.UserSettings, error) {
	settings, err := s.settings.GetOrCreate(ctx, ownerID)
	if err != nil {
		return nil, err
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
