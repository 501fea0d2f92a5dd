package service_test

import (
	"context"
	"errors"
	"testing"

	"todoapp/internal/service"
)

func TestNotificationListNewestFirst(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		if err := e.notifications.Append(ctx, owner.ID, "reminder", title, "body"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	inbox, err := e.notifications.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(inbox) != 3 {
		t.Fatalf("inbox size = %d, want 3", len(inbox))
	}
	for i := 1; i < len(inbox); i++ {
		if inbox[i-1].CreatedAt.Before(inbox[i].CreatedAt) {
			t.Errorf("inbox not newest first at %d: %v before %v", i, inbox[i-1].CreatedAt, inbox[i].CreatedAt)
		}
	}
}

func TestMarkReadOwnership(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	other := e.mustUser(t, "b@example.com")
	ctx := context.Background()

	if err := e.notifications.Append(ctx, owner.ID, "reminder", "hello", "body"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	inbox, err := e.notifications.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := e.notifications.MarkRead(ctx, inbox[0].ID, other.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("foreign markRead err = %v, want ErrNotFound", err)
	}

	read, err := e.notifications.MarkRead(ctx, inbox[0].ID, owner.ID)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if !read.Read {
		t.Errorf("notification not marked read")
	}

	// Idempotent on repeat.
	again, err := e.notifications.MarkRead(ctx, inbox[0].ID, owner.ID)
	if err != nil {
		t.Fatalf("MarkRead repeat: %v", err)
	}
	if !again.Read {
		t.Errorf("repeat markRead flipped the flag back")
	}
}

func TestMarkAllReadCountsOnlyUnread(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	ctx := context.Background()

	for _, title := range []string{"one", "two", "three"} {
		if err := e.notifications.Append(ctx, owner.ID, "reminder", title, "body"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	inbox, err := e.notifications.List(ctx, owner.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if _, err := e.notifications.MarkRead(ctx, inbox[0].ID, owner.ID); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}

	count, err := e.notifications.MarkAllRead(ctx, owner.ID)
	if err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if count != 2 {
		t.Errorf("markAllRead count = %d, want 2", count)
	}

	count, err = e.notifications.MarkAllRead(ctx, owner.ID)
	if err != nil {
		t.Fatalf("MarkAllRead repeat: %v", err)
	}
	if count != 0 {
		t.Errorf("repeat markAllRead count = %d, want 0", count)
	}
}

func TestNotificationSettingsLazyDefaults(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	ctx := context.Background()

	settings, err := e.notifications.GetSettings(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if !settings.EmailNotifications || !settings.PushNotifications || !settings.TaskReminders || !settings.WeeklyReport {
		t.Errorf("default channels off: %+v", settings)
	}
	if settings.DailyDigest {
		t.Errorf("dailyDigest defaults on, want off")
	}

	off := false
	updated, err := e.notifications.UpdateSettings(ctx, owner.ID, service.NotificationSettings{
		EmailNotifications: &off,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.EmailNotifications {
		t.Errorf("emailNotifications still on")
	}
	if !updated.PushNotifications {
		t.Errorf("partial update touched pushNotifications")
	}
}
