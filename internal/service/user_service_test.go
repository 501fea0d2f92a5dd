package service_test

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"todoapp/internal/model"
	"todoapp/internal/service"
)

func TestUpdateProfilePartial(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	ctx := context.Background()

	first := "Ada"
	updated, err := e.users.UpdateProfile(ctx, owner, service.UpdateProfileInput{FirstName: &first})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.FirstName != "Ada" {
		t.Errorf("firstName = %q", updated.FirstName)
	}
	if updated.Name != "Test User" {
		t.Errorf("name changed by partial update: %q", updated.Name)
	}

	persisted, err := e.userRepo.FindByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if persisted.FirstName != "Ada" {
		t.Errorf("firstName not persisted: %q", persisted.FirstName)
	}
}

func TestUserSettingsLazyCreateAndUpdate(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	ctx := context.Background()

	settings, err := e.users.GetSettings(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.Theme != model.ThemeLight || settings.Timezone != "UTC" ||
		settings.Language != "en" || settings.DateFormat != "MM/DD/YYYY" || settings.TimeFormat != "12h" {
		t.Errorf("defaults = %+v", settings)
	}

	dark := model.ThemeDark
	tz := "Europe/Berlin"
	updated, err := e.users.UpdateSettings(ctx, owner.ID, service.UpdateSettingsInput{
		Theme:    &dark,
		Timezone: &tz,
	})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.Theme != model.ThemeDark || updated.Timezone != "Europe/Berlin" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Language != "en" {
		t.Errorf("partial update touched language: %q", updated.Language)
	}

	// Reading again returns the same row, not fresh defaults.
	again, err := e.users.GetSettings(ctx, owner.ID)
	if err != nil {
		t.Fatalf("GetSettings again: %v", err)
	}
	if again.ID != settings.ID || again.Theme != model.ThemeDark {
		t.Errorf("settings row recreated: %+v", again)
	}
}

func TestDeleteAccountCascade(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	owner := e.mustUser(t, "a@example.com")
	other := e.mustUser(t, "b@example.com")
	ctx := context.Background()

	category := e.mustCategory(t, owner.ID, "Work")
	tag := e.mustTag(t, owner.ID, "urgent")
	e.mustTask(t, owner.ID, service.CreateTaskInput{
		Title:      "mine",
		CategoryID: &category.ID,
		TagIDs:     []uint{tag.ID},
	})
	if _, err := e.users.GetSettings(ctx, owner.ID); err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if err := e.notifications.Append(ctx, owner.ID, "reminder", "hello", "body"); err != nil {
		t.Fatalf("Append: %v", err)
	}

	kept := e.mustTask(t, other.ID, service.CreateTaskInput{Title: "theirs"})

	if err := e.users.DeleteAccount(ctx, owner.ID); err != nil {
		t.Fatalf("DeleteAccount: %v", err)
	}

	if _, err := e.userRepo.FindByID(ctx, owner.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("user row survived: %v", err)
	}
	for table, count := range ownedRowCounts(t, e, owner.ID) {
		if count != 0 {
			t.Errorf("%s rows survived cascade: %d", table, count)
		}
	}

	// The other user is untouched.
	if _, err := e.taskRepo.FindByIDForOwner(ctx, kept.ID, other.ID); err != nil {
		t.Errorf("other user's task gone: %v", err)
	}
}

func ownedRowCounts(t *testing.T, e *env, ownerID uint) map[string]int64 {
	t.Helper()

	counts := make(map[string]int64)
	for _, table := range []string{"tasks", "categories", "tags", "notifications", "user_settings", "verification_tokens"} {
		var n int64
		if err := e.db.Table(table).Where("user_id = ?", ownerID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		counts[table] = n
	}
	return counts
}
