package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/model"
	"todoapp/internal/repository"
	"todoapp/internal/service"
)

type env struct {
	db            *gorm.DB
	userRepo      *repository.UserRepository
	taskRepo      *repository.TaskRepository
	tokenRepo     *repository.TokenRepository
	noteRepo      *repository.NotificationRepository
	auth          *service.AuthService
	users         *service.UserService
	tasks         *service.TaskService
	categories    *service.CategoryService
	tags          *service.TagService
	dashboard     *service.DashboardService
	notifications *service.NotificationService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := repository.NewDB(dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A second pooled connection would see its own empty in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	tm := auth.NewTokenManager(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	mailer := service.NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	notifications := service.NewNotificationService(noteRepo, settingsRepo)
	return &env{
		db:            db,
		userRepo:      userRepo,
		taskRepo:      taskRepo,
		tokenRepo:     tokenRepo,
		noteRepo:      noteRepo,
		auth:          service.NewAuthService(userRepo, tokenRepo, tm, mailer),
		users:         service.NewUserService(userRepo, settingsRepo),
		tasks:         service.NewTaskService(taskRepo, categoryRepo, tagRepo),
		categories:    service.NewCategoryService(categoryRepo, taskRepo),
		tags:          service.NewTagService(tagRepo, taskRepo),
		dashboard:     service.NewDashboardService(taskRepo),
		notifications: notifications,
	}
}

func (e *env) mustUser(t *testing.T, email string) *model.User {
	t.Helper()

	user := &model.User{Email: email, PasswordHash: "x", Name: "Test User", IsActive: true}
	if err := e.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *env) mustTask(t *testing.T, ownerID uint, input service.CreateTaskInput) *model.Task {
	t.Helper()

	task, err := e.tasks.Create(context.Background(), ownerID, input)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	return task
}

func (e *env) mustCategory(t *testing.T, ownerID uint, name string) *model.Category {
	t.Helper()

	category, err := e.categories.Create(context.Background(), ownerID, service.CreateCategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	return category
}

func (e *env) mustTag(t *testing.T, ownerID uint, name string) *model.Tag {
	t.Helper()

	tag, err := e.tags.Create(context.Background(), ownerID, name, "")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func priorityPtr(p model.TaskPriority) *model.TaskPriority {
	return &p
}
