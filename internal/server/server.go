package server

import (
	"log/slog"
	"net/http"
	"time"

	"todoapp/internal/config"
	"todoapp/internal/repository"
	"todoapp/internal/service"
)

// Deps bundles the services the HTTP adapter dispatches to.
type Deps struct {
	Auth          *service.AuthService
	Users         *service.UserService
	Tasks         *service.TaskService
	Categories    *service.CategoryService
	Tags          *service.TagService
	Dashboard     *service.DashboardService
	Notifications *service.NotificationService
	Health        *repository.Health
}

// Server is the REST adapter. It authenticates, validates and dispatches;
// all business rules live in the services.
type Server struct {
	log     *slog.Logger
	timeout time.Duration
	deps    Deps
}

func New(log *slog.Logger, cfg config.HTTPConfig, deps Deps) *Server {
	return &Server{log: log, timeout: cfg.Timeout, deps: deps}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// auth
	mux.Handle("POST /api/auth/register", s.public(s.handleRegister))
	mux.Handle("POST /api/auth/login", s.public(s.handleLogin))
	mux.Handle("POST /api/auth/refresh", s.public(s.handleRefresh))
	mux.Handle("POST /api/auth/logout", s.public(s.handleLogout))
	mux.Handle("POST /api/auth/forgot-password", s.public(s.handleForgotPassword))
	mux.Handle("POST /api/auth/reset-password", s.public(s.handleResetPassword))
	mux.Handle("POST /api/auth/verify-email", s.public(s.handleVerifyEmail))

	// users
	mux.Handle("GET /api/users/profile", s.authed(s.handleGetProfile))
	mux.Handle("PUT /api/users/profile", s.authed(s.handleUpdateProfile))
	mux.Handle("DELETE /api/users/account", s.authed(s.handleDeleteAccount))
	mux.Handle("GET /api/users/settings", s.authed(s.handleGetSettings))
	mux.Handle("PUT /api/users/settings", s.authed(s.handleUpdateSettings))

	// tasks
	mux.Handle("GET /api/tasks", s.authed(s.handleListTasks))
	mux.Handle("POST /api/tasks", s.authed(s.handleCreateTask))
	mux.Handle("GET /api/tasks/export", s.authed(s.handleExportTasks))
	mux.Handle("POST /api/tasks/bulk", s.authed(s.handleBulkTasks))
	mux.Handle("GET /api/tasks/{id}", s.authed(s.handleGetTask))
	mux.Handle("PUT /api/tasks/{id}", s.authed(s.handleUpdateTask))
	mux.Handle("DELETE /api/tasks/{id}", s.authed(s.handleDeleteTask))
	mux.Handle("PATCH /api/tasks/{id}/status", s.authed(s.handleTaskStatus))

	// categories
	mux.Handle("GET /api/categories", s.authed(s.handleListCategories))
	mux.Handle("POST /api/categories", s.authed(s.handleCreateCategory))
	mux.Handle("GET /api/categories/{id}", s.authed(s.handleGetCategory))
	mux.Handle("PUT /api/categories/{id}", s.authed(s.handleUpdateCategory))
	mux.Handle("DELETE /api/categories/{id}", s.authed(s.handleDeleteCategory))

	// tags
	mux.Handle("GET /api/tags", s.authed(s.handleListTags))
	mux.Handle("POST /api/tags", s.authed(s.handleCreateTag))
	mux.Handle("GET /api/tags/{id}", s.authed(s.handleGetTag))
	mux.Handle("PUT /api/tags/{id}", s.authed(s.handleUpdateTag))
	mux.Handle("DELETE /api/tags/{id}", s.authed(s.handleDeleteTag))

	// dashboard
	mux.Handle("GET /api/dashboard/statistics", s.authed(s.handleStatistics))
	mux.Handle("GET /api/dashboard/today", s.authed(s.handleTodayTasks))
	mux.Handle("GET /api/dashboard/upcoming", s.authed(s.handleUpcomingTasks))
	mux.Handle("GET /api/dashboard/overdue", s.authed(s.handleOverdueTasks))
	mux.Handle("GET /api/dashboard/activity", s.authed(s.handleActivity))

	// notifications
	mux.Handle("GET /api/notifications", s.authed(s.handleListNotifications))
	mux.Handle("PUT /api/notifications/read-all", s.authed(s.handleMarkAllRead))
	mux.Handle("PUT /api/notifications/{id}/read", s.authed(s.handleMarkRead))
	mux.Handle("GET /api/notifications/settings", s.authed(s.handleGetNotificationSettings))
	mux.Handle("PUT /api/notifications/settings", s.authed(s.handleUpdateNotificationSettings))

	// health
	mux.Handle("GET /health", http.HandlerFunc(s.handleHealth))
	mux.Handle("GET /health/database", s.public(s.handleDatabaseHealth))

	return s.logRequests(mux)
}
