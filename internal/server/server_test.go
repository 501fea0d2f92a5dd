package server_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"todoapp/internal/auth"
	"todoapp/internal/config"
	"todoapp/internal/repository"
	"todoapp/internal/server"
	"todoapp/internal/service"
)

func newTestServer(t *testing.T) *httptest.Server {
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
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	tagRepo := repository.NewTagRepository(db)
	noteRepo := repository.NewNotificationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tm := auth.NewTokenManager(config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		RefreshSecret: "refresh-secret-for-tests",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	})
	notifications := service.NewNotificationService(noteRepo, settingsRepo)

	srv := server.New(log, config.HTTPConfig{Timeout: 10 * time.Second}, server.Deps{
		Auth:          service.NewAuthService(userRepo, tokenRepo, tm, service.NewLogMailer(log)),
		Users:         service.NewUserService(userRepo, settingsRepo),
		Tasks:         service.NewTaskService(taskRepo, categoryRepo, tagRepo),
		Categories:    service.NewCategoryService(categoryRepo, taskRepo),
		Tags:          service.NewTagService(tagRepo, taskRepo),
		Dashboard:     service.NewDashboardService(taskRepo),
		Notifications: notifications,
		Health:        repository.NewHealth(db),
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type client struct {
	t     *testing.T
	base  string
	token string
}

func (c *client) do(method, path string, body, out any) int {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			c.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	if err != nil {
		c.t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.t.Fatalf("%s %s: decode response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func registerClient(t *testing.T, ts *httptest.Server, email string) *client {
	t.Helper()

	c := &client{t: t, base: ts.URL}
	var result struct {
		Token string `json:"token"`
	}
	status := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":           email,
		"password":        "secret-pass",
		"confirmPassword": "secret-pass",
		"name":            "Test User",
	}, &result)
	if status != http.StatusOK {
		t.Fatalf("register status = %d", status)
	}
	c.token = result.Token
	return c
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	var created struct {
		ID          uint    `json:"id"`
		Title       string  `json:"title"`
		Status      string  `json:"status"`
		Priority    string  `json:"priority"`
		Overdue     bool    `json:"overdue"`
		CompletedAt *string `json:"completedAt"`
	}
	status := c.do(http.MethodPost, "/api/tasks", map[string]any{
		"title":    "Buy milk",
		"priority": "HIGH",
		"dueDate":  time.Now().AddDate(0, 0, -1).Format(time.RFC3339),
	}, &created)
	if status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if created.Status != "PENDING" || created.Priority != "HIGH" {
		t.Errorf("created = %+v", created)
	}
	if !created.Overdue {
		t.Errorf("task due yesterday not overdue")
	}

	var overdue struct {
		Tasks []struct {
			ID uint `json:"id"`
		} `json:"tasks"`
	}
	if status := c.do(http.MethodGet, "/api/dashboard/overdue", nil, &overdue); status != http.StatusOK {
		t.Fatalf("overdue status = %d", status)
	}
	if len(overdue.Tasks) != 1 || overdue.Tasks[0].ID != created.ID {
		t.Errorf("overdue = %+v", overdue.Tasks)
	}

	var completed struct {
		Status      string  `json:"status"`
		Overdue     bool    `json:"overdue"`
		CompletedAt *string `json:"completedAt"`
	}
	status = c.do(http.MethodPatch, "/api/tasks/"+itoa(created.ID)+"/status",
		map[string]string{"status": "COMPLETED"}, &completed)
	if status != http.StatusOK {
		t.Fatalf("status patch = %d", status)
	}
	if completed.Status != "COMPLETED" || completed.CompletedAt == nil {
		t.Errorf("completed = %+v", completed)
	}
	if completed.Overdue {
		t.Errorf("completed task still overdue")
	}

	overdue.Tasks = nil
	if status := c.do(http.MethodGet, "/api/dashboard/overdue", nil, &overdue); status != http.StatusOK {
		t.Fatalf("overdue status = %d", status)
	}
	if len(overdue.Tasks) != 0 {
		t.Errorf("overdue after completion = %+v", overdue.Tasks)
	}

	if status := c.do(http.MethodDelete, "/api/tasks/"+itoa(created.ID), nil, nil); status != http.StatusNoContent {
		t.Errorf("delete status = %d", status)
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	if status := c.do(http.MethodGet, "/api/tasks", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("no token status = %d", status)
	}

	c.token = "garbage"
	if status := c.do(http.MethodGet, "/api/tasks", nil, nil); status != http.StatusUnauthorized {
		t.Errorf("bad token status = %d", status)
	}
}

func TestForeignTaskIsNotFound(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	owner := registerClient(t, ts, "ada@example.com")
	other := registerClient(t, ts, "bob@example.com")

	var created struct {
		ID uint `json:"id"`
	}
	if status := owner.do(http.MethodPost, "/api/tasks", map[string]string{"title": "mine"}, &created); status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}

	// Owned-by-someone-else and nonexistent look the same.
	if status := other.do(http.MethodGet, "/api/tasks/"+itoa(created.ID), nil, nil); status != http.StatusNotFound {
		t.Errorf("foreign get status = %d", status)
	}
	if status := other.do(http.MethodDelete, "/api/tasks/"+itoa(created.ID), nil, nil); status != http.StatusNotFound {
		t.Errorf("foreign delete status = %d", status)
	}
}

func TestInvalidEnumsRejected(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	status := c.do(http.MethodPost, "/api/tasks", map[string]string{
		"title":    "bad priority",
		"priority": "URGENT",
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("bad priority status = %d", status)
	}

	if status := c.do(http.MethodGet, "/api/tasks?status=DONE", nil, nil); status != http.StatusBadRequest {
		t.Errorf("bad status filter = %d", status)
	}
}

func TestValidationErrorsReportFields(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	var body struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	status := c.do(http.MethodPost, "/api/tasks", map[string]string{"title": ""}, &body)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if _, ok := body.Fields["title"]; !ok {
		t.Errorf("fields = %+v, want title entry", body.Fields)
	}
}

func TestDuplicateCategoryConflicts(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	if status := c.do(http.MethodPost, "/api/categories", map[string]string{"name": "Work"}, nil); status != http.StatusCreated {
		t.Fatalf("create status = %d", status)
	}
	if status := c.do(http.MethodPost, "/api/categories", map[string]string{"name": "Work"}, nil); status != http.StatusConflict {
		t.Errorf("duplicate status = %d", status)
	}
}

func TestCategoryDeleteGuardOverHTTP(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	var category struct {
		ID uint `json:"id"`
	}
	if status := c.do(http.MethodPost, "/api/categories", map[string]string{"name": "Work"}, &category); status != http.StatusCreated {
		t.Fatalf("create category status = %d", status)
	}
	if status := c.do(http.MethodPost, "/api/tasks", map[string]any{
		"title":      "filed task",
		"categoryId": category.ID,
	}, nil); status != http.StatusCreated {
		t.Fatalf("create task status = %d", status)
	}

	if status := c.do(http.MethodDelete, "/api/categories/"+itoa(category.ID), nil, nil); status != http.StatusBadRequest {
		t.Errorf("guarded delete status = %d", status)
	}
}

func TestRefreshEndpoint(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	var reg struct {
		RefreshToken string `json:"refreshToken"`
	}
	if status := c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email":           "ada@example.com",
		"password":        "secret-pass",
		"confirmPassword": "secret-pass",
		"name":            "Ada",
	}, &reg); status != http.StatusOK {
		t.Fatalf("register status = %d", status)
	}

	// The refresh token travels in the Authorization header.
	c.token = reg.RefreshToken
	var rotated struct {
		Token string `json:"token"`
	}
	if status := c.do(http.MethodPost, "/api/auth/refresh", nil, &rotated); status != http.StatusOK {
		t.Fatalf("refresh status = %d", status)
	}

	c.token = rotated.Token
	if status := c.do(http.MethodGet, "/api/users/profile", nil, nil); status != http.StatusOK {
		t.Errorf("profile with rotated token status = %d", status)
	}
}

func TestHealthEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	var body struct {
		Status string `json:"status"`
	}
	if status := c.do(http.MethodGet, "/health", nil, &body); status != http.StatusOK || body.Status != "ok" {
		t.Errorf("health = %d %q", status, body.Status)
	}
	if status := c.do(http.MethodGet, "/health/database", nil, &body); status != http.StatusOK || body.Status != "ok" {
		t.Errorf("database health = %d %q", status, body.Status)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestDuplicateRegisterConflicts(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := &client{t: t, base: ts.URL}

	body := map[string]string{
		"email":           "ada@example.com",
		"password":        "secret-pass",
		"confirmPassword": "secret-pass",
		"name":            "Ada",
	}
	if status := c.do(http.MethodPost, "/api/auth/register", body, nil); status != http.StatusOK {
		t.Fatalf("first register status = %d", status)
	}
	// Duplicates answer 409 uniformly, registration included.
	if status := c.do(http.MethodPost, "/api/auth/register", body, nil); status != http.StatusConflict {
		t.Errorf("duplicate register status = %d", status)
	}
}

func TestTitleLimitCountsCharacters(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	c := registerClient(t, ts, "ada@example.com")

	// 96 characters but far more than 100 bytes.
	title := strings.Repeat("задача", 16)
	if status := c.do(http.MethodPost, "/api/tasks", map[string]string{"title": title}, nil); status != http.StatusCreated {
		t.Errorf("multibyte title status = %d, want 201", status)
	}

	if status := c.do(http.MethodPost, "/api/tasks", map[string]string{
		"title": strings.Repeat("задача", 17),
	}, nil); status != http.StatusBadRequest {
		t.Errorf("102-character title status = %d, want 400", status)
	}
}
