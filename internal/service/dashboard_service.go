package service

import (
	"context"
	"math"
	"time"

	"todoapp/internal/model"
	"todoapp/internal/repository"
)

// Statistics is the dashboard rollup. All values derive from the task
// table; nothing here is stored.
type Statistics struct {
	TotalTasks     int64   `json:"totalTasks"`
	CompletedTasks int64   `json:"completedTasks"`
	PendingTasks   int64   `json:"pendingTasks"`
	OverdueTasks   int     `json:"overdueTasks"`
	TodayTasks     int     `json:"todayTasks"`
	UpcomingTasks  int     `json:"upcomingTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// Activity approximates recent history from task timestamps; there is no
// audit log behind it.
type Activity struct {
	RecentTasks       []model.Task `json:"recentTasks"`
	CompletedThisWeek int64        `json:"completedThisWeek"`
	CreatedThisWeek   int          `json:"createdThisWeek"`
}

// DashboardService computes read-only rollups over the owner's tasks.
type DashboardService struct {
	tasks *repository.TaskRepository
}

func NewDashboardService(tasks *repository.TaskRepository) *DashboardService {
	return &DashboardService{tasks: tasks}
}

func (s *DashboardService) Statistics(ctx context.Context, ownerID uint) (*Statistics, error) {
	now := time.Now()

	total, err := s.tasks.CountForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	pending, err := s.tasks.CountByStatus(ctx, ownerID, model.StatusPending)
	if err != nil {
		return nil, err
	}
	completed, err := s.tasks.CountByStatus(ctx, ownerID, model.StatusCompleted)
	if err != nil {
		return nil, err
	}
	overdue, err := s.tasks.FindOverdue(ctx, ownerID, now)
	if err != nil {
		return nil, err
	}
	today, err := s.TodayTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	upcoming, err := s.UpcomingTasks(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stats := &Statistics{
		TotalTasks:     total,
		CompletedTasks: completed,
		PendingTasks:   pending,
		OverdueTasks:   len(overdue),
		TodayTasks:     len(today),
		UpcomingTasks:  len(upcoming),
	}
	if total > 0 {
		rate := float64(completed) / float64(total) * 100
		stats.CompletionRate = math.Round(rate*100) / 100
	}
	return stats, nil
}

// TodayTasks returns pending tasks due between midnight today and midnight
// tomorrow, local time.
func (s *DashboardService) TodayTasks(ctx context.Context, ownerID uint) ([]model.Task, error) {
	start := startOfDay(time.Now())
	return s.tasks.FindDueBetween(ctx, ownerID, start, start.AddDate(0, 0, 1))
}

// UpcomingTasks returns pending tasks due within the next seven days,
// counted from the start of today.
func (s *DashboardService) UpcomingTasks(ctx context.Context, ownerID uint) ([]model.Task, error) {
	start := startOfDay(time.Now())
	return s.tasks.FindDueBetween(ctx, ownerID, start, start.AddDate(0, 0, 7))
}

func (s *DashboardService) OverdueTasks(ctx context.Context, ownerID uint) ([]model.Task, error) {
	return s.tasks.FindOverdue(ctx, ownerID, time.Now())
}

func (s *DashboardService) RecentActivity(ctx context.Context, ownerID uint) (*Activity, error) {
	now := time.Now()
	weekAgo := now.AddDate(0, 0, -7)

	recent, err := s.tasks.FindCreatedSince(ctx, ownerID, now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	completedThisWeek, err := s.tasks.CountCompletedSince(ctx, ownerID, weekAgo)
	if err != nil {
		return nil, err
	}

	createdThisWeek := 0
	for i := range recent {
		if recent[i].CreatedAt.After(weekAgo) {
			createdThisWeek++
		}
	}

	return &Activity{
		RecentTasks:       recent,
		CompletedThisWeek: completedThisWeek,
		CreatedThisWeek:   createdThisWeek,
	}, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
