package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a task. Stored lower-case in the
// database, exposed upper-case over the API.
type TaskStatus string

const (
	StatusPending   TaskStatus = "PENDING"
	StatusCompleted TaskStatus = "COMPLETED"
	StatusDeleted   TaskStatus = "DELETED"
)

// ParseTaskStatus accepts status strings case-insensitively. Unknown values
// are rejected rather than defaulted; defaulting only happens when scanning
// legacy rows out of the database.
func ParseTaskStatus(s string) (TaskStatus, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PENDING":
		return StatusPending, true
	case "COMPLETED":
		return StatusCompleted, true
	case "DELETED":
		return StatusDeleted, true
	default:
		return "", false
	}
}

func (s TaskStatus) Value() (driver.Value, error) {
	return strings.ToLower(string(s)), nil
}

func (s *TaskStatus) Scan(value any) error {
	str, ok := asString(value)
	if !ok {
		return fmt.Errorf("scan task status: unsupported type %T", value)
	}
	if parsed, ok := ParseTaskStatus(str); ok {
		*s = parsed
	} else {
		*s = StatusPending
	}
	return nil
}

// TaskPriority is stored lower-case like TaskStatus.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

func ParseTaskPriority(s string) (TaskPriority, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow, true
	case "MEDIUM":
		return PriorityMedium, true
	case "HIGH":
		return PriorityHigh, true
	default:
		return "", false
	}
}

func (p TaskPriority) Value() (driver.Value, error) {
	return strings.ToLower(string(p)), nil
}

func (p *TaskPriority) Scan(value any) error {
	str, ok := asString(value)
	if !ok {
		return fmt.Errorf("scan task priority: unsupported type %T", value)
	}
	if parsed, ok := ParseTaskPriority(str); ok {
		*p = parsed
	} else {
		*p = PriorityMedium
	}
	return nil
}

func asString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case []byte:
		return string(v), true
	default:
		return "", false
	}
}

// Task represents a single item on a user's list. Deleting a task never
// removes the row; the status flips to DELETED instead.
type Task struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"index" json:"-"`
	CategoryID  *uint        `gorm:"index" json:"categoryId,omitempty"`
	Title       string       `gorm:"size:100" json:"title"`
	Description string       `gorm:"size:500" json:"description,omitempty"`
	Status      TaskStatus   `gorm:"size:20;default:pending" json:"status"`
	Priority    TaskPriority `gorm:"size:10;default:medium" json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Category    *Category    `json:"category,omitempty"`
	Tags        []Tag        `gorm:"many2many:task_tags" json:"tags"`
}

// IsOverdue reports whether the task is pending with a due date in the past.
// Derived, never stored.
func (t *Task) IsOverdue() bool {
	return t.Status == StatusPending && t.DueDate != nil && t.DueDate.Before(time.Now())
}

func (t Task) MarshalJSON() ([]byte, error) {
	type alias Task
	return json.Marshal(struct {
		alias
		Overdue bool `json:"overdue"`
	}{alias(t), t.IsOverdue()})
}
