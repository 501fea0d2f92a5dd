package model

import "time"

// Notification is append-only; the only mutable field is the read flag,
// which flips false to true exactly once.
type Notification struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index" json:"-"`
	Type         string     `gorm:"size:50" json:"type"`
	Title        string     `gorm:"size:100" json:"title"`
	Message      string     `gorm:"size:500" json:"message"`
	Read         bool       `gorm:"default:false" json:"read"`
	ScheduledFor *time.Time `json:"scheduledFor,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}
