package model

import "time"

// Tag is a free-form label; a task may carry any number of them.
type Tag struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_user_tag_name,unique" json:"-"`
	Name      string    `gorm:"index:idx_user_tag_name,unique;size:30" json:"name"`
	Color     string    `gorm:"size:7" json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
