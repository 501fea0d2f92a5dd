package model

import "time"

// Category groups tasks by area (work, health, study, etc.). Names are
// unique per owner, not globally.
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index:idx_user_category_name,unique" json:"-"`
	Name        string    `gorm:"index:idx_user_category_name,unique;size:50" json:"name"`
	Color       string    `gorm:"size:7" json:"color"`
	Description string    `gorm:"size:200" json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
