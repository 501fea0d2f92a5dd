package model

import "time"

// User is the root aggregate; every other entity is owned by exactly one user.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;size:191" json:"email"`
	PasswordHash  string    `gorm:"size:191" json:"-"`
	Name          string    `gorm:"size:100" json:"name"`
	FirstName     string    `gorm:"size:50" json:"firstName,omitempty"`
	LastName      string    `gorm:"size:50" json:"lastName,omitempty"`
	AvatarURL     string    `gorm:"size:255" json:"avatarUrl,omitempty"`
	IsActive      bool      `gorm:"default:true" json:"isActive"`
	EmailVerified bool      `gorm:"default:false" json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
