package model

import "time"

// TokenPurpose distinguishes the one-shot flows a verification token backs.
type TokenPurpose string

const (
	PurposePasswordReset TokenPurpose = "password_reset"
	PurposeEmailVerify   TokenPurpose = "email_verify"
)

// VerificationToken is a single-use, expiring token handed out by the
// forgot-password and email-verification flows. The token value itself is
// an opaque random string, never a signed credential.
type VerificationToken struct {
	ID        uint         `gorm:"primaryKey"`
	UserID    uint         `gorm:"index"`
	Token     string       `gorm:"uniqueIndex;size:36"`
	Purpose   TokenPurpose `gorm:"size:20"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the token is still valid at the given time.
func (t *VerificationToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
