package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "LIGHT"
	ThemeDark  Theme = "DARK"
	ThemeAuto  Theme = "AUTO"
)

func ParseTheme(s string) (Theme, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LIGHT":
		return ThemeLight, true
	case "DARK":
		return ThemeDark, true
	case "AUTO":
		return ThemeAuto, true
	default:
		return "", false
	}
}

func (t Theme) Value() (driver.Value, error) {
	return strings.ToLower(string(t)), nil
}

func (t *Theme) Scan(value any) error {
	str, ok := asString(value)
	if !ok {
		return fmt.Errorf("scan theme: unsupported type %T", value)
	}
	if parsed, ok := ParseTheme(str); ok {
		*t = parsed
	} else {
		*t = ThemeLight
	}
	return nil
}

// UserSettings holds per-user preferences, one row per user. The row is
// created lazily with defaults the first time it is read, so clients never
// see a "settings not configured" state.
type UserSettings struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	UserID               uint      `gorm:"uniqueIndex" json:"-"`
	Theme                Theme     `gorm:"size:10;default:light" json:"theme"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
	Timezone             string    `gorm:"size:50" json:"timezone"`
	Language             string    `gorm:"size:10" json:"language"`
	DateFormat           string    `gorm:"size:20" json:"dateFormat"`
	TimeFormat           string    `gorm:"size:5" json:"timeFormat"`
	EmailNotifications   bool      `json:"emailNotifications"`
	PushNotifications    bool      `json:"pushNotifications"`
	TaskReminders        bool      `json:"taskReminders"`
	DailyDigest          bool      `json:"dailyDigest"`
	WeeklyReport         bool      `json:"weeklyReport"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// DefaultSettings returns the hard-coded defaults used on lazy creation:
// every channel on except the daily digest.
func DefaultSettings(userID uint) *UserSettings {
	return &UserSettings{
		UserID:               userID,
		Theme:                ThemeLight,
		NotificationsEnabled: true,
		Timezone:             "UTC",
		Language:             "en",
		DateFormat:           "MM/DD/YYYY",
		TimeFormat:           "12h",
		EmailNotifications:   true,
		PushNotifications:    true,
		TaskReminders:        true,
		DailyDigest:          false,
		WeeklyReport:         true,
	}
}
