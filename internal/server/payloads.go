package server

import "time"

type registerIn struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
}

type loginIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordIn struct {
	Email string `json:"email"`
}

type resetPasswordIn struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type verifyEmailIn struct {
	Token string `json:"token"`
}

type createTaskIn struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uint      `json:"categoryId"`
	TagIDs      []uint     `json:"tagIds"`
}

// updateTaskIn is PATCH-like even though the verb is PUT: nil means leave
// the field alone.
type updateTaskIn struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uint      `json:"categoryId"`
	TagIDs      []uint     `json:"tagIds"`
}

type taskStatusIn struct {
	Status string `json:"status"`
}

type bulkTasksIn struct {
	Operation  string `json:"operation"`
	TaskIDs    []uint `json:"taskIds"`
	CategoryID *uint  `json:"categoryId"`
}

type createCategoryIn struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type updateCategoryIn struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

type createTagIn struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type updateTagIn struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

type updateProfileIn struct {
	Name      *string `json:"name"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	AvatarURL *string `json:"avatarUrl"`
}

type updateSettingsIn struct {
	Theme                *string `json:"theme"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
	Timezone             *string `json:"timezone"`
	Language             *string `json:"language"`
	DateFormat           *string `json:"dateFormat"`
	TimeFormat           *string `json:"timeFormat"`
	EmailNotifications   *bool   `json:"emailNotifications"`
	PushNotifications    *bool   `json:"pushNotifications"`
	TaskReminders        *bool   `json:"taskReminders"`
	DailyDigest          *bool   `json:"dailyDigest"`
	WeeklyReport         *bool   `json:"weeklyReport"`
}
