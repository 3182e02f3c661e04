package models

import "time"

// Entities below exist mainly so account deletion can cascade over
// everything a user owns.

type UserAchievement struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	UserID     string    `gorm:"index;type:text;not null" json:"user_id"`
	Code       string    `json:"code"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

func (UserAchievement) TableName() string {
	return "user_achievements"
}

type UserItem struct {
	ID       string `gorm:"primaryKey;type:text" json:"id"`
	UserID   string `gorm:"index;type:text;not null" json:"user_id"`
	ItemCode string `json:"item_code"`
	Quantity int    `gorm:"default:1" json:"quantity"`
}

func (UserItem) TableName() string {
	return "user_items"
}

type UserSettings struct {
	ID                   string `gorm:"primaryKey;type:text" json:"id"`
	UserID               string `gorm:"uniqueIndex;type:text;not null" json:"user_id"`
	NotificationsEnabled bool   `gorm:"default:true" json:"notifications_enabled"`
	Language             string `gorm:"default:'ko'" json:"language"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}

type Inquiry struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  string `gorm:"index;type:text;not null" json:"user_id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Answer  string `json:"answer"`
}

func (Inquiry) TableName() string {
	return "inquiries"
}
