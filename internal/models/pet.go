package models

import "time"

// Pet is the virtual companion coins get spent on. One per user.
type Pet struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"uniqueIndex;type:text;not null" json:"user_id"`

	Name      string `json:"name"`
	Level     int    `gorm:"default:1" json:"level"`
	Exp       int    `gorm:"default:0" json:"exp"`
	Happiness int    `gorm:"default:100" json:"happiness"`
}

func (Pet) TableName() string {
	return "pets"
}
