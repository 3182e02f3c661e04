package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Username     string `gorm:"uniqueIndex" json:"username"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profile_image"`
	PasswordHash string `json:"-"`

	Role Role `gorm:"type:text;default:'USER'" json:"role"`

	// Coins is the in-app currency balance. Mutated only by reward
	// settlement and item purchases; never negative.
	Coins int `gorm:"default:0" json:"coins"`
}

func (User) TableName() string {
	return "users"
}
