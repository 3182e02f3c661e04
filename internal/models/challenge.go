package models

import "time"

// Challenge is a user-scoped goal with a progress counter, a derived
// completion flag and a one-time coin reward. Completed is always
// recomputed from Progress and Goal, never set independently.
// RewardClaimed is one-way: false -> true, never reset.
type Challenge struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;type:text;not null" json:"user_id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Progress      int  `gorm:"default:0" json:"progress"`
	Goal          int  `gorm:"not null" json:"goal"`
	Completed     bool `gorm:"default:false" json:"completed"`
	Reward        int  `gorm:"default:0" json:"reward"`
	RewardClaimed bool `gorm:"default:false" json:"reward_claimed"`
}

func (Challenge) TableName() string {
	return "challenges"
}
