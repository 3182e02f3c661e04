package models

import "time"

type RelationStatus string

const (
	RelationPending  RelationStatus = "PENDING"
	RelationAccepted RelationStatus = "ACCEPTED"
)

type SocialRelation struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID   string `gorm:"index;type:text;not null" json:"user_id"`
	FriendID string `gorm:"index;type:text;not null" json:"friend_id"`

	Status RelationStatus `gorm:"type:text;default:'PENDING'" json:"status"`
}

func (SocialRelation) TableName() string {
	return "social_relations"
}
