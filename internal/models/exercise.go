package models

import "time"

type ExerciseRecord struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string `gorm:"index;type:text;not null" json:"user_id"`

	Type        string    `json:"type"`
	DistanceKm  float64   `json:"distance_km"`
	DurationMin int       `json:"duration_min"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func (ExerciseRecord) TableName() string {
	return "exercise_records"
}
