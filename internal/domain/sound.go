package domain

import (
	"time"
)

type Sound struct {
	SoundID         string    `json:"sound_id" gorm:"primaryKey"`
	UserID          string    `json:"user_id" gorm:"index;not null"`
	Name            string    `json:"name" gorm:"not null"`
	AudioData       string    `json:"audio_data" gorm:"type:text;not null"`
	DurationSeconds float64   `json:"duration_seconds" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}
