package domain

import (
	"time"
)

type User struct {
	UserID       string    `json:"user_id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Name         string    `json:"name" gorm:"not null"`
	PasswordHash string    `json:"-"`
	Picture      *string   `json:"picture"`
	IsPremium    bool      `json:"is_premium" gorm:"not null;default:false"`
	SoundCount   int       `json:"sound_count" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
}

type UserSession struct {
	SessionToken string    `json:"-" gorm:"primaryKey"`
	UserID       string    `json:"userId" gorm:"index;not null"`
	ExpiresAt    time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
}
