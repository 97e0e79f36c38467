package service

import (
	"context"

	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/repository"
)

type SubscriptionService struct {
	userRepo repository.UserRepository
}

func NewSubscriptionService(userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{userRepo: userRepo}
}

type SubscriptionStatus struct {
	IsPremium          bool    `json:"is_premium"`
	SoundCount         int     `json:"sound_count"`
	MaxSounds          int     `json:"max_sounds"`
	MaxDurationSeconds float64 `json:"max_duration_seconds"`
	SoundsRemaining    int     `json:"sounds_remaining"`
}

func (s *SubscriptionService) Status(user *domain.User) *SubscriptionStatus {
	quota := domain.QuotaFor(user.IsPremium)
	return &SubscriptionStatus{
		IsPremium:          user.IsPremium,
		SoundCount:         user.SoundCount,
		MaxSounds:          quota.MaxSounds,
		MaxDurationSeconds: quota.MaxDurationSeconds,
		SoundsRemaining:    quota.MaxSounds - user.SoundCount,
	}
}

func (s *SubscriptionService) SetPremium(ctx context.Context, userID string, premium bool) error {
	return s.userRepo.SetPremium(ctx, userID, premium)
}
