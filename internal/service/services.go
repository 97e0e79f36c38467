package service

import (
	"github.com/soundloop/soundloop-api/internal/config"
	"github.com/soundloop/soundloop-api/internal/repository"
)

type Services struct {
	Auth         *AuthService
	Sound        *SoundService
	Subscription *SubscriptionService
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:         NewAuthService(repos.User, repos.Session, cfg),
		Sound:        NewSoundService(repos.Sound, repos.User),
		Subscription: NewSubscriptionService(repos.User),
	}
}
