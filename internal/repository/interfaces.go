package repository

import (
	"context"

	"github.com/soundloop/soundloop-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetPremium(ctx context.Context, userID string, premium bool) error
	AdjustSoundCount(ctx context.Context, userID string, delta int) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.UserSession) error
	GetByToken(ctx context.Context, token string) (*domain.UserSession, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type SoundRepository interface {
	Create(ctx context.Context, sound *domain.Sound) error
	GetByID(ctx context.Context, soundID, userID string) (*domain.Sound, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Sound, error)
	UpdateName(ctx context.Context, soundID, userID, name string) error
	Delete(ctx context.Context, soundID, userID string) error
}

type Repositories struct {
	User    UserRepository
	Session SessionRepository
	Sound   SoundRepository
}
