package postgres

import (
	"context"

	"github.com/soundloop/soundloop-api/internal/domain"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetPremium(ctx context.Context, userID string, premium bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", userID).
		Update("is_premium", premium).Error
}

// AdjustSoundCount applies delta to the user's denormalized sound counter in a
// single atomic update. The counter is floored at zero.
func (r *userRepository) AdjustSoundCount(ctx context.Context, userID string, delta int) error {
	return r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("user_id = ?", userID).
		UpdateColumn("sound_count", gorm.Expr("GREATEST(sound_count + ?, 0)", delta)).Error
}
