package postgres

import (
	"context"

	"github.com/soundloop/soundloop-api/internal/domain"
	"gorm.io/gorm"
)

type soundRepository struct {
	db *gorm.DB
}

func NewSoundRepository(db *gorm.DB) *soundRepository {
	return &soundRepository{db: db}
}

func (r *soundRepository) Create(ctx context.Context, sound *domain.Sound) error {
	return r.db.WithContext(ctx).Create(sound).Error
}

func (r *soundRepository) GetByID(ctx context.Context, soundID, userID string) (*domain.Sound, error) {
	var sound domain.Sound
	err := r.db.WithContext(ctx).
		First(&sound, "sound_id = ? AND user_id = ?", soundID, userID).Error
	if err != nil {
		return nil, err
	}
	return &sound, nil
}

// ListByUser returns the user's sounds without the audio payload column.
func (r *soundRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Sound, error) {
	var sounds []*domain.Sound
	err := r.db.WithContext(ctx).
		Select("sound_id", "user_id", "name", "duration_seconds", "created_at").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Limit(limit).
		Find(&sounds).Error
	if err != nil {
		return nil, err
	}
	return sounds, nil
}

func (r *soundRepository) UpdateName(ctx context.Context, soundID, userID, name string) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Sound{}).
		Where("sound_id = ? AND user_id = ?", soundID, userID).
		Update("name", name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *soundRepository) Delete(ctx context.Context, soundID, userID string) error {
	result := r.db.WithContext(ctx).
		Delete(&domain.Sound{}, "sound_id = ? AND user_id = ?", soundID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
