package service

import (
	"context"
	"errors"
	"time"

	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/repository"
	"gorm.io/gorm"
)

var ErrSoundNotFound = errors.New("sound not found")

// listLimit caps how many sounds a single list call returns. Well above any
// tier's quota, so it only guards against counter drift.
const listLimit = 100

type SoundService struct {
	soundRepo repository.SoundRepository
	userRepo  repository.UserRepository
}

func NewSoundService(soundRepo repository.SoundRepository, userRepo repository.UserRepository) *SoundService {
	return &SoundService{
		soundRepo: soundRepo,
		userRepo:  userRepo,
	}
}

type CreateSoundInput struct {
	Name            string
	AudioData       string
	DurationSeconds float64
}

func (s *SoundService) List(ctx context.Context, userID string) ([]*domain.Sound, error) {
	return s.soundRepo.ListByUser(ctx, userID, listLimit)
}

func (s *SoundService) Get(ctx context.Context, soundID, userID string) (*domain.Sound, error) {
	sound, err := s.soundRepo.GetByID(ctx, soundID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSoundNotFound
		}
		return nil, err
	}
	return sound, nil
}

// Create stores a new sound after running the owner's quota checks. Nothing
// is persisted when a check fails. The counter increment happens only after
// the sound row is written; the check-then-insert pair is not transactional,
// so concurrent creates can briefly overshoot the limit (weak invariant,
// accepted for this domain).
func (s *SoundService) Create(ctx context.Context, user *domain.User, input CreateSoundInput) (*domain.Sound, error) {
	quota := domain.QuotaFor(user.IsPremium)
	if err := quota.CheckCreate(user.SoundCount, input.DurationSeconds); err != nil {
		return nil, err
	}

	sound := &domain.Sound{
		SoundID:         domain.NewSoundID(),
		UserID:          user.UserID,
		Name:            input.Name,
		AudioData:       input.AudioData,
		DurationSeconds: input.DurationSeconds,
		CreatedAt:       time.Now().UTC(),
	}

	if err := s.soundRepo.Create(ctx, sound); err != nil {
		return nil, err
	}

	if err := s.userRepo.AdjustSoundCount(ctx, user.UserID, 1); err != nil {
		return nil, err
	}

	return sound, nil
}

func (s *SoundService) Rename(ctx context.Context, soundID, userID, name string) error {
	err := s.soundRepo.UpdateName(ctx, soundID, userID, name)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrSoundNotFound
	}
	return err
}

// Delete removes an owned sound and decrements the owner's counter. The
// counter is untouched when no record matched.
func (s *SoundService) Delete(ctx context.Context, soundID, userID string) error {
	err := s.soundRepo.Delete(ctx, soundID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSoundNotFound
		}
		return err
	}

	return s.userRepo.AdjustSoundCount(ctx, userID, -1)
}
