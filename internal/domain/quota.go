package domain

// Sound limits per subscription tier
const (
	FreeSoundLimit    = 5
	PremiumSoundLimit = 30

	FreeMaxDurationSeconds    = 5 * 60
	PremiumMaxDurationSeconds = 30 * 60
)

// Quota is the (max sound count, max duration) pair for a tier.
type Quota struct {
	MaxSounds          int
	MaxDurationSeconds float64
}

// QuotaFor returns the quota applicable to the given tier.
func QuotaFor(isPremium bool) Quota {
	if isPremium {
		return Quota{
			MaxSounds:          PremiumSoundLimit,
			MaxDurationSeconds: PremiumMaxDurationSeconds,
		}
	}
	return Quota{
		MaxSounds:          FreeSoundLimit,
		MaxDurationSeconds: FreeMaxDurationSeconds,
	}
}

// CheckCreate reports whether a user with the given sound count may store one
// more sound of the given duration. The count limit is inclusive: a user at
// the limit cannot add another sound. The duration limit itself is allowed.
func (q Quota) CheckCreate(soundCount int, durationSeconds float64) error {
	if soundCount >= q.MaxSounds {
		return ErrSoundLimitReached
	}
	if durationSeconds > q.MaxDurationSeconds {
		return ErrDurationExceeded
	}
	return nil
}
