package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/repository/postgres"
	"github.com/soundloop/soundloop-api/internal/service"
	"github.com/soundloop/soundloop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSoundService_Create_CountQuota(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	soundService := service.NewSoundService(repos.Sound, repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	// A free user can create exactly five sounds
	for i := 0; i < domain.FreeSoundLimit; i++ {
		current, err := repos.User.GetByID(ctx, user.UserID)
		require.NoError(t, err)

		_, err = soundService.Create(ctx, current, service.CreateSoundInput{
			Name:            fmt.Sprintf("loop-%d", i),
			AudioData:       "UklGRiQAAABXQVZF",
			DurationSeconds: 10,
		})
		require.NoError(t, err)
	}

	current, err := repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.FreeSoundLimit, current.SoundCount)

	// The sixth attempt fails and persists nothing
	_, err = soundService.Create(ctx, current, service.CreateSoundInput{
		Name:            "one-too-many",
		AudioData:       "UklGRiQAAABXQVZF",
		DurationSeconds: 10,
	})
	assert.ErrorIs(t, err, domain.ErrSoundLimitReached)

	after, err := repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.FreeSoundLimit, after.SoundCount)

	sounds, err := soundService.List(ctx, user.UserID)
	require.NoError(t, err)
	assert.Len(t, sounds, domain.FreeSoundLimit)
}

func TestSoundService_Create_DurationQuota(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	soundService := service.NewSoundService(repos.Sound, repos.User)
	ctx := context.Background()

	tests := []struct {
		name            string
		premium         bool
		durationSeconds float64
		wantErr         error
	}{
		{name: "free user at boundary", durationSeconds: 300},
		{name: "free user over boundary", durationSeconds: 301, wantErr: domain.ErrDurationExceeded},
		{name: "premium user beyond free boundary", premium: true, durationSeconds: 301},
		{name: "premium user at boundary", premium: true, durationSeconds: 1800},
		{name: "premium user over boundary", premium: true, durationSeconds: 1801, wantErr: domain.ErrDurationExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, _ := testutil.NewUserBuilder().WithPremium(tt.premium).Build(t, testDB.DB)

			sound, err := soundService.Create(ctx, user, service.CreateSoundInput{
				Name:            "boundary",
				AudioData:       "UklGRiQAAABXQVZF",
				DurationSeconds: tt.durationSeconds,
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				after, err := repos.User.GetByID(ctx, user.UserID)
				require.NoError(t, err)
				assert.Zero(t, after.SoundCount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.durationSeconds, sound.DurationSeconds)
		})
	}
}

func TestSoundService_Create_PremiumUpgrade(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	soundService := service.NewSoundService(repos.Sound, repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	for i := 0; i < domain.FreeSoundLimit; i++ {
		current, err := repos.User.GetByID(ctx, user.UserID)
		require.NoError(t, err)
		_, err = soundService.Create(ctx, current, service.CreateSoundInput{
			Name:            fmt.Sprintf("loop-%d", i),
			AudioData:       "UklGRiQAAABXQVZF",
			DurationSeconds: 10,
		})
		require.NoError(t, err)
	}

	// Blocked at the free limit
	current, err := repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	_, err = soundService.Create(ctx, current, service.CreateSoundInput{
		Name:            "blocked",
		AudioData:       "UklGRiQAAABXQVZF",
		DurationSeconds: 10,
	})
	require.ErrorIs(t, err, domain.ErrSoundLimitReached)

	// Upgrading lifts both limits
	require.NoError(t, repos.User.SetPremium(ctx, user.UserID, true))

	current, err = repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	_, err = soundService.Create(ctx, current, service.CreateSoundInput{
		Name:            "premium-loop",
		AudioData:       "UklGRiQAAABXQVZF",
		DurationSeconds: 1800,
	})
	require.NoError(t, err)

	after, err := repos.User.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.Equal(t, domain.FreeSoundLimit+1, after.SoundCount)
}

func TestSoundService_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	soundService := service.NewSoundService(repos.Sound, repos.User)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sound := testutil.NewSoundBuilder().WithOwner(user).Build(t, testDB.DB)

	t.Run("delete then get is not found", func(t *testing.T) {
		require.NoError(t, soundService.Delete(ctx, sound.SoundID, user.UserID))

		_, err := soundService.Get(ctx, sound.SoundID, user.UserID)
		assert.ErrorIs(t, err, service.ErrSoundNotFound)

		after, err := repos.User.GetByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Zero(t, after.SoundCount)
	})

	t.Run("deleting a nonexistent sound leaves the counter alone", func(t *testing.T) {
		testutil.NewSoundBuilder().WithOwner(user).Build(t, testDB.DB)

		err := soundService.Delete(ctx, "sound_000000000000", user.UserID)
		assert.ErrorIs(t, err, service.ErrSoundNotFound)

		after, err := repos.User.GetByID(ctx, user.UserID)
		require.NoError(t, err)
		assert.Equal(t, 1, after.SoundCount)
	})
}

func TestSoundService_CrossUserAccess(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	soundService := service.NewSoundService(repos.Sound, repos.User)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	intruder, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sound := testutil.NewSoundBuilder().WithOwner(owner).Build(t, testDB.DB)

	// Every operation reports not-found rather than forbidden
	_, err := soundService.Get(ctx, sound.SoundID, intruder.UserID)
	assert.ErrorIs(t, err, service.ErrSoundNotFound)

	err = soundService.Rename(ctx, sound.SoundID, intruder.UserID, "stolen")
	assert.ErrorIs(t, err, service.ErrSoundNotFound)

	err = soundService.Delete(ctx, sound.SoundID, intruder.UserID)
	assert.ErrorIs(t, err, service.ErrSoundNotFound)

	// The owner's record and counter are untouched
	got, err := soundService.Get(ctx, sound.SoundID, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, sound.Name, got.Name)

	after, err := repos.User.GetByID(ctx, owner.UserID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.SoundCount)
}
