package postgres_test

import (
	"context"
	"testing"

	"github.com/soundloop/soundloop-api/internal/repository/postgres"
	"github.com/soundloop/soundloop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSoundRepository_GetByID(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSoundRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sound := testutil.NewSoundBuilder().WithOwner(owner).Build(t, testDB.DB)

	t.Run("owned sound includes payload", func(t *testing.T) {
		got, err := repo.GetByID(ctx, sound.SoundID, owner.UserID)
		require.NoError(t, err)
		assert.Equal(t, sound.SoundID, got.SoundID)
		assert.Equal(t, sound.AudioData, got.AudioData)
	})

	t.Run("another user's sound is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, sound.SoundID, other.UserID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "sound_000000000000", owner.UserID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestSoundRepository_ListByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSoundRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	first := testutil.NewSoundBuilder().WithOwner(owner).WithName("first").Build(t, testDB.DB)
	second := testutil.NewSoundBuilder().WithOwner(owner).WithName("second").Build(t, testDB.DB)
	testutil.NewSoundBuilder().WithOwner(other).Build(t, testDB.DB)

	sounds, err := repo.ListByUser(ctx, owner.UserID, 100)
	require.NoError(t, err)
	require.Len(t, sounds, 2)

	// Insertion order
	assert.Equal(t, first.SoundID, sounds[0].SoundID)
	assert.Equal(t, second.SoundID, sounds[1].SoundID)

	// Payload column is not selected
	for _, s := range sounds {
		assert.Empty(t, s.AudioData)
		assert.NotEmpty(t, s.Name)
		assert.NotZero(t, s.DurationSeconds)
	}
}

func TestSoundRepository_UpdateName(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSoundRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sound := testutil.NewSoundBuilder().WithOwner(owner).WithName("before").Build(t, testDB.DB)

	t.Run("renames owned sound", func(t *testing.T) {
		require.NoError(t, repo.UpdateName(ctx, sound.SoundID, owner.UserID, "after"))

		got, err := repo.GetByID(ctx, sound.SoundID, owner.UserID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
	})

	t.Run("cross-user rename is not found", func(t *testing.T) {
		err := repo.UpdateName(ctx, sound.SoundID, other.UserID, "stolen")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

		got, err := repo.GetByID(ctx, sound.SoundID, owner.UserID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
	})
}

func TestSoundRepository_Delete(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewSoundRepository(testDB.DB)
	ctx := context.Background()

	owner, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	other, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	sound := testutil.NewSoundBuilder().WithOwner(owner).Build(t, testDB.DB)

	t.Run("cross-user delete is not found", func(t *testing.T) {
		err := repo.Delete(ctx, sound.SoundID, other.UserID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("deletes owned sound", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, sound.SoundID, owner.UserID))

		_, err := repo.GetByID(ctx, sound.SoundID, owner.UserID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("deleting again is not found", func(t *testing.T) {
		err := repo.Delete(ctx, sound.SoundID, owner.UserID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
