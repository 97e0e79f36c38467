package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/repository/postgres"
	"github.com/soundloop/soundloop-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserRepository_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name: "successful creation",
			user: &domain.User{
				UserID:       domain.NewUserID(),
				Email:        "first@example.com",
				Name:         "First User",
				PasswordHash: "hashedpassword",
				CreatedAt:    time.Now(),
			},
			wantErr: false,
		},
		{
			name: "duplicate email",
			user: &domain.User{
				UserID:       domain.NewUserID(),
				Email:        "first@example.com", // Same as above
				Name:         "Second User",
				PasswordHash: "hashedpassword2",
				CreatedAt:    time.Now(),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().
		WithEmail("lookup@example.com").
		Build(t, testDB.DB)

	got, err := repo.GetByEmail(ctx, "lookup@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)

	_, err = repo.GetByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_SetPremium(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.False(t, user.IsPremium)

	require.NoError(t, repo.SetPremium(ctx, user.UserID, true))

	got, err := repo.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)

	require.NoError(t, repo.SetPremium(ctx, user.UserID, false))

	got, err = repo.GetByID(ctx, user.UserID)
	require.NoError(t, err)
	assert.False(t, got.IsPremium)
}

func TestUserRepository_AdjustSoundCount(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepository(testDB.DB)
	ctx := context.Background()

	user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

	tests := []struct {
		name      string
		delta     int
		wantCount int
	}{
		{name: "increment from zero", delta: 1, wantCount: 1},
		{name: "increment again", delta: 1, wantCount: 2},
		{name: "decrement", delta: -1, wantCount: 1},
		{name: "decrement to zero", delta: -1, wantCount: 0},
		{name: "never goes negative", delta: -1, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, repo.AdjustSoundCount(ctx, user.UserID, tt.delta))

			got, err := repo.GetByID(ctx, user.UserID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, got.SoundCount)
		})
	}
}
