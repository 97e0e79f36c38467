package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soundloop/soundloop-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	email    string
	name     string
	password string
	premium  bool
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		name:     fmt.Sprintf("Test User %s", suffix),
		password: "testpassword123",
	}
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithPremium sets the premium flag
func (b *UserBuilder) WithPremium(premium bool) *UserBuilder {
	b.premium = premium
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		UserID:       domain.NewUserID(),
		Email:        b.email,
		Name:         b.name,
		PasswordHash: string(hashedPassword),
		IsPremium:    b.premium,
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildOAuthOnly creates a user without a password hash, as the OAuth upsert does
func (b *UserBuilder) BuildOAuthOnly(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()

	user := &domain.User{
		UserID:    domain.NewUserID(),
		Email:     b.email,
		Name:      b.name,
		IsPremium: b.premium,
		CreatedAt: time.Now().UTC(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	Token string `json:"token"`
	User  struct {
		UserID     string `json:"user_id"`
		Email      string `json:"email"`
		Name       string `json:"name"`
		IsPremium  bool   `json:"is_premium"`
		SoundCount int    `json:"sound_count"`
	} `json:"user"`
}

// BuildAndAuthenticate creates a user via API and returns the user and bearer token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"email":    b.email,
		"name":     b.name,
		"password": b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	user := &domain.User{
		UserID: authResp.User.UserID,
		Email:  authResp.User.Email,
		Name:   authResp.User.Name,
	}

	return user, authResp.Token
}

// SoundBuilder creates test sounds with a builder pattern
type SoundBuilder struct {
	owner           *domain.User
	name            string
	audioData       string
	durationSeconds float64
}

// NewSoundBuilder creates a new SoundBuilder with default values
func NewSoundBuilder() *SoundBuilder {
	return &SoundBuilder{
		name:            fmt.Sprintf("loop_%s", uuid.New().String()[:8]),
		audioData:       "UklGRiQAAABXQVZF", // tiny base64 stub payload
		durationSeconds: 12.5,
	}
}

// WithOwner sets the owning user
func (b *SoundBuilder) WithOwner(user *domain.User) *SoundBuilder {
	b.owner = user
	return b
}

// WithName sets the sound name
func (b *SoundBuilder) WithName(name string) *SoundBuilder {
	b.name = name
	return b
}

// WithDuration sets the duration in seconds
func (b *SoundBuilder) WithDuration(seconds float64) *SoundBuilder {
	b.durationSeconds = seconds
	return b
}

// WithAudioData sets the base64 payload
func (b *SoundBuilder) WithAudioData(data string) *SoundBuilder {
	b.audioData = data
	return b
}

// Build creates the sound in the database and bumps the owner's counter to
// keep the denormalized count consistent with the rows.
func (b *SoundBuilder) Build(t *testing.T, db *gorm.DB) *domain.Sound {
	t.Helper()

	if b.owner == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.owner = user
	}

	sound := &domain.Sound{
		SoundID:         domain.NewSoundID(),
		UserID:          b.owner.UserID,
		Name:            b.name,
		AudioData:       b.audioData,
		DurationSeconds: b.durationSeconds,
		CreatedAt:       time.Now().UTC(),
	}

	if err := db.Create(sound).Error; err != nil {
		t.Fatalf("failed to create sound: %v", err)
	}

	err := db.Model(&domain.User{}).
		Where("user_id = ?", b.owner.UserID).
		UpdateColumn("sound_count", gorm.Expr("sound_count + 1")).Error
	if err != nil {
		t.Fatalf("failed to bump sound count: %v", err)
	}

	return sound
}

// SessionBuilder creates stateful session rows
type SessionBuilder struct {
	user      *domain.User
	token     string
	expiresAt time.Time
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		token:     fmt.Sprintf("sess_%s", uuid.New().String()),
		expiresAt: time.Now().UTC().Add(24 * time.Hour),
	}
}

// WithUser sets the owning user
func (b *SessionBuilder) WithUser(user *domain.User) *SessionBuilder {
	b.user = user
	return b
}

// WithToken sets the session token
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.token = token
	return b
}

// WithExpiresAt sets the expiry timestamp
func (b *SessionBuilder) WithExpiresAt(expiresAt time.Time) *SessionBuilder {
	b.expiresAt = expiresAt
	return b
}

// Build creates the session in the database and returns its token
func (b *SessionBuilder) Build(t *testing.T, db *gorm.DB) string {
	t.Helper()

	if b.user == nil {
		user, _ := NewUserBuilder().Build(t, db)
		b.user = user
	}

	session := &domain.UserSession{
		SessionToken: b.token,
		UserID:       b.user.UserID,
		ExpiresAt:    b.expiresAt,
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	return b.token
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}
