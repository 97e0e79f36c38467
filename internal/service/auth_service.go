package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soundloop/soundloop-api/internal/config"
	"github.com/soundloop/soundloop-api/internal/domain"
	"github.com/soundloop/soundloop-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrSessionExpired      = errors.New("session expired")
	ErrInvalidOAuthSession = errors.New("invalid oauth session")
	ErrUserNotFound        = errors.New("user not found")
)

const sessionLifetime = 7 * 24 * time.Hour

// TokenResolver resolves a bearer token to a user. Resolvers are tried in
// order; a resolver that cannot match the token returns ErrInvalidToken so
// the next one gets a chance.
type TokenResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	resolvers   []TokenResolver
	httpClient  *http.Client
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		resolvers: []TokenResolver{
			&jwtResolver{userRepo: userRepo, secret: []byte(cfg.JWTSecret)},
			&sessionResolver{userRepo: userRepo, sessionRepo: sessionRepo},
		},
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Check if email is taken
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:       domain.NewUserID(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	// OAuth-only accounts have no password hash
	if user.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

type oauthSessionData struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Picture      string `json:"picture"`
	SessionToken string `json:"session_token"`
}

// ProcessOAuthSession exchanges an external OAuth session id for identity
// data, upserts the user by email and replaces their stored session with one
// carrying the provider's session token. That token is returned as the bearer
// credential.
func (s *AuthService) ProcessOAuthSession(ctx context.Context, sessionID string) (*AuthResult, error) {
	data, err := s.fetchSessionData(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	user, err := s.upsertFromOAuth(ctx, data)
	if err != nil {
		return nil, err
	}

	// Single session per user: drop prior sessions before storing the new one.
	// The two writes are not atomic; a request between them sees no session.
	if err := s.sessionRepo.DeleteByUserID(ctx, user.UserID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session := &domain.UserSession{
		SessionToken: data.SessionToken,
		UserID:       user.UserID,
		ExpiresAt:    now.Add(sessionLifetime),
		CreatedAt:    now,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: data.SessionToken}, nil
}

func (s *AuthService) fetchSessionData(ctx context.Context, sessionID string) (*oauthSessionData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.OAuthSessionURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidOAuthSession
	}

	var data oauthSessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode session data: %w", err)
	}
	return &data, nil
}

func (s *AuthService) upsertFromOAuth(ctx context.Context, data *oauthSessionData) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, data.Email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		user = &domain.User{
			UserID:    domain.NewUserID(),
			Email:     data.Email,
			Name:      data.Name,
			CreatedAt: time.Now().UTC(),
		}
		if data.Picture != "" {
			user.Picture = &data.Picture
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}

	user.Name = data.Name
	if data.Picture != "" {
		user.Picture = &data.Picture
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	// Re-read so the caller sees the stored record
	return s.userRepo.GetByID(ctx, user.UserID)
}

// ResolveToken resolves a bearer token of either kind to a user. A distinct
// ErrSessionExpired is surfaced for expired stateful sessions; anything else
// that fails to match collapses to ErrInvalidToken.
func (s *AuthService) ResolveToken(ctx context.Context, token string) (*domain.User, error) {
	for _, resolver := range s.resolvers {
		user, err := resolver.Resolve(ctx, token)
		if err == nil {
			return user, nil
		}
		if errors.Is(err, ErrSessionExpired) {
			return nil, err
		}
	}
	return nil, ErrInvalidToken
}

// Logout deletes the session matching the bearer token, if any. Stateless
// tokens cannot be revoked; they lapse at their expiry.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessionRepo.DeleteByToken(ctx, token)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub": user.UserID,
		"exp": time.Now().Add(time.Duration(s.cfg.JWTExpirationHours) * time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// jwtResolver validates stateless signed tokens. Any parse, signature or
// expiry failure is reported as ErrInvalidToken so resolution falls through
// to the session resolver.
type jwtResolver struct {
	userRepo repository.UserRepository
	secret   []byte
}

func (r *jwtResolver) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return r.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// sessionResolver looks the token up verbatim in the session store.
type sessionResolver struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
}

func (r *sessionResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	session, err := r.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if session.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrSessionExpired
	}

	user, err := r.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
