// Package auth implements farm-account registration, login, and the passkey
// confirmation required before destructive actions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mamadbah2/dairybook/internal/config"
	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
)

var (
	// ErrInvalidCredentials covers wrong email or password on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPasskey is returned when a registration passkey is not a
	// 4-digit string.
	ErrInvalidPasskey = errors.New("passkey must be exactly 4 digits")
)

// Claims is the token payload. FarmID scopes every subsequent request.
type Claims struct {
	FarmID string `json:"farm_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest carries a new farm account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FarmName string `json:"farm_name" binding:"required"`
	Passkey  string `json:"passkey" binding:"required"`
}

// Service implements account and token operations.
type Service struct {
	users  mongodb.UserRepository
	cfg    config.AuthConfig
	logger *zap.Logger
}

// NewService wires a new auth service instance.
func NewService(users mongodb.UserRepository, cfg config.AuthConfig, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{users: users, cfg: cfg, logger: logger}
}

// Register creates a farm account, hashing both the password and the
// confirmation passkey. The passkey plaintext is never persisted.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if !isFourDigits(req.Passkey) {
		return nil, ErrInvalidPasskey
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	passkeyHash, err := bcrypt.GenerateFromPassword([]byte(req.Passkey), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash passkey: %w", err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		Email:        req.Email,
		FarmName:     req.FarmName,
		PasswordHash: string(passwordHash),
		PasskeyHash:  string(passkeyHash),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("farm account registered", zap.String("farm_id", user.ID.Hex()))
	return user, nil
}

// Login verifies credentials and issues a signed token.
func (s *Service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, mongodb.ErrNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// IssueToken signs a token for the given account.
func (s *Service) IssueToken(user *models.User) (string, error) {
	claims := &Claims{
		FarmID: user.ID.Hex(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates a token string and returns its claims.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidCredentials
	}

	return claims, nil
}

// ConfirmPasskey checks the supplied secret against the farm's stored passkey
// hash. This is the capability check callers must pass before any mutating
// operation flagged as destructive.
func (s *Service) ConfirmPasskey(ctx context.Context, farmID, passkey string) (bool, error) {
	user, err := s.users.GetUserByID(ctx, farmID)
	if errors.Is(err, mongodb.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return bcrypt.CompareHashAndPassword([]byte(user.PasskeyHash), []byte(passkey)) == nil, nil
}

func isFourDigits(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
