package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/de-tools/booking-atlas/pkg/store/bookingdb"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
)

// Settings configures token issuance and the legacy plaintext fallback.
// AllowPlaintext must stay off outside environments that still carry
// unhashed rows.
type Settings struct {
	JWTSecret      string
	TokenTTL       time.Duration
	AllowPlaintext bool
}

func (s Settings) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return 12 * time.Hour
	}
	return s.TokenTTL
}

// Service authenticates staff accounts and issues bearer tokens.
type Service interface {
	Login(ctx context.Context, adminID, password string) (token string, err error)
	Verify(token string) (adminID string, err error)
}

type service struct {
	accounts bookingdb.AccountStore
	settings Settings
	now      func() time.Time
}

func NewService(accounts bookingdb.AccountStore, settings Settings) Service {
	return &service{accounts: accounts, settings: settings, now: time.Now}
}

// Login checks credentials against the stored account. Unknown accounts
// and wrong passwords return the same error so the response does not
// reveal which ids exist.
func (s *service) Login(ctx context.Context, adminID, password string) (string, error) {
	logger := zerolog.Ctx(ctx)

	row, err := s.accounts.Get(ctx, adminID)
	if err != nil {
		return "", fmt.Errorf("load account: %w", err)
	}
	if row == nil {
		return "", ErrInvalidCredentials
	}
	if row.Status.Valid && row.Status.String != "" && row.Status.String != "active" {
		return "", ErrAccountDisabled
	}
	ok, scheme := verifyPassword(row.Password, password, s.settings.AllowPlaintext)
	if !ok {
		logger.Warn().Str("admin_id", adminID).Msg("login rejected")
		return "", ErrInvalidCredentials
	}
	if scheme != schemeBcrypt {
		logger.Warn().
			Str("admin_id", adminID).
			Str("scheme", scheme).
			Msg("account matched a legacy password scheme, rehash needed")
	}

	token, err := s.issue(adminID)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	logger.Info().Str("admin_id", adminID).Msg("login succeeded")
	return token, nil
}

func (s *service) issue(adminID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   adminID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.settings.tokenTTL())),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.settings.JWTSecret))
}

// Verify parses a bearer token and returns its subject.
func (s *service) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(s.settings.JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil {
		return "", fmt.Errorf("parse token: %w", err)
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
