package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/gmi-lojistik/tir-takip/internal/config"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/logger"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/utils"
	"github.com/gmi-lojistik/tir-takip/internal/pkg/xerr"
	"go.uber.org/zap"
)

const adminSubject = "admin"

type LoginResult struct {
	Token        string    `json:"token"`
	ExpiresAt    time.Time `json:"expiresAt"`
	AuthRequired bool      `json:"authRequired"`
}

// AuthService guards the admin surface with a single shared password.
type AuthService interface {
	// Enabled reports whether admin endpoints require a token.
	Enabled() bool
	// Login exchanges the admin password for a bearer token.
	Login(ctx context.Context, password string) (*LoginResult, error)
	// Verify checks a bearer token.
	Verify(token string) (*utils.Claims, error)
}

type authService struct {
	passwordHash string
	jwt          config.JWTConfig
}

var _ AuthService = (*authService)(nil)

// NewAuthService hashes a plain admin password once at startup. With no
// password configured the gate is disabled.
func NewAuthService(cfg *config.Config) (AuthService, error) {
	s := &authService{passwordHash: cfg.Auth.AdminPasswordHash, jwt: cfg.JWT}
	if s.passwordHash == "" && cfg.Auth.AdminPassword != "" {
		hash, err := utils.HashPassword(cfg.Auth.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		s.passwordHash = hash
	}
	if !s.Enabled() {
		logger.Warn("No admin password configured: admin endpoints are unauthenticated, run behind an authenticating proxy")
	}
	return s, nil
}

func (s *authService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *authService) Login(_ context.Context, password string) (*LoginResult, error) {
	if !s.Enabled() {
		return &LoginResult{AuthRequired: false}, nil
	}
	ok, err := utils.CheckPasswordHash(password, s.passwordHash)
	if err != nil {
		return nil, fmt.Errorf("verify admin password: %w", err)
	}
	if !ok {
		logger.Warn("Admin login rejected")
		return nil, xerr.ErrInvalidCredentials
	}

	token, expiresAt, err := utils.GenerateToken(adminSubject, s.jwt.SecretKey, s.jwt.Issuer, s.jwt.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	logger.Info("Admin logged in", zap.Time("expiresAt", expiresAt))
	return &LoginResult{Token: token, ExpiresAt: expiresAt, AuthRequired: true}, nil
}

func (s *authService) Verify(token string) (*utils.Claims, error) {
	claims, err := utils.ParseToken(token, s.jwt.SecretKey, s.jwt.Issuer)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xerr.ErrUnauthorized, err)
	}
	return claims, nil
}
