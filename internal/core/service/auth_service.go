package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/layer2/project-tracker/internal/core/domain"
	"github.com/layer2/project-tracker/internal/core/ports"
)

const defaultTokenTTL = time.Hour

// TokenConfig carries the signing parameters for issued tokens. The same
// symmetric secret is used by the verifying middleware.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// AuthService implements stateless login: it verifies credentials against the
// user repository and mints a signed, time-bounded JWT. No session state is
// kept server-side.
type AuthService struct {
	repo    ports.UserRepository
	limiter ports.LoginLimiter
	cfg     TokenConfig
	logger  zerolog.Logger
}

// NewAuthService creates an AuthService. limiter may be nil, in which case
// login throttling is disabled.
func NewAuthService(repo ports.UserRepository, limiter ports.LoginLimiter, cfg TokenConfig, logger zerolog.Logger) *AuthService {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, limiter: limiter, cfg: cfg, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		blocked, err := s.limiter.TooMany(ctx, username)
		if err != nil {
			// Limiter outage must not lock everyone out; fail open.
			s.logger.Warn().Err(err).Msg("login limiter unavailable")
		} else if blocked {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", user.Username).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, username); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.Username,
		"roles": user.Roles,
		"iss":   s.cfg.Issuer,
		"aud":   s.cfg.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(s.cfg.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.cfg.Secret))
}
