package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) addUser(t *testing.T, username, password string, roles ...string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	r.users[username] = &domain.User{
		ID:           int64(len(r.users) + 1),
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
	}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.users[user.Username] = user
	return nil
}

type stubLimiter struct {
	failures map[string]int
	blocked  bool
	err      error
}

func (l *stubLimiter) TooMany(_ context.Context, _ string) (bool, error) {
	return l.blocked, l.err
}

func (l *stubLimiter) RecordFailure(_ context.Context, username string) error {
	if l.failures == nil {
		l.failures = make(map[string]int)
	}
	l.failures[username]++
	return nil
}

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   "secret",
		Issuer:   "project-tracker",
		Audience: "project-tracker-client",
		TTL:      time.Hour,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser(t, "Write", "Write@123", domain.RoleWrite, domain.RoleRead)
	svc := NewAuthService(repo, nil, testTokenConfig(), zerolog.Nop())

	token, err := svc.Login(context.Background(), "Write", "Write@123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != "Write" {
		t.Fatalf("expected sub Write, got %v", claims["sub"])
	}
	if claims["iss"] != "project-tracker" || claims["aud"] != "project-tracker-client" {
		t.Fatalf("unexpected issuer/audience: %v / %v", claims["iss"], claims["aud"])
	}

	roles, ok := claims["roles"].([]interface{})
	if !ok || len(roles) != 2 || roles[0] != domain.RoleWrite || roles[1] != domain.RoleRead {
		t.Fatalf("unexpected roles claim: %v", claims["roles"])
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp claim: %v", err)
	}
	if remaining := time.Until(exp.Time); remaining < 55*time.Minute || remaining > time.Hour {
		t.Fatalf("unexpected token lifetime: %v", remaining)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserFailIdentically(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser(t, "Read", "Read@123", domain.RoleRead)
	svc := NewAuthService(repo, nil, testTokenConfig(), zerolog.Nop())

	_, errWrongPassword := svc.Login(context.Background(), "Read", "bad")
	_, errUnknownUser := svc.Login(context.Background(), "ghost", "bad")

	if !errors.Is(errWrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownUser, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", errUnknownUser)
	}
	if errWrongPassword.Error() != errUnknownUser.Error() {
		t.Fatalf("login errors must be indistinguishable: %q vs %q", errWrongPassword, errUnknownUser)
	}
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), nil, testTokenConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser(t, "Admin", "Admin@123", domain.RoleAdmin)
	limiter := &stubLimiter{blocked: true}
	svc := NewAuthService(repo, limiter, testTokenConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "Admin", "Admin@123"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_LimiterFailsOpen(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser(t, "Admin", "Admin@123", domain.RoleAdmin)
	limiter := &stubLimiter{err: errors.New("redis down")}
	svc := NewAuthService(repo, limiter, testTokenConfig(), zerolog.Nop())

	if _, err := svc.Login(context.Background(), "Admin", "Admin@123"); err != nil {
		t.Fatalf("expected login to succeed when limiter errors, got %v", err)
	}
}

func TestAuthService_Login_FailuresRecorded(t *testing.T) {
	repo := newStubUserRepo()
	repo.addUser(t, "Read", "Read@123", domain.RoleRead)
	limiter := &stubLimiter{}
	svc := NewAuthService(repo, limiter, testTokenConfig(), zerolog.Nop())

	_, _ = svc.Login(context.Background(), "Read", "bad")
	_, _ = svc.Login(context.Background(), "ghost", "bad")

	if limiter.failures["Read"] != 1 || limiter.failures["ghost"] != 1 {
		t.Fatalf("expected one recorded failure each, got %v", limiter.failures)
	}
}
