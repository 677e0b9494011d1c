package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// SeedAccount describes one account created at startup.
type SeedAccount struct {
	Username string
	Password string
	Roles    []string
}

// DefaultAccounts returns the three fixed accounts. The Write account also
// holds Read; this is where the Admin ⊇ Write ⊇ Read convention is
// established.
func DefaultAccounts(adminPassword, writePassword, readPassword string) []SeedAccount {
	return []SeedAccount{
		{Username: "Admin", Password: adminPassword, Roles: []string{domain.RoleAdmin}},
		{Username: "Write", Password: writePassword, Roles: []string{domain.RoleWrite, domain.RoleRead}},
		{Username: "Read", Password: readPassword, Roles: []string{domain.RoleRead}},
	}
}

// Seed creates the given accounts when absent. Idempotent: existing accounts
// are left untouched, so repeated startups change nothing.
func Seed(ctx context.Context, repo *UserRepository, accounts []SeedAccount, logger zerolog.Logger) error {
	for _, acc := range accounts {
		_, err := repo.FindByUsername(ctx, acc.Username)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrUserNotFound) {
			return fmt.Errorf("seed lookup %s: %w", acc.Username, err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed hash %s: %w", acc.Username, err)
		}

		user := &domain.User{
			Username:     acc.Username,
			PasswordHash: string(hash),
			Roles:        acc.Roles,
			CreatedAt:    time.Now().UTC(),
		}
		if err := repo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed create %s: %w", acc.Username, err)
		}
		logger.Info().Str("username", acc.Username).Strs("roles", acc.Roles).Msg("seed account created")
	}
	return nil
}
