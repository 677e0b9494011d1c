package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/layer2/project-tracker/internal/core/domain"
)

// UserRepository persists credential records. Roles are stored as a JSON
// array in a text column.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT id, username, password_hash, roles, created_at FROM users WHERE username = ?`

	var u domain.User
	var rolesJSON []byte
	var createdAt int64
	err := r.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &rolesJSON, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	if len(rolesJSON) > 0 {
		if err := json.Unmarshal(rolesJSON, &u.Roles); err != nil {
			return nil, fmt.Errorf("decode roles: %w", err)
		}
	}
	u.CreatedAt = unixToTime(createdAt)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return fmt.Errorf("encode roles: %w", err)
	}

	const q = `INSERT INTO users (username, password_hash, roles, created_at) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, user.Username, user.PasswordHash, rolesJSON, timeToUnix(user.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert user id: %w", err)
	}
	user.ID = id
	return nil
}
