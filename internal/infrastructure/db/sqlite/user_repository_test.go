package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/layer2/project-tracker/internal/core/domain"
)

func TestUserRepository_FindByUsername_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT id, username, password_hash, roles, created_at FROM users WHERE username = \?`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	repo := NewUserRepository(db)
	if _, err := repo.FindByUsername(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepository_FindByUsername_DecodesRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username", "password_hash", "roles", "created_at"}).
		AddRow(int64(2), "Write", "hash", []byte(`["Write","Read"]`), int64(1700000000))
	mock.ExpectQuery(`SELECT id, username, password_hash, roles, created_at FROM users WHERE username = \?`).
		WithArgs("Write").
		WillReturnRows(rows)

	repo := NewUserRepository(db)
	user, err := repo.FindByUsername(context.Background(), "Write")
	if err != nil {
		t.Fatalf("FindByUsername() error: %v", err)
	}
	if user.ID != 2 || user.Username != "Write" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if len(user.Roles) != 2 || user.Roles[0] != "Write" || user.Roles[1] != "Read" {
		t.Fatalf("roles not decoded: %v", user.Roles)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Admin", "hash", []byte(`["Admin"]`), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	repo := NewUserRepository(db)
	user := &domain.User{Username: "Admin", PasswordHash: "hash", Roles: []string{"Admin"}}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", user.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}
