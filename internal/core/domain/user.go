package domain

import "time"

// Role names. Every endpoint declares the exact set of roles it admits;
// Admin covering Write covering Read is a seeding convention, not a stored
// hierarchy.
const (
	RoleAdmin = "Admin"
	RoleWrite = "Write"
	RoleRead  = "Read"
)

// Permitted role sets per operation class.
var (
	ReadAccess  = []string{RoleRead, RoleWrite, RoleAdmin}
	WriteAccess = []string{RoleWrite, RoleAdmin}
	AdminAccess = []string{RoleAdmin}
)

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
