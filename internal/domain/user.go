package domain

import "time"

// Role is the authority string attached to a user. Role strings follow the
// ROLE_ prefix convention (e.g. ROLE_ADMIN).
type Role string

const (
	RoleAdmin Role = "ROLE_ADMIN"
	RoleUser  Role = "ROLE_USER"
)

// User is the persisted credential record. Records are immutable after
// registration; there are no update or delete paths.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
