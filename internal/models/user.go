package models

import "time"

type UserRole string

const (
	UserRoleUser UserRole = "user"

	// UserRoleSuperAdmin is the only role the admin gateway ever accepts.
	UserRoleSuperAdmin UserRole = "super-admin"
)

// User is an account record. Password holds either a bcrypt hash or, for
// accounts created before hashing was introduced, the legacy plaintext
// secret. The legacy form is replaced with a hash on first successful login
// and is never written back by anything else.
type User struct {
	ID        string
	Name      string
	Email     string
	Password  string
	Role      UserRole
	CreatedAt time.Time
}
