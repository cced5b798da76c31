package models

// User represents a user account in the system.
type User struct {
	ID        int64    `db:"id" json:"id"`
	Email     string   `db:"email" json:"email"`
	Password  string   `db:"password" json:"-"` // bcrypt hash, never the raw password
	FirstName string   `db:"first_name" json:"first_name"`
	LastName  string   `db:"last_name" json:"last_name"`
	Role      RoleType `db:"role" json:"role"`
	Banned    bool     `db:"banned" json:"banned"`
	Verified  bool     `db:"verified" json:"verified"`
}
