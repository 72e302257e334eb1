package models

import "time"

// AdminRole distinguishes the seeded super admin from regular admins.
type AdminRole string

const (
	RoleSuper AdminRole = "super"
	RoleAdmin AdminRole = "admin"
)

// Admin represents a panel administrator. The password hash never leaves
// the process.
type Admin struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	Role         AdminRole `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}
