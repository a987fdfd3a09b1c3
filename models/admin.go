package models

import "time"

// Admin roles. A super admin manages other admins and can edit any event;
// the remaining roles are scoped to the event classification they match.
const (
	RoleSuperAdmin = "super_admin"
	RoleSpecial    = "special"
	RoleNormal     = "normal"
	RoleGlobal     = "global"
)

// Admin represents a staff account. Passwords are stored as bcrypt hashes only.
type Admin struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FirstName    string    `gorm:"size:64" json:"firstname"`
	LastName     string    `gorm:"size:64" json:"lastname"`
	Role         string    `gorm:"size:16;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidAdminRole reports whether role is one of the recognized admin roles.
func ValidAdminRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleSpecial, RoleNormal, RoleGlobal:
		return true
	}
	return false
}
