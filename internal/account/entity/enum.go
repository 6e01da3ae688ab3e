package entity

import "strings"

// Purpose scopes an OTP to the flow that requested it.
type Purpose string

const (
	// PurposeRegister gates account creation.
	PurposeRegister Purpose = "REGISTER"
	// PurposeForgotPassword gates a password reset.
	PurposeForgotPassword Purpose = "FORGOT_PASSWORD"
)

func (p Purpose) String() string {
	return string(p)
}

// IsValid reports whether p is one of the known purposes.
func (p Purpose) IsValid() bool {
	switch p {
	case PurposeRegister, PurposeForgotPassword:
		return true
	default:
		return false
	}
}

// Role is the storefront role of a user.
type Role string

const (
	RoleUser   Role = "USER"
	RoleAdmin  Role = "ADMIN"
	RoleSeller Role = "SELLER"
)

// Ensure maps unknown roles to RoleUser.
func (r Role) Ensure() Role {
	switch r {
	case RoleAdmin, RoleSeller:
		return r
	default:
		return RoleUser
	}
}

// NormalizeEmail trims and lower-cases an email so every read and write
// uses the same key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
