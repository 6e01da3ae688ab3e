package entity

import "time"

// User is the public view of an account. The password hash never leaves the
// store through this type.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      Role
	Phone     string
	City      string
	Address   string
	Interest  string
	Avatar    string
	AvatarKey string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserCredential is what login and password flows need to check a password.
type UserCredential struct {
	ID       int64
	Email    string
	Password string
}

// NewUser is the payload for creating an account.
type NewUser struct {
	ID       int64
	Name     string
	Email    string
	Password string
	Role     Role
}

// UserProfile holds the editable profile fields. Nil fields are left as is.
type UserProfile struct {
	Name     *string
	Phone    *string
	City     *string
	Address  *string
	Interest *string
}

// IsEmpty reports whether no field is set.
func (p UserProfile) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.City == nil && p.Address == nil && p.Interest == nil
}

// OTP is a stored one-time password record. The code itself lives only inside
// the signed Envelope.
type OTP struct {
	ID        int64
	Email     string
	Purpose   Purpose
	Envelope  string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsLive reports whether the record is still usable at now.
func (o OTP) IsLive(now time.Time) bool {
	return o.ExpiresAt.After(now)
}
