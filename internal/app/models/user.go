package models

import "time"

// User is a verified account
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"-"`
	MobileNumber string    `json:"mobileNumber,omitempty"`
	Role         RoleType  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`

	// OTP slot used by the password reset flow. The hash is bcrypt; expiry is
	// a plain timestamp comparison, there is no background sweeper.
	OTPHash   *string    `json:"-"`
	OTPExpiry *time.Time `json:"-"`
}

// PendingUser is a registration awaiting OTP verification. It is promoted to a
// User once the correct OTP is supplied before expiry.
type PendingUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	OTPHash   string    `json:"-"`
	OTPExpiry time.Time `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
