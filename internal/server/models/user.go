// Package models contains the persisted server-side domain types.
package models

import "time"

// DefaultRole is assigned to every account created through registration.
const DefaultRole = "user"

// User is a registered account. PasswordHash and the reset-token pair are
// storage-only and must never be serialized in a response.
type User struct {
	ID                   string
	Name                 string
	FirstName            string
	LastName             string
	Email                string
	PasswordHash         string
	Role                 string
	ResetPasswordToken   string
	ResetPasswordExpires *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
