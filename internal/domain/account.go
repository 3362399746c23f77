package domain

import "time"

// Role differentiates society administrators from residents.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleResident Role = "resident"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleResident
}

// Account is the domain model for portal users. Residents carry a flat
// number; administrators do not.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Contact      string
	FlatNumber   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsResident reports whether the account belongs to a resident.
func (a *Account) IsResident() bool {
	return a.Role == RoleResident
}
