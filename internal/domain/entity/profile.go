package entity

import "github.com/google/uuid"

// UserProfile is the denormalized identity metadata created at account
// provisioning. The core reads it and joins it with role assignments; it never
// writes it.
type UserProfile struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	County       string
	FacilityName string
}

// StaffAccount is a UserProfile joined with the staff member's current role
// assignments, as shown on the administration screen.
type StaffAccount struct {
	Profile UserProfile
	Roles   Roles
}

// IsAdmin reports whether the account currently holds the admin role.
func (s StaffAccount) IsAdmin() bool {
	return s.Roles.Contains(RoleAdmin)
}
