// Package entity contains the core business objects of the project.
package entity

import "slices"

// RoleLabel represents the type of access role a staff identity can hold.
type RoleLabel string

const (
	// RoleAdmin grants access to staff and role administration.
	RoleAdmin RoleLabel = "admin"
	// RoleHealthcareWorker marks regular clinical staff.
	RoleHealthcareWorker RoleLabel = "healthcare_worker"
)

// String returns the string representation of the RoleLabel.
func (r RoleLabel) String() string {
	return string(r)
}

// IsValid checks if the RoleLabel is a valid value.
func (r RoleLabel) IsValid() bool {
	switch r {
	case RoleAdmin, RoleHealthcareWorker:
		return true
	default:
		return false
	}
}

// Roles is a slice of RoleLabel for convenience.
type Roles []RoleLabel

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role RoleLabel) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for serialization.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}

// RolesFromStrings converts []string to Roles, filtering out invalid role strings.
func RolesFromStrings(ss []string) Roles {
	result := make(Roles, 0, len(ss))
	for _, s := range ss {
		role := RoleLabel(s)
		if role.IsValid() {
			result = append(result, role)
		}
	}

	return result
}
