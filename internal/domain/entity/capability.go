package entity

// CapabilitySet holds the boolean access rights derived from a staff member's
// role assignments. A zero CapabilitySet grants nothing, which is also the
// required result when capability resolution fails.
type CapabilitySet struct {
	Roles              Roles
	IsAdmin            bool
	IsHealthcareWorker bool
}

// DeriveCapabilities maps a set of role assignments to capability flags by set
// membership.
func DeriveCapabilities(roles Roles) CapabilitySet {
	return CapabilitySet{
		Roles:              roles,
		IsAdmin:            roles.Contains(RoleAdmin),
		IsHealthcareWorker: roles.Contains(RoleHealthcareWorker),
	}
}
