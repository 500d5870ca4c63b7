package constants

import "fmt"

// Role names as stored in users.user_role.
const (
	RoleMember     = "member"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Template error messages per role group
const (
	ErrOnlyAdminsCanAccess = "❌ Only admin or super admin may access %s."
	ErrOnlyOwnersCanAccess = "❌ Only super admin may access %s."
)

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorSuperAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyOwnersCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleMember,
		RoleAdmin,
		RoleSuperAdmin,
	}

	AdminAndAbove = []string{
		RoleAdmin,
		RoleSuperAdmin,
	}

	SuperAdminOnly = []string{
		RoleSuperAdmin,
	}
)

// Capability set per role. The session endpoint reports these so clients
// never have to hard-code role checks.
var CapabilitiesByRole = map[string][]string{
	RoleMember: {
		"events.view",
		"events.register",
		"contents.view",
	},
	RoleAdmin: {
		"events.view",
		"events.register",
		"events.manage",
		"contents.view",
		"contents.manage",
		"registrations.view",
		"dashboard.view",
	},
	RoleSuperAdmin: {
		"events.view",
		"events.register",
		"events.manage",
		"contents.view",
		"contents.manage",
		"registrations.view",
		"dashboard.view",
		"users.manage",
	},
}

// CapabilitiesFor returns the capability set for a role, defaulting to the
// member set for unknown roles.
func CapabilitiesFor(role string) []string {
	if caps, ok := CapabilitiesByRole[role]; ok {
		return caps
	}
	return CapabilitiesByRole[RoleMember]
}
