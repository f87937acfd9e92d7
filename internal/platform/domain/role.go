package domain

import "slices"

type Role string

const (
	RoleClient       Role = "client"
	RoleUser         Role = "user"
	RoleSRE          Role = "sre"
	RoleCompanyAdmin Role = "company_admin"
	RoleAdmin        Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleUser, RoleSRE, RoleCompanyAdmin, RoleAdmin:
		return true
	}
	return false
}

// Permission strings are "<resource>:<action>".
const (
	PermUserRead       = "user:read"
	PermUserWrite      = "user:write"
	PermUserDelete     = "user:delete"
	PermCompanyRead    = "company:read"
	PermCompanyWrite   = "company:write"
	PermCompanyDelete  = "company:delete"
	PermCompanyApprove = "company:approve"
	PermProjectRead    = "project:read"
	PermProjectWrite   = "project:write"
	PermProjectDelete  = "project:delete"
	PermProjectAssign  = "project:assign"
	PermAdminDashboard = "admin:dashboard"
	PermAdminUsers     = "admin:users"
	PermAdminCompanies = "admin:companies"
	PermAdminSettings  = "admin:settings"
)

// AllPermissions lists every known permission in a stable order.
var AllPermissions = []string{
	PermUserRead, PermUserWrite, PermUserDelete,
	PermCompanyRead, PermCompanyWrite, PermCompanyDelete, PermCompanyApprove,
	PermProjectRead, PermProjectWrite, PermProjectDelete, PermProjectAssign,
	PermAdminDashboard, PermAdminUsers, PermAdminCompanies, PermAdminSettings,
}

var defaultPermissions = map[Role][]string{
	RoleClient: {PermUserRead, PermCompanyRead, PermProjectRead},
	RoleUser:   {PermUserRead, PermCompanyRead, PermProjectRead},
	RoleSRE:    {PermUserRead, PermCompanyRead, PermProjectRead, PermProjectWrite},
	RoleCompanyAdmin: {
		PermUserRead, PermUserWrite, PermUserDelete,
		PermCompanyRead, PermCompanyWrite,
		PermProjectRead, PermProjectWrite, PermProjectDelete,
	},
	RoleAdmin: AllPermissions,
}

// DefaultPermissions returns a fresh copy of the permissions granted to role
// at creation time. Unknown roles get none.
func DefaultPermissions(r Role) []string {
	return slices.Clone(defaultPermissions[r])
}

// ValidPermission reports whether p is a known permission.
func ValidPermission(p string) bool {
	return slices.Contains(AllPermissions, p)
}
