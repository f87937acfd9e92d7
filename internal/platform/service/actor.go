package service

import "github.com/yukti/platform/internal/platform/domain"

// Actor is the authenticated caller of a management operation.
type Actor struct {
	UserID    string
	Email     string
	Role      domain.Role
	CompanyID string
}

func (a Actor) IsAdmin() bool { return a.Role == domain.RoleAdmin }

// canManage reports whether the actor may manage users of their company.
func (a Actor) canManage() bool {
	return a.Role == domain.RoleAdmin || a.Role == domain.RoleCompanyAdmin
}

// sameCompany is true for platform admins and for members of companyID.
func (a Actor) sameCompany(companyID string) bool {
	return a.IsAdmin() || a.CompanyID == companyID
}
