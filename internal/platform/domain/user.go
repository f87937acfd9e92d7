package domain

import (
	"math"
	"time"
)

type UserStatus string

const (
	UserActive    UserStatus = "active"
	UserInactive  UserStatus = "inactive"
	UserPending   UserStatus = "pending"
	UserSuspended UserStatus = "suspended"
)

func (s UserStatus) Valid() bool {
	switch s {
	case UserActive, UserInactive, UserPending, UserSuspended:
		return true
	}
	return false
}

// CanAuthenticate is false for inactive and suspended accounts. Pending users
// may log in; what they can reach is decided by their company's status.
func (s UserStatus) CanAuthenticate() bool {
	return s != UserInactive && s != UserSuspended
}

type User struct {
	ID               string
	Email            string
	Name             string
	Phone            string
	Role             Role
	CompanyID        string
	Status           UserStatus
	Permissions      []string
	EmailVerified    bool
	EmailVerifiedAt  *time.Time
	TwoFactorEnabled bool
	LastLogin        *time.Time

	OTP          *OTP
	Security     Security
	Invitation   Invitation
	EmailChange  EmailChange
	Deactivation Deactivation

	// Version increments on every write; stores reject stale updates.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Security struct {
	LoginAttempts   int
	LockUntil       *time.Time
	LastLoginIP     string
	LastUserAgent   string
	LastOTPRequest  *time.Time
	OTPRequestCount int
}

type Invitation struct {
	TokenHash   string // SHA-256 fingerprint of the emailed token
	TokenSealed string // the token itself, sealed with cryptox, for resends
	Expiry      *time.Time
	InvitedBy   string
	AcceptedAt  *time.Time
}

type EmailChange struct {
	PendingEmail string
	TokenHash    string
	Expiry       *time.Time
}

type Deactivation struct {
	Reason string
	At     *time.Time
	By     string
}

// LockedFor returns how long the account stays locked, or zero.
func (u *User) LockedFor(now time.Time) time.Duration {
	if u.Security.LockUntil == nil || !u.Security.LockUntil.After(now) {
		return 0
	}
	return u.Security.LockUntil.Sub(now)
}

// LockedMinutes rounds the remaining lock up to whole minutes.
func (u *User) LockedMinutes(now time.Time) int {
	return int(math.Ceil(u.LockedFor(now).Minutes()))
}

// Identity fields only; the OTP and Security blocks never leave the service.
type UserView struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone,omitempty"`
	Role             Role       `json:"role"`
	CompanyID        string     `json:"companyId"`
	Status           UserStatus `json:"status"`
	Permissions      []string   `json:"permissions"`
	EmailVerified    bool       `json:"emailVerified"`
	EmailVerifiedAt  *time.Time `json:"emailVerifiedAt,omitempty"`
	TwoFactorEnabled bool       `json:"twoFactorEnabled"`
	LastLogin        *time.Time `json:"lastLogin,omitempty"`
	InvitedBy        string     `json:"invitedBy,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

func (u *User) View() UserView {
	perms := u.Permissions
	if perms == nil {
		perms = []string{}
	}
	return UserView{
		ID:               u.ID,
		Email:            u.Email,
		Name:             u.Name,
		Phone:            u.Phone,
		Role:             u.Role,
		CompanyID:        u.CompanyID,
		Status:           u.Status,
		Permissions:      perms,
		EmailVerified:    u.EmailVerified,
		EmailVerifiedAt:  u.EmailVerifiedAt,
		TwoFactorEnabled: u.TwoFactorEnabled,
		LastLogin:        u.LastLogin,
		InvitedBy:        u.Invitation.InvitedBy,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

// Membership is a user hydrated with the company it belongs to.
type Membership struct {
	User    User
	Company Company
}
