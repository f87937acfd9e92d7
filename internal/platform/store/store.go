package store

import (
	"context"
	"errors"
	"time"

	"github.com/yukti/platform/internal/platform/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrConflict means the row changed since it was read; reload and retry.
	ErrConflict = errors.New("store: concurrent modification")
)

// Store is the root data access interface implemented by each driver. Work
// that must be atomic goes through WithTx, which hands out a Tx-scoped Store
// that refuses to nest.
type Store interface {
	Users() Users
	Companies() Companies
	RevokedTokens() RevokedTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction. The caller must Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type UserFilter struct {
	CompanyID string
	Status    domain.UserStatus // empty matches all
	Role      domain.Role       // empty matches all
	Offset    int
	Limit     int
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches the lower-cased email.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByInvitationHash(ctx context.Context, hash string) (domain.User, error)

	// GetMembership loads a user joined with its company in one read.
	GetMembership(ctx context.Context, userID string) (domain.Membership, error)

	// CreateUser inserts u with Version 1. A taken email is ErrAlreadyExists.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes every mutable column when the stored version still
	// equals u.Version, and returns the user with its new version. A stale
	// version is ErrConflict.
	UpdateUser(ctx context.Context, u domain.User) (domain.User, error)

	DeleteUser(ctx context.Context, id string) error

	// ListUsers returns one page, newest first, and the unpaged total.
	ListUsers(ctx context.Context, f UserFilter) ([]domain.User, int, error)

	CountUsersByStatus(ctx context.Context, companyID string) (map[domain.UserStatus]int, error)

	// FirstUserByRole returns the earliest created member of the company with role.
	FirstUserByRole(ctx context.Context, companyID string, role domain.Role) (domain.User, error)

	// SetCompanyUsersStatus moves every member of the company whose status is
	// in from (all members when from is empty) to status `to`.
	SetCompanyUsersStatus(ctx context.Context, companyID string, from []domain.UserStatus, to domain.UserStatus, now time.Time) (int64, error)

	// ClearStaleOTPs empties OTP slots that expired before cutoff.
	ClearStaleOTPs(ctx context.Context, cutoff time.Time) (int64, error)

	CountAdmins(ctx context.Context) (int, error)
}

type CompanyFilter struct {
	Status   domain.CompanyStatus
	Search   string // case-insensitive substring of name, alias or business email
	SortBy   string // createdAt, name, status
	SortDesc bool
	Offset   int
	Limit    int
}

type Companies interface {
	GetCompanyByID(ctx context.Context, id string) (domain.Company, error)
	GetCompanyByAlias(ctx context.Context, alias string) (domain.Company, error)
	GetCompanyByName(ctx context.Context, name string) (domain.Company, error)

	// CreateCompany reports ErrAlreadyExists when the name or alias is taken.
	CreateCompany(ctx context.Context, c domain.Company) error

	UpdateCompany(ctx context.Context, c domain.Company) error

	ListCompanies(ctx context.Context, f CompanyFilter) ([]domain.Company, int, error)
	CountCompaniesByStatus(ctx context.Context) (map[domain.CompanyStatus]int, error)
}

// RevokedTokens is the refresh token deny list. The sqlite driver and the
// redis driver both implement it.
type RevokedTokens interface {
	// RevokeToken reports false when the JTI was already on the list, which
	// lets a refresh claim its token exactly once.
	RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error)
	IsTokenRevoked(ctx context.Context, jti string, now time.Time) (bool, error)
	DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) (int64, error)
}
