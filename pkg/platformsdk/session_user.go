package platformsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Roles as the platform names them.
const (
	RoleAdmin        = "admin"
	RoleCompanyAdmin = "company_admin"
	RoleSRE          = "sre"
	RoleUser         = "user"
	RoleClient       = "client"
)

// ============================================================================
// Current user
// ============================================================================

// Me returns the token subject as the platform currently sees it.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	return call[MeResponse](ctx, s, http.MethodGet, "/auth/me", nil, http.StatusOK)
}

// ChangeEmail moves the account to newEmail. otp must be a code issued to the
// current address.
func (s *Session) ChangeEmail(ctx context.Context, newEmail, otp string) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodPost, "/auth/change-email",
		ChangeEmailRequest{NewEmail: newEmail, OTP: otp}, http.StatusOK)
}

// ============================================================================
// Member management
// ============================================================================

// ListUsersOptions filters ListUsers. Zero values use server defaults.
type ListUsersOptions struct {
	Page   int
	Limit  int
	Status string
}

func (o ListUsersOptions) query() string {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Status != "" {
		q.Set("status", o.Status)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListUsers lists the members of the caller's company, or every user for
// platform admins.
func (s *Session) ListUsers(ctx context.Context, opts ListUsersOptions) (*UserListResponse, error) {
	return call[UserListResponse](ctx, s, http.MethodGet, "/auth/users"+opts.query(), nil, http.StatusOK)
}

func (s *Session) UpdateUser(ctx context.Context, userID string, req UpdateUserRequest) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodPatch, "/auth/users/"+url.PathEscape(userID), req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

func (s *Session) UpdateUserRole(ctx context.Context, userID string, req UpdateRoleRequest) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodPatch, "/auth/users/"+url.PathEscape(userID)+"/role", req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

func (s *Session) UpdateUserStatus(ctx context.Context, userID string, req UpdateStatusRequest) (*UserResponse, error) {
	return call[UserResponse](ctx, s, http.MethodPatch, "/auth/users/"+url.PathEscape(userID)+"/status", req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

// RemoveUser deactivates a member; users are never hard-deleted.
func (s *Session) RemoveUser(ctx context.Context, userID string, req RemoveUserRequest) (*RemoveUserResponse, error) {
	return call[RemoveUserResponse](ctx, s, http.MethodDelete, "/auth/users/"+url.PathEscape(userID), req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

// BulkUserAction applies activate, deactivate or suspend to each user in
// turn and reports per-user results.
func (s *Session) BulkUserAction(ctx context.Context, req BulkActionRequest) (*BulkActionResponse, error) {
	return call[BulkActionResponse](ctx, s, http.MethodPost, "/auth/users/bulk-action", req, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}
