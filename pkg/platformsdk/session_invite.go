package platformsdk

import (
	"context"
	"net/http"
)

// Invite creates a pending member in the caller's company and emails them a
// link and code.
// Requires: admin or company_admin role
func (s *Session) Invite(ctx context.Context, req InviteRequest) (*InviteResponse, error) {
	return call[InviteResponse](ctx, s, http.MethodPost, "/auth/invite", req, http.StatusCreated,
		RoleAdmin, RoleCompanyAdmin)
}

// BulkInvite invites each entry in order; one failure does not stop the rest.
// Requires: admin or company_admin role
func (s *Session) BulkInvite(ctx context.Context, invitations []InviteRequest) (*BulkInviteResponse, error) {
	return call[BulkInviteResponse](ctx, s, http.MethodPost, "/auth/invite/bulk",
		BulkInviteRequest{Invitations: invitations}, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}

// ResendInvitation issues a new token and code for a pending invitee.
// Requires: admin or company_admin role
func (s *Session) ResendInvitation(ctx context.Context, email string) (*ResendInvitationResponse, error) {
	return call[ResendInvitationResponse](ctx, s, http.MethodPost, "/auth/invite/resend",
		EmailRequest{Email: email}, http.StatusOK,
		RoleAdmin, RoleCompanyAdmin)
}
