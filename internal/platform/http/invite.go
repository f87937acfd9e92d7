package http

import (
	"net/http"
	"strings"

	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/platformsdk"
)

type InviteHandler struct {
	InviteService *service.InviteService
	Cookies       CookieConfig
}

// HandleInvite godoc
//
//	@Summary		Invite a user
//	@Description	Creates a pending user in the caller's company and emails an invitation link with a one-time code.
//	@Description	If the email cannot be sent the user is not created.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.InviteRequest	true	"Invitation"
//	@Success		201		{object}	platformsdk.InviteResponse	"message, userId, email, invitationExpiry"
//	@Failure		400		{object}	platformsdk.ErrorResponse	"Invalid input or delivery failed"
//	@Failure		401		{object}	platformsdk.ErrorResponse	"Not authenticated"
//	@Failure		403		{object}	platformsdk.ErrorResponse	"Caller may not invite or grant this role"
//	@Failure		409		{object}	platformsdk.ErrorResponse	"Email already registered"
//	@Security		BearerAuth
//	@Router			/auth/invite [post].
func (h *InviteHandler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.InviteInput
	if !decode(w, r, &in) {
		return
	}
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.Name) == "" || in.Role == "" {
		writeBadRequest(w, "Email, name and role are required")
		return
	}

	res, err := h.InviteService.Invite(r.Context(), actor, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

// HandleBulkInvite godoc
//
//	@Summary		Invite several users
//	@Description	Processes invitations in order and reports each outcome, so failed items can be retried on their own.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.BulkInviteRequest	true	"Invitations"
//	@Success		200		{object}	platformsdk.BulkInviteResponse	"Per-item results"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Empty invitation list"
//	@Failure		401		{object}	platformsdk.ErrorResponse		"Not authenticated"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Caller may not invite"
//	@Security		BearerAuth
//	@Router			/auth/invite/bulk [post].
func (h *InviteHandler) HandleBulkInvite(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req struct {
		Invitations []service.InviteInput `json:"invitations"`
	}
	if !decode(w, r, &req) {
		return
	}
	if len(req.Invitations) == 0 {
		writeBadRequest(w, "Invitations array is required")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, h.InviteService.BulkInvite(r.Context(), actor, req.Invitations))
}

// HandleResendInvitation godoc
//
//	@Summary		Resend an invitation
//	@Description	Rotates the invitation link and sends a fresh one-time code to a pending invitee of the caller's company.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.EmailRequest				true	"Invitee email"
//	@Success		200		{object}	platformsdk.ResendInvitationResponse	"message, email, invitationExpiry"
//	@Failure		400		{object}	platformsdk.ErrorResponse				"Delivery failed"
//	@Failure		404		{object}	platformsdk.ErrorResponse				"Pending invitation not found"
//	@Security		BearerAuth
//	@Router			/auth/invite/resend [post].
func (h *InviteHandler) HandleResendInvitation(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req platformsdk.EmailRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeBadRequest(w, "Email is required")
		return
	}

	res, err := h.InviteService.ResendInvitation(r.Context(), actor, req.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleAcceptInvitation godoc
//
//	@Summary		Accept an invitation
//	@Description	Activates the invited account given the link token and the emailed code, and logs the user in.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.AcceptInvitationRequest	true	"Token and code"
//	@Success		200		{object}	platformsdk.TokenResponse			"Token pair with user and company"
//	@Failure		400		{object}	platformsdk.ErrorResponse			"Invalid or expired invitation or code"
//	@Failure		409		{object}	platformsdk.ErrorResponse			"Concurrent acceptance"
//	@Router			/auth/accept-invitation [post].
func (h *InviteHandler) HandleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req platformsdk.AcceptInvitationRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Token) == "" || strings.TrimSpace(req.OTP) == "" {
		writeBadRequest(w, "Token and OTP are required")
		return
	}

	sess, err := h.InviteService.AcceptInvitation(r.Context(), req.Token, req.OTP)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.Cookies.respondSession(w, sess)
}
