package http

import (
	"net/http"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
)

// UsersHandler serves company-scoped user management. Role gates live in
// the service so that each operation reports its own denial message.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList godoc
//
//	@Summary		List company users
//	@Description	Lists users of the caller's company, newest first.
//	@Tags			Users
//	@Produce		json
//	@Param			page	query		int								false	"Page (default 1)"
//	@Param			limit	query		int								false	"Page size (default 10, max 100)"
//	@Param			status	query		string							false	"Filter by status"
//	@Success		200		{object}	platformsdk.UserListResponse	"users, pagination"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid status filter"
//	@Failure		401		{object}	platformsdk.ErrorResponse		"Not authenticated"
//	@Security		BearerAuth
//	@Router			/auth/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	res, err := h.UserService.ListCompanyUsers(r.Context(), actor,
		httpx.QueryInt(r, "page", 1),
		httpx.QueryInt(r, "limit", 10),
		domain.UserStatus(r.URL.Query().Get("status")),
	)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleUpdate godoc
//
//	@Summary		Update a user
//	@Description	Changes name, role, permissions or status of a user in the caller's company. A role change without permissions resets them to the role defaults.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string							true	"User ID"
//	@Param			request	body		platformsdk.UpdateUserRequest	true	"Fields to change"
//	@Success		200		{object}	platformsdk.UserResponse		"message, user"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid role, permission or status"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"User not found"
//	@Failure		409		{object}	platformsdk.ErrorResponse		"Concurrent update"
//	@Security		BearerAuth
//	@Router			/auth/users/{userId} [patch].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.UpdateUserInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.UserService.UpdateUser(r.Context(), actor, r.PathValue("userId"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleUpdateRole godoc
//
//	@Summary		Change a user's role
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string							true	"User ID"
//	@Param			request	body		platformsdk.UpdateRoleRequest	true	"Role and optional permissions"
//	@Success		200		{object}	platformsdk.UserResponse		"message, user"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid role or permission"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/auth/users/{userId}/role [patch].
func (h *UsersHandler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req struct {
		Role        domain.Role `json:"role"`
		Permissions []string    `json:"permissions,omitempty"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Role == "" {
		writeBadRequest(w, "Role is required")
		return
	}

	res, err := h.UserService.UpdateUser(r.Context(), actor, r.PathValue("userId"), service.UpdateUserInput{
		Role:        &req.Role,
		Permissions: req.Permissions,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleUpdateStatus godoc
//
//	@Summary		Change a user's status
//	@Description	Non-active statuses record who deactivated the user, when and why. Callers cannot deactivate themselves.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string							true	"User ID"
//	@Param			request	body		platformsdk.UpdateStatusRequest	true	"Status and reason"
//	@Success		200		{object}	platformsdk.UserResponse		"message, user"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid status"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted or self-deactivation"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"User not found"
//	@Security		BearerAuth
//	@Router			/auth/users/{userId}/status [patch].
func (h *UsersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.StatusInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.UserService.UpdateUserStatus(r.Context(), actor, r.PathValue("userId"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleRemove godoc
//
//	@Summary		Remove a user
//	@Description	Deactivates the user. Records are never hard-deleted.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			userId	path		string							true	"User ID"
//	@Param			request	body		platformsdk.RemoveUserRequest	false	"Reason and transfer target"
//	@Success		200		{object}	platformsdk.RemoveUserResponse	"message, userId, transferInitiated"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted or self-removal"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"User or transfer target not found"
//	@Security		BearerAuth
//	@Router			/auth/users/{userId} [delete].
func (h *UsersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.RemoveInput
	if err := httpx.DecodeJSON(r, &in, true); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return
	}

	res, err := h.UserService.RemoveUser(r.Context(), actor, r.PathValue("userId"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleBulkAction godoc
//
//	@Summary		Apply an action to several users
//	@Description	Actions are activate, deactivate, suspend and delete. Users are processed in order with per-item results.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.BulkActionRequest	true	"User IDs and action"
//	@Success		200		{object}	platformsdk.BulkActionResponse	"Per-item results"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid action or empty list"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted"
//	@Security		BearerAuth
//	@Router			/auth/users/bulk-action [post].
func (h *UsersHandler) HandleBulkAction(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.BulkActionInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.UserService.BulkAction(r.Context(), actor, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
