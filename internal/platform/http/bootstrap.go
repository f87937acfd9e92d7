package http

import (
	"net/http"

	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP handles the one-time creation of the first platform admin.
//
//	@Summary		Bootstrap the platform
//	@Description	Creates the operator company and the first admin user. Only available when a bootstrap token is configured, and only until an admin exists.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string							true	"Bootstrap token"
//	@Param			request				body		platformsdk.BootstrapRequest	true	"Operator company and admin"
//	@Success		201					{object}	platformsdk.BootstrapResponse	"message, userId, companyId"
//	@Failure		400					{object}	platformsdk.ErrorResponse		"Invalid request body"
//	@Failure		401					{object}	platformsdk.ErrorResponse		"Missing bootstrap token"
//	@Failure		403					{object}	platformsdk.ErrorResponse		"Invalid bootstrap token"
//	@Failure		404					{object}	platformsdk.ErrorResponse		"Bootstrap not enabled"
//	@Failure		409					{object}	platformsdk.ErrorResponse		"Already bootstrapped"
//	@Router			/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())
	l.Info("Starting to bootstrap")

	// 1. Check if enabled
	if h.BootstrapService.Token == "" {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Bootstrap endpoint is not enabled")
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get("X-Bootstrap-Token")
	if token == "" {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Bootstrap token is required in X-Bootstrap-Token header")
		return
	}

	// 3. Parse request body
	var in service.BootstrapInput
	if !decode(w, r, &in) {
		return
	}

	// 4. Perform bootstrap
	res, err := h.BootstrapService.Bootstrap(r.Context(), token, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}
