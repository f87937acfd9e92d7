package http

import (
	"net/http"

	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
)

type DashboardHandler struct {
	DashboardService *service.DashboardService
}

// HandleGet godoc
//
//	@Summary		Caller's dashboard
//	@Description	Company and user summary with the features and quick actions available for the caller's role and company status.
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	platformsdk.DashboardResponse	"Dashboard"
//	@Failure		401	{object}	platformsdk.ErrorResponse		"Not authenticated"
//	@Security		BearerAuth
//	@Router			/dashboard [get].
func (h *DashboardHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.DashboardService.Get(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleForCompany godoc
//
//	@Summary		Dashboard of a company
//	@Description	Admins may open any company's dashboard; other users only their own.
//	@Tags			Dashboard
//	@Produce		json
//	@Param			alias	path		string							true	"Company alias"
//	@Success		200		{object}	platformsdk.DashboardResponse	"Dashboard"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Access denied to this company dashboard"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"Company not found"
//	@Security		BearerAuth
//	@Router			/dashboard/company/{alias} [get].
func (h *DashboardHandler) HandleForCompany(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.DashboardService.ForCompany(r.Context(), actor, r.PathValue("alias"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleStats godoc
//
//	@Summary		Dashboard statistics
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	object						"company, users, projects, incidents"
//	@Failure		401	{object}	platformsdk.ErrorResponse	"Not authenticated"
//	@Security		BearerAuth
//	@Router			/dashboard/stats [get].
func (h *DashboardHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.DashboardService.Stats(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleRecentActivity godoc
//
//	@Summary		Recent activity
//	@Tags			Dashboard
//	@Produce		json
//	@Success		200	{object}	object						"activities"
//	@Failure		401	{object}	platformsdk.ErrorResponse	"Not authenticated"
//	@Security		BearerAuth
//	@Router			/dashboard/recent-activity [get].
func (h *DashboardHandler) HandleRecentActivity(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.DashboardService.RecentActivity(r.Context(), actor)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
