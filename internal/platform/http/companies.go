package http

import (
	"net/http"
	"strings"

	"github.com/yukti/platform/internal/platform/domain"
	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/platformsdk"
)

type CompaniesHandler struct {
	CompanyService *service.CompanyService
}

// HandleList godoc
//
//	@Summary		List companies
//	@Tags			Companies
//	@Produce		json
//	@Param			status		query		string							false	"Filter by status"
//	@Param			search		query		string							false	"Substring of name, alias or business email"
//	@Param			page		query		int								false	"Page (default 1)"
//	@Param			limit		query		int								false	"Page size (default 10, max 100)"
//	@Param			sortBy		query		string							false	"createdAt, name or status"
//	@Param			sortOrder	query		string							false	"asc or desc"
//	@Success		200			{object}	platformsdk.CompanyListResponse	"companies, pagination"
//	@Failure		400			{object}	platformsdk.ErrorResponse		"Invalid filter"
//	@Failure		403			{object}	platformsdk.ErrorResponse		"Admin only"
//	@Security		BearerAuth
//	@Router			/companies [get].
func (h *CompaniesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.CompanyService.List(r.Context(), service.CompanyListInput{
		Status:    domain.CompanyStatus(q.Get("status")),
		Search:    q.Get("search"),
		Page:      httpx.QueryInt(r, "page", 1),
		Limit:     httpx.QueryInt(r, "limit", 10),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleStats godoc
//
//	@Summary		Company counts by status
//	@Tags			Companies
//	@Produce		json
//	@Success		200	{object}	platformsdk.CompanyStatsResponse	"Counts"
//	@Failure		403	{object}	platformsdk.ErrorResponse			"Admin only"
//	@Security		BearerAuth
//	@Router			/companies/stats [get].
func (h *CompaniesHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	res, err := h.CompanyService.Stats(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleSubresource dispatches the two-segment company routes. ServeMux
// treats /companies/alias/{alias} and /companies/{id}/dashboard-url as
// conflicting patterns, so they share /companies/{first}/{second}.
func (h *CompaniesHandler) HandleSubresource(w http.ResponseWriter, r *http.Request) {
	first, second := r.PathValue("first"), r.PathValue("second")
	switch {
	case first == "check-alias":
		h.handleCheckAlias(w, r, second)
	case first == "alias":
		h.handleGetByAlias(w, r, second)
	case second == "dashboard-url":
		h.handleDashboardURL(w, r, first)
	default:
		httpx.WriteError(w, http.StatusNotFound, "not_found", "Route not found")
	}
}

// handleCheckAlias godoc
//
//	@Summary		Check alias availability
//	@Tags			Companies
//	@Produce		json
//	@Param			alias	path		string									true	"Alias"
//	@Success		200		{object}	platformsdk.AliasAvailabilityResponse	"alias, available, reason"
//	@Security		BearerAuth
//	@Router			/companies/check-alias/{alias} [get].
func (h *CompaniesHandler) handleCheckAlias(w http.ResponseWriter, r *http.Request, alias string) {
	res, err := h.CompanyService.CheckAlias(r.Context(), alias)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// handleGetByAlias godoc
//
//	@Summary		Get a company by alias
//	@Tags			Companies
//	@Produce		json
//	@Param			alias	path		string						true	"Alias"
//	@Success		200		{object}	platformsdk.Company			"Company"
//	@Failure		403		{object}	platformsdk.ErrorResponse	"Another company"
//	@Failure		404		{object}	platformsdk.ErrorResponse	"Company not found"
//	@Security		BearerAuth
//	@Router			/companies/alias/{alias} [get].
func (h *CompaniesHandler) handleGetByAlias(w http.ResponseWriter, r *http.Request, alias string) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.CompanyService.GetByAlias(r.Context(), actor, alias)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// handleDashboardURL godoc
//
//	@Summary		Company dashboard URL
//	@Tags			Companies
//	@Produce		json
//	@Param			id	path		string							true	"Company ID"
//	@Success		200	{object}	platformsdk.DashboardURLResponse	"dashboardUrl"
//	@Failure		403	{object}	platformsdk.ErrorResponse		"Another company"
//	@Failure		404	{object}	platformsdk.ErrorResponse		"Company not found"
//	@Security		BearerAuth
//	@Router			/companies/{id}/dashboard-url [get].
func (h *CompaniesHandler) handleDashboardURL(w http.ResponseWriter, r *http.Request, id string) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.CompanyService.DashboardURL(r.Context(), actor, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleGet godoc
//
//	@Summary		Get a company
//	@Description	Admins may read any company; other users only their own.
//	@Tags			Companies
//	@Produce		json
//	@Param			id	path		string						true	"Company ID"
//	@Success		200	{object}	platformsdk.Company			"Company"
//	@Failure		403	{object}	platformsdk.ErrorResponse	"Another company"
//	@Failure		404	{object}	platformsdk.ErrorResponse	"Company not found"
//	@Security		BearerAuth
//	@Router			/companies/{id} [get].
func (h *CompaniesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	res, err := h.CompanyService.Get(r.Context(), actor, r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleUpdate godoc
//
//	@Summary		Update a company
//	@Description	Admins or the company's own company_admin may edit the profile. Only admins change status.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Company ID"
//	@Param			request	body		platformsdk.UpdateCompanyRequest	true	"Fields to change"
//	@Success		200		{object}	platformsdk.CompanyResponse		"message, company"
//	@Failure		400		{object}	platformsdk.ErrorResponse		"Invalid input"
//	@Failure		403		{object}	platformsdk.ErrorResponse		"Not permitted"
//	@Failure		404		{object}	platformsdk.ErrorResponse		"Company not found"
//	@Failure		409		{object}	platformsdk.ErrorResponse		"Name taken"
//	@Security		BearerAuth
//	@Router			/companies/{id} [patch].
func (h *CompaniesHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var in service.UpdateCompanyInput
	if !decode(w, r, &in) {
		return
	}

	res, err := h.CompanyService.Update(r.Context(), actor, r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleApprove godoc
//
//	@Summary		Approve a company
//	@Description	Approves a pending company and activates all of its pending users in one transaction, then emails the company owner.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.CompanyDecisionRequest	true	"Company ID"
//	@Success		200		{object}	platformsdk.CompanyResponse			"message, company"
//	@Failure		400		{object}	platformsdk.ErrorResponse			"Company is not pending"
//	@Failure		403		{object}	platformsdk.ErrorResponse			"Admin only"
//	@Failure		404		{object}	platformsdk.ErrorResponse			"Company not found"
//	@Security		BearerAuth
//	@Router			/companies/approve [post].
func (h *CompaniesHandler) HandleApprove(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req platformsdk.CompanyDecisionRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		writeBadRequest(w, "Company ID is required")
		return
	}

	res, err := h.CompanyService.Approve(r.Context(), actor, req.CompanyID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleReject godoc
//
//	@Summary		Reject a company
//	@Description	Rejects a pending company and deactivates all of its users in one transaction.
//	@Tags			Companies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		platformsdk.CompanyDecisionRequest	true	"Company ID and reason"
//	@Success		200		{object}	platformsdk.CompanyResponse			"message, company"
//	@Failure		400		{object}	platformsdk.ErrorResponse			"Missing reason or company is not pending"
//	@Failure		403		{object}	platformsdk.ErrorResponse			"Admin only"
//	@Failure		404		{object}	platformsdk.ErrorResponse			"Company not found"
//	@Security		BearerAuth
//	@Router			/companies/reject [post].
func (h *CompaniesHandler) HandleReject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	var req platformsdk.CompanyDecisionRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.CompanyID) == "" {
		writeBadRequest(w, "Company ID is required")
		return
	}

	res, err := h.CompanyService.Reject(r.Context(), actor, req.CompanyID, req.Reason)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}
