package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/yukti/platform/internal/platform/service"
	"github.com/yukti/platform/pkg/httpx"
	"github.com/yukti/platform/pkg/slogx"
)

// writeServiceError maps a service failure onto a status code. Only
// *service.Error messages reach the client; anything else is logged and
// reported as an internal error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "Internal error")
		return
	}

	status, code := statusFor(se.Kind)
	httpx.WriteError(w, status, code, se.Message)
}

func statusFor(kind service.Kind) (int, string) {
	switch kind {
	case service.KindValidation:
		return http.StatusBadRequest, "invalid_request"
	case service.KindRateLimit:
		return http.StatusBadRequest, "rate_limited"
	case service.KindDependency:
		return http.StatusBadRequest, "delivery_failed"
	case service.KindAuthentication:
		return http.StatusUnauthorized, "unauthorized"
	case service.KindAuthorization:
		return http.StatusForbidden, "forbidden"
	case service.KindNotFound:
		return http.StatusNotFound, "not_found"
	case service.KindConflict:
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
}

// decode reads the JSON body into v, answering 400 itself on failure.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := httpx.DecodeJSON(r, v, false); err != nil {
		writeBadRequest(w, "Request body must be valid JSON")
		return false
	}
	return true
}

// actorFrom returns the authenticated caller. Routes that reach a handler
// calling it are always behind AuthnMiddleware.
func actorFrom(w http.ResponseWriter, r *http.Request) (service.Actor, bool) {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
		return service.Actor{}, false
	}
	return service.ActorFrom(p), true
}
