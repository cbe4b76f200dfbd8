package v1

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/render"

	"github.com/yourorg/location-quote/gmaps"
	"github.com/yourorg/location-quote/internal/location"
	"github.com/yourorg/location-quote/internal/pricing"
)

type apiError struct {
	status int
	code   string
}

// errorTable is checked in order; the first match wins.
var errorTable = []struct {
	err error
	apiError
}{
	{location.ErrAddressNotFound, apiError{http.StatusNotFound, "address_not_found"}},
	{location.ErrNoResultAtCoordinates, apiError{http.StatusNotFound, "no_result_at_coordinates"}},
	{location.ErrAddressInvalid, apiError{http.StatusUnprocessableEntity, "address_invalid"}},
	{location.ErrInvalidCoordinates, apiError{http.StatusUnprocessableEntity, "invalid_coordinates"}},
	{pricing.ErrInvalidProjectSize, apiError{http.StatusUnprocessableEntity, "invalid_project_size"}},
	{location.ErrRouteUnavailable, apiError{http.StatusUnprocessableEntity, "route_unavailable"}},
	{location.ErrProviderTimeout, apiError{http.StatusGatewayTimeout, "provider_timeout"}},
	{gmaps.ErrQuotaExceeded, apiError{http.StatusTooManyRequests, "provider_quota_exceeded"}},
	{context.DeadlineExceeded, apiError{http.StatusGatewayTimeout, "request_timeout"}},
	{context.Canceled, apiError{http.StatusServiceUnavailable, "request_cancelled"}},
}

func classify(err error) apiError {
	for _, e := range errorTable {
		if errors.Is(err, e.err) {
			return e.apiError
		}
	}
	return apiError{http.StatusBadGateway, "upstream_error"}
}

func writeError(w http.ResponseWriter, req *http.Request, err error) {
	e := classify(err)
	if e.status >= 500 {
		log.Printf("[WARN] %s %s: %v", req.Method, req.URL.Path, err)
	}
	render.Status(req, e.status)
	render.JSON(w, req, map[string]any{"error": e.code, "detail": err.Error()})
}

func badRequest(w http.ResponseWriter, req *http.Request, code, detail string) {
	render.Status(req, http.StatusBadRequest)
	render.JSON(w, req, map[string]any{"error": code, "detail": detail})
}
