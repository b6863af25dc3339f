package rest

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
)

type InventoryHandler struct {
	decodeUC usecases_port.DecodeFiltersUseCase
	searchUC usecases_port.SearchInventoryUseCase
	facetsUC usecases_port.ResolveFacetOptionsUseCase
}

func NewInventoryHandler(decodeUC usecases_port.DecodeFiltersUseCase,
	searchUC usecases_port.SearchInventoryUseCase,
	facetsUC usecases_port.ResolveFacetOptionsUseCase) *InventoryHandler {
	return &InventoryHandler{
		decodeUC: decodeUC,
		searchUC: searchUC,
		facetsUC: facetsUC,
	}
}

// SearchCars handles GET /api/v1/cars[/<make>[/<model>]].
func (h *InventoryHandler) SearchCars(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	path := storefrontPath(r)
	query := r.URL.Query()
	req := domain.SearchRequest{
		Filters:    h.decodeUC.Execute(r.Context(), path, query),
		Pagination: parsePagination(r),
		Sort:       domain.ParseSortKey(query.Get("sort")),
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "SearchCars",
		"path":    path,
		"page":    req.Pagination.Page,
		"limit":   req.Pagination.Limit,
	})
	handlerLogger.Debug("Processing inventory search", nil)

	result, err := h.searchUC.Execute(r.Context(), req)
	if err != nil {
		status, message := statusFor(err)
		handlerLogger.Error("Use case failed", err, port.Fields{"status_code": status})
		RespondWithJSON(w, status, newSearchErrorResponse(message, req.Filters))
		return
	}

	for _, part := range result.Degraded {
		searchDegraded.WithLabelValues(part).Inc()
	}

	RespondWithJSON(w, http.StatusOK, newSearchResponse(result))
}

// GetFacets handles GET /api/v1/facets/cars[/<make>[/<model>]] and returns
// only the sidebar options.
func (h *InventoryHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	path := storefrontPath(r)
	filters := h.decodeUC.Execute(r.Context(), path, r.URL.Query())

	handlerLogger := logger.WithFields(port.Fields{"handler": "GetFacets", "path": path})

	set, err := h.facetsUC.Execute(r.Context(), filters)
	if err != nil {
		status, message := statusFor(err)
		handlerLogger.Error("Use case failed", err, port.Fields{"status_code": status})
		WriteJSONError(w, status, message)
		return
	}

	RespondWithJSON(w, http.StatusOK, FacetsResponse{
		Filters:        set,
		AppliedFilters: filters,
		CanonicalURL:   filterurl.Generate(filters),
	})
}

// GetCanonical handles GET /api/v1/canonical?path=/cars/...&<filters>.
// Parameters next to path are merged into the URL being canonicalized.
func (h *InventoryHandler) GetCanonical(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	raw := strings.TrimSpace(r.URL.Query().Get("path"))
	if raw == "" {
		WriteJSONError(w, http.StatusBadRequest, "path is required")
		return
	}
	u, err := url.Parse(raw)
	if err != nil {
		logger.Warn("Invalid path", port.Fields{"error": err.Error(), "path": raw})
		WriteJSONError(w, http.StatusBadRequest, "Invalid path")
		return
	}

	extra := r.URL.Query()
	extra.Del("path")
	query := u.Query()
	for name, values := range extra {
		query[name] = append(query[name], values...)
	}

	filters := h.decodeUC.Execute(r.Context(), u.EscapedPath(), query)
	canonical := filterurl.Generate(filters)

	requested := raw
	if len(extra) > 0 {
		sep := "?"
		if strings.Contains(raw, "?") {
			sep = "&"
		}
		requested += sep + extra.Encode()
	}

	logger.WithFields(port.Fields{"handler": "GetCanonical"}).Debug("Canonicalized URL", port.Fields{
		"requested": requested,
		"canonical": canonical,
	})

	RespondWithJSON(w, http.StatusOK, CanonicalResponse{
		CanonicalURL: canonical,
		Filters:      filters,
		Redirect:     requested != canonical,
	})
}

// statusFor maps a use case error to a status code and a client message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, "Inventory is temporarily unavailable"
	default:
		return http.StatusInternalServerError, "Failed to retrieve inventory"
	}
}
