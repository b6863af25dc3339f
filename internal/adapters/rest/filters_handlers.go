package rest

import (
	"encoding/json"
	"net/http"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
)

const maxApplyBodyBytes = 64 << 10

type FilterHandler struct {
	applyFilterUC usecases_port.ApplyFilterUseCase
}

func NewFilterHandler(applyFilterUC usecases_port.ApplyFilterUseCase) *FilterHandler {
	return &FilterHandler{applyFilterUC: applyFilterUC}
}

// ApplyFilter handles POST /api/v1/filters/apply.
func (h *FilterHandler) ApplyFilter(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context())

	var req ApplyFilterRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxApplyBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Invalid request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{
		"handler": "ApplyFilter",
		"facet":   req.Facet,
		"action":  req.Action,
	})

	res, err := h.applyFilterUC.Execute(r.Context(), domain.FilterMutation{
		URL:    req.URL,
		Facet:  req.Facet,
		Action: req.Action,
		Values: req.Values,
	})
	if err != nil {
		status, message := statusFor(err)
		handlerLogger.Warn("Filter mutation rejected", port.Fields{"error": err.Error(), "status_code": status})
		WriteJSONError(w, status, message)
		return
	}

	RespondWithJSON(w, http.StatusOK, ApplyFilterResponse{URL: res.URL, Filters: res.Filters})
}
