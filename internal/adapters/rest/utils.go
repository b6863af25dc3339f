package rest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/filterurl"
)

// WriteJSONError sends {"error": message} with the given status.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, map[string]string{"error": message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// parsePagination reads page and limit; bad values fall back to defaults.
func parsePagination(r *http.Request) domain.Pagination {
	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	limit, _ := strconv.Atoi(query.Get("limit"))
	return domain.NewPagination(page, limit)
}

// storefrontPath rebuilds "/cars[/<make>[/<model>]]" from the wildcard part
// of a route mounted under /api/v1.
func storefrontPath(r *http.Request) string {
	rest := strings.Trim(chi.URLParam(r, "*"), "/")
	if rest == "" {
		return "/" + filterurl.Root
	}
	return "/" + filterurl.Root + "/" + rest
}
