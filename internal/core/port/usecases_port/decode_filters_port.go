package usecases_port

import (
	"context"
	"net/url"

	"storefront-service/internal/core/domain"
)

// DecodeFiltersUseCase turns an incoming storefront URL into a normalized
// FilterState spelled the way the catalog spells it.
type DecodeFiltersUseCase interface {
	Execute(ctx context.Context, path string, query url.Values) domain.FilterState
}
