package usecases_port

import (
	"context"

	"storefront-service/internal/core/domain"
)

type ResolveFacetOptionsUseCase interface {
	Execute(ctx context.Context, filters domain.FilterState) (domain.FacetOptionSet, error)
	// Universe is the option set of the unfiltered catalog.
	Universe(ctx context.Context) (domain.FacetOptionSet, error)
}
