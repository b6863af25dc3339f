package usecases_port

import (
	"context"

	"storefront-service/internal/core/domain"
)

type SearchInventoryUseCase interface {
	Execute(ctx context.Context, req domain.SearchRequest) (*domain.SearchResult, error)
}
