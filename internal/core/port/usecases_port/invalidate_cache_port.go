package usecases_port

import (
	"context"

	"storefront-service/internal/core/domain"
)

type InvalidateCacheUseCase interface {
	// Execute flushes the caches once for any number of coalesced changes.
	Execute(ctx context.Context, changes ...domain.InventoryChange) error
}
