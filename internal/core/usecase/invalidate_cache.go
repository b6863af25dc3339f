package usecase

import (
	"context"
	"fmt"

	"storefront-service/internal/contextkeys"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
)

// InvalidateCacheUseCase drops cached facet sets and item pages after the
// catalog reports an inventory change.
type InvalidateCacheUseCase struct {
	caches []port.CachePort
}

func NewInvalidateCacheUseCase(caches ...port.CachePort) *InvalidateCacheUseCase {
	return &InvalidateCacheUseCase{caches: caches}
}

// Execute flushes every cache once, however many changes were coalesced
// into the call. A call without changes is a no-op.
func (uc *InvalidateCacheUseCase) Execute(ctx context.Context, changes ...domain.InventoryChange) error {
	if len(changes) == 0 {
		return nil
	}

	items := 0
	for _, c := range changes {
		items += len(c.ItemIDs)
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "InvalidateCache",
		"event_count": len(changes),
		"first_event": changes[0].EventID,
		"source":      changes[0].Source,
		"item_count":  items,
	})

	ucLogger.Info("Use case started", nil)

	for i, cache := range uc.caches {
		if cache == nil {
			continue
		}
		if err := cache.Flush(ctx); err != nil {
			ucLogger.Error("Failed to flush cache", err, port.Fields{"cache_index": i})
			return fmt.Errorf("flush cache %d: %w", i, err)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"caches_flushed": len(uc.caches)})
	return nil
}
