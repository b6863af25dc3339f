package constants

import "time"

// Catalog events exchange and the binding the storefront listens on.
const (
	ExchangeInventory     = "inventory.events"
	ExchangeInventoryType = "topic"
	RoutingKeyInventory   = "inventory.changed"
	QueueInventoryChanged = "storefront.inventory_changed"
)

// Event headers set by publishers.
const (
	HeaderEventType    = "event-type"
	HeaderEventVersion = "event-version"
	HeaderTraceID      = "x-trace-id"
)

const (
	EventInventoryChanged   = "InventoryChangedEvent"
	EventInventoryChangedV1 = "1.0.0"
)

// Retry topology.
const (
	RetryExchange      = "storefront.inventory_changed.retry"
	RetryQueue         = "storefront.inventory_changed.retry_wait"
	RetryTTLMillis     = 5000
	MaxRetries         = 3
	FinalDLXExchange   = "storefront.inventory_changed.final_dlx"
	FinalDLQ           = "storefront.inventory_changed.final_dlq"
	FinalDLQRoutingKey = "inventory_changed.dlq"
)

// Batching of cache invalidations.
const (
	InvalidationBatchSize    = 50
	InvalidationBatchTimeout = 2 * time.Second
)
