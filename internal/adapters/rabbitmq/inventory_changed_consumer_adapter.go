package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront-service/internal/constants"
	"storefront-service/internal/contextkeys"
	"storefront-service/internal/contracts"
	"storefront-service/internal/core/domain"
	"storefront-service/internal/core/port"
	usecases_port "storefront-service/internal/core/port/usecases_port"
	"storefront-service/pkg/rabbitmq/rabbitmq_common"
	"storefront-service/pkg/rabbitmq/rabbitmq_consumer"
)

// InventoryChangedDTO mirrors schemas/events/inventory-changed/v1.json.
type InventoryChangedDTO struct {
	EventID    string    `json:"event_id"`
	Source     string    `json:"source"`
	Reason     string    `json:"reason"`
	ItemIDs    []string  `json:"item_ids"`
	OccurredAt time.Time `json:"occurred_at"`
}

type batchConsumer interface {
	StartConsuming(ctx context.Context) error
	Close() error
}

// InventoryChangedConsumerAdapter listens for catalog change events and
// invalidates the storefront caches once per received batch.
type InventoryChangedConsumerAdapter struct {
	consumer batchConsumer
	useCase  usecases_port.InvalidateCacheUseCase
	logger   port.LoggerPort
}

func NewInventoryChangedConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.InvalidateCacheUseCase,
	connManager *rabbitmq_common.ConnectionManager,
	logger port.LoggerPort,
) (*InventoryChangedConsumerAdapter, error) {
	adapter := newInventoryChangedHandler(useCase, logger)

	consumer, err := rabbitmq_consumer.NewBatchConsumer(
		consumerCfg,
		adapter.batchMessageHandler,
		constants.InvalidationBatchSize,
		constants.InvalidationBatchTimeout,
		connManager,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create RabbitMQ consumer for inventory changes: %w", err)
	}
	adapter.consumer = consumer

	return adapter, nil
}

func newInventoryChangedHandler(useCase usecases_port.InvalidateCacheUseCase, logger port.LoggerPort) *InventoryChangedConsumerAdapter {
	return &InventoryChangedConsumerAdapter{
		useCase: useCase,
		logger:  logger.WithFields(port.Fields{"component": "InventoryChangedConsumerAdapter"}),
	}
}

// batchMessageHandler flushes the caches once for all valid events in the
// batch. Messages that fail schema validation are logged and dropped with
// the batch; only a failed flush sends the batch to the retry path.
func (a *InventoryChangedConsumerAdapter) batchMessageHandler(deliveries []amqp.Delivery) error {
	changes := make([]domain.InventoryChange, 0, len(deliveries))
	traceID := ""

	for _, d := range deliveries {
		change, err := a.unmarshalChange(d)
		if err != nil {
			a.logger.Warn("Rejecting malformed inventory event", port.Fields{
				"delivery_tag": d.DeliveryTag,
				"error":        err.Error(),
			})
			continue
		}
		if traceID == "" {
			traceID, _ = d.Headers[constants.HeaderTraceID].(string)
		}
		changes = append(changes, change)
	}

	if len(changes) == 0 {
		a.logger.Debug("No valid inventory events in batch", port.Fields{"batch_size": len(deliveries)})
		return nil
	}

	logger := a.logger
	ctx := context.Background()
	if traceID != "" {
		logger = logger.WithFields(port.Fields{"trace_id": traceID})
		ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	}
	ctx = contextkeys.ContextWithLogger(ctx, logger)

	return a.useCase.Execute(ctx, changes...)
}

func (a *InventoryChangedConsumerAdapter) unmarshalChange(d amqp.Delivery) (domain.InventoryChange, error) {
	eventType, _ := d.Headers[constants.HeaderEventType].(string)
	eventVersion, _ := d.Headers[constants.HeaderEventVersion].(string)
	if eventType == "" {
		eventType, eventVersion = constants.EventInventoryChanged, constants.EventInventoryChangedV1
	}
	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		return domain.InventoryChange{}, err
	}

	var dto InventoryChangedDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		return domain.InventoryChange{}, fmt.Errorf("failed to unmarshal inventory event: %w", err)
	}

	return domain.InventoryChange{
		EventID:    dto.EventID,
		Source:     dto.Source,
		Reason:     dto.Reason,
		ItemIDs:    dto.ItemIDs,
		OccurredAt: dto.OccurredAt,
	}, nil
}

// Start implements port.EventListenerPort.
func (a *InventoryChangedConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

// Close implements port.EventListenerPort.
func (a *InventoryChangedConsumerAdapter) Close() error {
	return a.consumer.Close()
}
