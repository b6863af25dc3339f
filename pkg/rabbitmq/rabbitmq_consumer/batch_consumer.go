package rabbitmq_consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"storefront-service/pkg/rabbitmq/rabbitmq_common"
)

// BatchMessageHandler handles a batch of deliveries. A non-nil error sends
// the whole batch to the retry path.
type BatchMessageHandler func(deliveries []amqp.Delivery) error

// BatchConsumer accumulates deliveries and hands them to the handler when
// the batch is full or batchTimeout has passed since its first message.
type BatchConsumer struct {
	baseConsumer *baseConsumer
	handler      BatchMessageHandler
	batchSize    int
	batchTimeout time.Duration
}

func NewBatchConsumer(cfg ConsumerConfig, handler BatchMessageHandler, batchSize int, batchTimeout time.Duration, connManager *rabbitmq_common.ConnectionManager) (*BatchConsumer, error) {
	if handler == nil {
		return nil, errors.New("batch consumer: message handler is required")
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if batchTimeout <= 0 {
		batchTimeout = time.Second
	}
	if cfg.PrefetchCount < batchSize {
		cfg.PrefetchCount = batchSize
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("batch consumer: %w", err)
	}

	return &BatchConsumer{
		baseConsumer: bc,
		handler:      handler,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
	}, nil
}

// StartConsuming blocks until ctx is cancelled (returns nil) or the
// connection is closed by the broker (returns its error).
func (c *BatchConsumer) StartConsuming(ctx context.Context) error {
	base := c.baseConsumer
	if base.channel == nil || base.connection == nil || base.connection.IsClosed() {
		return errors.New("batch consumer: not connected")
	}

	msgs, err := base.channel.Consume(
		base.actualQueueName,
		base.config.ConsumerTag,
		false, // auto-ack
		base.config.ExclusiveConsumer,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("batch consumer: failed to register a consumer on queue '%s': %w", base.actualQueueName, err)
	}

	base.Logger.Info("Waiting for messages",
		"queue_name", base.actualQueueName,
		"batch_size", c.batchSize,
		"batch_timeout", c.batchTimeout.String())

	base.wg.Add(1)
	go func() {
		defer base.wg.Done()
		collect(ctx, msgs, c.batchSize, c.batchTimeout, c.processBatch)
	}()

	notifyClose := base.connection.NotifyClose(make(chan *amqp.Error, 1))
	select {
	case <-ctx.Done():
		base.Logger.Info("Context cancelled, consumer shutting down", "consumer_tag", base.config.ConsumerTag)
		return nil
	case amqpErr := <-notifyClose:
		if amqpErr == nil {
			return nil
		}
		base.Logger.Error(amqpErr, "Connection closed under consumer", "consumer_tag", base.config.ConsumerTag)
		return amqpErr
	}
}

// collect groups deliveries into batches of at most size and calls flush
// for each. A partial batch is flushed timeout after its first message, and
// whatever is pending is flushed when ctx ends or msgs closes.
func collect(ctx context.Context, msgs <-chan amqp.Delivery, size int, timeout time.Duration, flush func([]amqp.Delivery)) {
	batch := make([]amqp.Delivery, 0, size)
	// Go 1.23+ timers never deliver a stale tick after Stop or Reset
	timer := time.NewTimer(timeout)
	timer.Stop()
	defer timer.Stop()

	emit := func() {
		if len(batch) == 0 {
			return
		}
		flush(batch)
		batch = make([]amqp.Delivery, 0, size)
	}

	for {
		select {
		case <-ctx.Done():
			emit()
			return

		case msg, ok := <-msgs:
			if !ok {
				emit()
				return
			}
			if len(batch) == 0 {
				timer.Reset(timeout)
			}
			batch = append(batch, msg)
			if len(batch) >= size {
				timer.Stop()
				emit()
			}

		case <-timer.C:
			emit()
		}
	}
}

// processBatch runs the handler and settles every delivery of the batch.
func (c *BatchConsumer) processBatch(batch []amqp.Delivery) {
	base := c.baseConsumer
	lastTag := batch[len(batch)-1].DeliveryTag

	err := c.handler(batch)
	if err == nil {
		_ = base.channel.Ack(lastTag, true)
		base.Logger.Debug("Batch acknowledged", "batch_size", len(batch))
		return
	}
	base.Logger.Error(err, "Handler returned error for batch", "batch_size", len(batch))

	if !base.config.EnableRetryMechanism {
		_ = base.channel.Nack(lastTag, true, false)
		return
	}

	for _, d := range batch {
		count := deathCount(d, base.actualQueueName)
		if count < int64(base.config.MaxRetries) {
			base.Logger.Info("Nacking message for retry", "delivery_tag", d.DeliveryTag, "death_count", count)
			_ = d.Nack(false, false)
			continue
		}

		base.Logger.Warn("Max retries reached, publishing to final DLX", "delivery_tag", d.DeliveryTag)
		err := base.finalDlxPublisher.Publish(context.Background(), base.config.FinalDLQRoutingKey, amqp.Publishing{
			ContentType:  d.ContentType,
			Body:         d.Body,
			Headers:      d.Headers,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		})
		if err != nil {
			base.Logger.Error(err, "Failed to publish to final DLX, retrying again", "delivery_tag", d.DeliveryTag)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

// Close waits for the pending batch to be settled and closes the channel.
func (c *BatchConsumer) Close() error {
	c.baseConsumer.Logger.Info("Closing consumer")
	return c.baseConsumer.Close()
}
