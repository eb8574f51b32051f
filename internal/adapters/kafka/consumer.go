package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"time"

	"voting-service/internal/domain"

	"github.com/segmentio/kafka-go"
)

// EventHandler processes one inbound event envelope. A returned error means
// the event was not handled and should be redelivered.
type EventHandler interface {
	HandleEvent(ctx context.Context, env domain.Envelope) error
}

const defaultRetryBackoff = 2 * time.Second

// Consumer reads event envelopes from the events topic as part of a
// consumer group and hands them to an EventHandler. Offsets advance only
// past handled messages: committing a later offset acknowledges every
// earlier one in the partition, so an unhandled event must never be left
// behind a commit.
type Consumer struct {
	reader  *kafka.Reader
	handler EventHandler
	logger  *slog.Logger
	backoff time.Duration
}

func NewConsumer(brokers []string, groupID, topic string, handler EventHandler, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	return &Consumer{reader: reader, handler: handler, logger: logger, backoff: defaultRetryBackoff}
}

// Run consumes until ctx is canceled or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var env domain.Envelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			// Malformed envelopes can never succeed; skip past them
			// instead of wedging the partition.
			c.logger.Warn("skipping malformed event envelope",
				"topic", msg.Topic, "offset", msg.Offset, "error", err)
			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error("offset commit failed", "error", err)
			}
			continue
		}

		if err := c.handleWithRetry(ctx, env); err != nil {
			return err
		}
		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Error("offset commit failed",
				"event_type", env.EventType, "event_id", env.EventID, "error", err)
		}
	}
}

// handleWithRetry delivers one envelope, retrying with backoff until the
// handler succeeds or ctx is canceled. The handler drops permanently
// invalid events itself, so an error here is transient and the same event
// is tried again rather than fetched past.
func (c *Consumer) handleWithRetry(ctx context.Context, env domain.Envelope) error {
	for {
		err := c.handler.HandleEvent(ctx, env)
		if err == nil {
			return nil
		}
		c.logger.Error("event handling failed, retrying",
			"event_type", env.EventType, "event_id", env.EventID, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff):
		}
	}
}

// Close releases the group membership and connections.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
