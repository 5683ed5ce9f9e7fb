package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
	"github.com/orris-inc/supportdesk/internal/shared/goroutine"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// TicketEventMessage is the envelope published for every ticket event.
type TicketEventMessage struct {
	Type       string          `json:"type"`
	TicketID   string          `json:"ticket_id"`
	OccurredAt int64           `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

// redisPublisher is the part of *redis.Client the handler uses.
type redisPublisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisTicketEventHandler forwards ticket events to a Redis Pub/Sub channel.
type RedisTicketEventHandler struct {
	client  redisPublisher
	channel string
	logger  logger.Interface
}

func NewRedisTicketEventHandler(client redisPublisher, channel string, log logger.Interface) *RedisTicketEventHandler {
	return &RedisTicketEventHandler{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

func (h *RedisTicketEventHandler) Name() string {
	return "redis-ticket-events"
}

func (h *RedisTicketEventHandler) Handle(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event: %w", err)
	}

	data, err := json.Marshal(TicketEventMessage{
		Type:       event.GetEventType(),
		TicketID:   event.GetAggregateID(),
		OccurredAt: biztime.ToMillis(event.GetOccurredAt()),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal ticket event envelope: %w", err)
	}

	if err := h.client.Publish(ctx, h.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish ticket event: %w", err)
	}

	h.logger.Debugw("ticket event published to Redis",
		"channel", h.channel,
		"event_type", event.GetEventType(),
		"ticket_id", event.GetAggregateID(),
	)
	return nil
}

// RedisTicketEventSubscriber reads ticket events published by any server instance.
type RedisTicketEventSubscriber struct {
	client  *redis.Client
	channel string
	logger  logger.Interface
}

func NewRedisTicketEventSubscriber(client *redis.Client, channel string, log logger.Interface) *RedisTicketEventSubscriber {
	return &RedisTicketEventSubscriber{
		client:  client,
		channel: channel,
		logger:  log,
	}
}

// Subscribe blocks until ctx is done, reconnecting with exponential backoff.
// Malformed payloads are logged and skipped.
func (s *RedisTicketEventSubscriber) Subscribe(ctx context.Context, handler func(msg TicketEventMessage)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := s.subscribe(ctx, func(payload string) {
			msg, err := DecodeTicketEventMessage(payload)
			if err != nil {
				s.logger.Warnw("failed to decode ticket event", "payload", payload, "error", err)
				return
			}
			handler(msg)
		})
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warnw("ticket event subscription disconnected, reconnecting",
			"channel", s.channel,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (s *RedisTicketEventSubscriber) subscribe(ctx context.Context, handler func(payload string)) error {
	sub := s.client.Subscribe(ctx, s.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel %s: %w", s.channel, err)
	}

	s.logger.Infow("subscribed to ticket event channel", "channel", s.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			func() {
				defer goroutine.Recover(s.logger, "ticket-event-subscriber")
				handler(msg.Payload)
			}()
		}
	}
}

func DecodeTicketEventMessage(payload string) (TicketEventMessage, error) {
	var msg TicketEventMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		return TicketEventMessage{}, err
	}
	if msg.Type == "" {
		return TicketEventMessage{}, fmt.Errorf("ticket event has no type")
	}
	return msg, nil
}
