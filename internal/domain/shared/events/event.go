// Package events defines the domain event contract and an in-process dispatcher.
package events

import (
	"context"
	"time"
)

// DomainEvent is a fact recorded after a successful write.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetOccurredAt() time.Time
}

// BaseEvent carries the fields every domain event shares.
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewBaseEvent(aggregateID, eventType string, occurredAt time.Time) BaseEvent {
	return BaseEvent{
		AggregateID: aggregateID,
		EventType:   eventType,
		OccurredAt:  occurredAt,
	}
}

func (e BaseEvent) GetAggregateID() string   { return e.AggregateID }
func (e BaseEvent) GetEventType() string     { return e.EventType }
func (e BaseEvent) GetOccurredAt() time.Time { return e.OccurredAt }

// EventHandler consumes events delivered by a dispatcher.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// Name identifies the handler in logs.
	Name() string
}

// EventPublisher accepts events for delivery. Publish must not block on slow consumers.
type EventPublisher interface {
	Publish(event DomainEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(DomainEvent) error { return nil }
