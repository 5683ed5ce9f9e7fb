package usecases

import (
	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

// publishEvent hands ev to the publisher. Delivery problems are logged and never
// reach the caller: the write has already committed.
func publishEvent(pub events.EventPublisher, log logger.Interface, ev events.DomainEvent) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ev); err != nil {
		log.Warnw("failed to publish ticket event",
			"event_type", ev.GetEventType(),
			"ticket_id", ev.GetAggregateID(),
			"error", err,
		)
	}
}
