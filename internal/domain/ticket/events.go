package ticket

import (
	"strconv"
	"time"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
)

const (
	EventTypeTicketCreated       = "ticket.created"
	EventTypeTicketStatusChanged = "ticket.status_changed"
	EventTypeTicketCommentAdded  = "ticket.comment_added"
	EventTypeTicketDeleted       = "ticket.deleted"
)

type TicketCreatedEvent struct {
	events.BaseEvent
	TicketID uint   `json:"ticket_id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

func NewTicketCreatedEvent(t *Ticket) TicketCreatedEvent {
	return TicketCreatedEvent{
		BaseEvent: events.NewBaseEvent(aggregateID(t.ID()), EventTypeTicketCreated, t.CreatedAt()),
		TicketID:  t.ID(),
		Title:     t.Title(),
		Category:  t.Category(),
	}
}

type TicketStatusChangedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	Title     string `json:"title"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
}

func NewTicketStatusChangedEvent(t *Ticket, oldStatus string) TicketStatusChangedEvent {
	return TicketStatusChangedEvent{
		BaseEvent: events.NewBaseEvent(aggregateID(t.ID()), EventTypeTicketStatusChanged, t.UpdatedAt()),
		TicketID:  t.ID(),
		Title:     t.Title(),
		OldStatus: oldStatus,
		NewStatus: t.Status().String(),
	}
}

type TicketCommentAddedEvent struct {
	events.BaseEvent
	TicketID  uint   `json:"ticket_id"`
	CommentID uint   `json:"comment_id"`
	Comment   string `json:"comment"`
}

func NewTicketCommentAddedEvent(c *Comment) TicketCommentAddedEvent {
	return TicketCommentAddedEvent{
		BaseEvent: events.NewBaseEvent(aggregateID(c.TicketID()), EventTypeTicketCommentAdded, c.CreatedAt()),
		TicketID:  c.TicketID(),
		CommentID: c.ID(),
		Comment:   c.Text(),
	}
}

type TicketDeletedEvent struct {
	events.BaseEvent
	TicketID uint `json:"ticket_id"`
}

func NewTicketDeletedEvent(ticketID uint, at time.Time) TicketDeletedEvent {
	return TicketDeletedEvent{
		BaseEvent: events.NewBaseEvent(aggregateID(ticketID), EventTypeTicketDeleted, at),
		TicketID:  ticketID,
	}
}

func aggregateID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
