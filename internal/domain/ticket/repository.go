package ticket

import (
	"context"
	"errors"
)

// ErrTicketNotFound is returned by repositories when no ticket has the requested ID.
var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository interface {
	// Create inserts t and assigns its ID.
	Create(ctx context.Context, t *Ticket) error
	// GetByID loads a ticket without comments.
	GetByID(ctx context.Context, id uint) (*Ticket, error)
	// List returns every ticket, newest first, without comments.
	List(ctx context.Context) ([]*Ticket, error)
	// Update persists the mutable fields: status and updatedAt.
	Update(ctx context.Context, t *Ticket) error
	Delete(ctx context.Context, id uint) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// ListByTicketID returns the comments of one ticket, newest first.
	ListByTicketID(ctx context.Context, ticketID uint) ([]*Comment, error)
	// ListByTicketIDs loads the comments of many tickets in one query, newest first per ticket.
	ListByTicketIDs(ctx context.Context, ticketIDs []uint) (map[uint][]*Comment, error)
	DeleteByTicketID(ctx context.Context, ticketID uint) error
}

// Store is the data access handle for one request. It is opened per request and
// passed explicitly to the code that needs it.
type Store interface {
	Tickets() TicketRepository
	Comments() CommentRepository
	// RunInTransaction runs fn so that every repository call made with the
	// context it receives commits or rolls back together.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// StoreOpener produces a Store bound to a request context.
type StoreOpener interface {
	Open(ctx context.Context) Store
}
