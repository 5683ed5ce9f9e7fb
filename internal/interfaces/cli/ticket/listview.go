package ticket

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/orris-inc/supportdesk/sdk/support"
)

// ActionKind names a mutating action on one ticket.
type ActionKind string

const (
	ActionProgress ActionKind = "progress"
	ActionClose    ActionKind = "close"
	ActionComment  ActionKind = "comment"
	ActionDelete   ActionKind = "delete"
)

// ErrActionInFlight is returned when the same action on the same ticket is already running.
var ErrActionInFlight = errors.New("action already in progress for this ticket")

// TicketAPI is the part of the SDK client the list view drives.
type TicketAPI interface {
	ListTickets(ctx context.Context) ([]support.Ticket, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	AddComment(ctx context.Context, id uint, comment string) error
	DeleteTicket(ctx context.Context, id uint) error
}

type actionKey struct {
	id   uint
	kind ActionKind
}

// ListView holds the last fetched ticket list. It never patches tickets
// locally: a successful action refetches the whole list and a failed one
// leaves the state as it was.
type ListView struct {
	api TicketAPI

	mu       sync.Mutex
	tickets  []support.Ticket
	loadErr  error
	loading  bool
	inFlight map[actionKey]struct{}
}

func NewListView(api TicketAPI) *ListView {
	return &ListView{
		api:      api,
		tickets:  []support.Ticket{},
		inFlight: make(map[actionKey]struct{}),
	}
}

// Snapshot is a copy of the view state.
type Snapshot struct {
	Tickets []support.Ticket
	Err     error
	Loading bool
}

func (v *ListView) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	tickets := make([]support.Ticket, len(v.tickets))
	copy(tickets, v.tickets)
	return Snapshot{Tickets: tickets, Err: v.loadErr, Loading: v.loading}
}

// InFlight reports whether kind is running for ticket id.
func (v *ListView) InFlight(id uint, kind ActionKind) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.inFlight[actionKey{id: id, kind: kind}]
	return ok
}

// Refresh fetches the list. On failure the previous tickets are kept and the
// error is recorded until the next successful fetch.
func (v *ListView) Refresh(ctx context.Context) error {
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	tickets, err := v.api.ListTickets(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.loading = false
	if err != nil {
		v.loadErr = err
		return err
	}
	v.tickets = tickets
	v.loadErr = nil
	return nil
}

func (v *ListView) Advance(ctx context.Context, id uint) error {
	return v.run(ctx, id, ActionProgress, func(ctx context.Context) error {
		return v.api.UpdateStatus(ctx, id, support.StatusInProgress)
	})
}

func (v *ListView) Close(ctx context.Context, id uint) error {
	return v.run(ctx, id, ActionClose, func(ctx context.Context) error {
		return v.api.UpdateStatus(ctx, id, support.StatusClosed)
	})
}

// Comment trims text and does nothing when the result is empty.
func (v *ListView) Comment(ctx context.Context, id uint, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	return v.run(ctx, id, ActionComment, func(ctx context.Context) error {
		return v.api.AddComment(ctx, id, text)
	})
}

func (v *ListView) Delete(ctx context.Context, id uint) error {
	return v.run(ctx, id, ActionDelete, func(ctx context.Context) error {
		return v.api.DeleteTicket(ctx, id)
	})
}

func (v *ListView) run(ctx context.Context, id uint, kind ActionKind, action func(context.Context) error) error {
	key := actionKey{id: id, kind: kind}

	v.mu.Lock()
	if _, busy := v.inFlight[key]; busy {
		v.mu.Unlock()
		return ErrActionInFlight
	}
	v.inFlight[key] = struct{}{}
	v.mu.Unlock()

	err := action(ctx)

	v.mu.Lock()
	delete(v.inFlight, key)
	v.mu.Unlock()

	if err != nil {
		return err
	}
	return v.Refresh(ctx)
}
