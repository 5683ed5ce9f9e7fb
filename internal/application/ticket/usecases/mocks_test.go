package usecases

import (
	"context"
	"sync"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc  func(ctx context.Context, t *ticket.Ticket) error
	GetByIDFunc func(ctx context.Context, id uint) (*ticket.Ticket, error)
	ListFunc    func(ctx context.Context) ([]*ticket.Ticket, error)
	UpdateFunc  func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, ticket.ErrTicketNotFound
}

func (m *mockTicketRepository) List(ctx context.Context) ([]*ticket.Ticket, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockCommentRepository struct {
	CreateFunc           func(ctx context.Context, c *ticket.Comment) error
	ListByTicketIDFunc   func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
	ListByTicketIDsFunc  func(ctx context.Context, ticketIDs []uint) (map[uint][]*ticket.Comment, error)
	DeleteByTicketIDFunc func(ctx context.Context, ticketID uint) error
}

func (m *mockCommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *mockCommentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockCommentRepository) ListByTicketIDs(ctx context.Context, ticketIDs []uint) (map[uint][]*ticket.Comment, error) {
	if m.ListByTicketIDsFunc != nil {
		return m.ListByTicketIDsFunc(ctx, ticketIDs)
	}
	return map[uint][]*ticket.Comment{}, nil
}

func (m *mockCommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	if m.DeleteByTicketIDFunc != nil {
		return m.DeleteByTicketIDFunc(ctx, ticketID)
	}
	return nil
}

// mockStore runs transactions inline and counts them.
type mockStore struct {
	tickets  *mockTicketRepository
	comments *mockCommentRepository
	txCount  int
}

func newMockStore() *mockStore {
	return &mockStore{
		tickets:  &mockTicketRepository{},
		comments: &mockCommentRepository{},
	}
}

func (s *mockStore) Tickets() ticket.TicketRepository   { return s.tickets }
func (s *mockStore) Comments() ticket.CommentRepository { return s.comments }

func (s *mockStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txCount++
	return fn(ctx)
}

type mockPublisher struct {
	mu     sync.Mutex
	events []events.DomainEvent
	err    error
}

func (p *mockPublisher) Publish(ev events.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *mockPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, ev := range p.events {
		out = append(out, ev.GetEventType())
	}
	return out
}

func newTestLogger() logger.Interface {
	return logger.NewNopLogger()
}
