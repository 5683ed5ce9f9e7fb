package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/db"
)

// GormStore bundles the ticket repositories over one connection pool.
type GormStore struct {
	txMgr    *db.TransactionManager
	tickets  *TicketRepository
	comments *CommentRepository
}

func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{
		txMgr:    db.NewTransactionManager(gdb),
		tickets:  NewTicketRepository(gdb),
		comments: NewCommentRepository(gdb),
	}
}

func (s *GormStore) Tickets() ticket.TicketRepository {
	return s.tickets
}

func (s *GormStore) Comments() ticket.CommentRepository {
	return s.comments
}

func (s *GormStore) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.txMgr.RunInTransaction(ctx, fn)
}

// StoreFactory opens a Store per request. Each store's handle is bound to the
// request context, so a cancelled request aborts its queries.
type StoreFactory struct {
	db *gorm.DB
}

func NewStoreFactory(gdb *gorm.DB) *StoreFactory {
	return &StoreFactory{db: gdb}
}

func (f *StoreFactory) Open(ctx context.Context) ticket.Store {
	return NewGormStore(f.db.WithContext(ctx))
}
