package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/supportdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/supportdesk/internal/shared/db"
	"github.com/orris-inc/supportdesk/internal/shared/mapper"
)

// inClauseBatch keeps IN lists under SQLite's bound-parameter limit.
const inClauseBatch = 500

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Omit("Ticket").Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var commentModels []*models.CommentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order(listOrder).
		Find(&commentModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return mapper.MapSliceWithError(commentModels, r.mapper.CommentToDomain)
}

func (r *CommentRepository) ListByTicketIDs(ctx context.Context, ticketIDs []uint) (map[uint][]*ticket.Comment, error) {
	result := make(map[uint][]*ticket.Comment, len(ticketIDs))
	if len(ticketIDs) == 0 {
		return result, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	for start := 0; start < len(ticketIDs); start += inClauseBatch {
		end := min(start+inClauseBatch, len(ticketIDs))

		var commentModels []*models.CommentModel
		if err := tx.
			Where("ticket_id IN ?", ticketIDs[start:end]).
			Order(listOrder).
			Find(&commentModels).Error; err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}

		comments, err := mapper.MapSliceWithError(commentModels, r.mapper.CommentToDomain)
		if err != nil {
			return nil, err
		}
		for id, group := range mapper.GroupBy(comments, (*ticket.Comment).TicketID) {
			result[id] = group
		}
	}

	return result, nil
}

func (r *CommentRepository) DeleteByTicketID(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.CommentModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
