package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	TicketID uint
	Comment  string
}

type AddCommentResult struct {
	CommentID uint
	CreatedAt time.Time
}

type AddCommentUseCase struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewAddCommentUseCase(publisher events.EventPublisher, logger logger.Interface) *AddCommentUseCase {
	return &AddCommentUseCase{
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, store ticket.Store, cmd AddCommentCommand) (*AddCommentResult, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID)

	if strings.TrimSpace(cmd.Comment) == "" {
		return nil, apperrors.NewValidationError(MsgMissingComment)
	}

	var comment *ticket.Comment
	// Comment insert and updatedAt refresh commit together.
	txErr := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := store.Tickets().GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		c, err := t.AddComment(cmd.Comment)
		if err != nil {
			return err
		}

		if err := store.Comments().Create(txCtx, c); err != nil {
			uc.logger.Errorw("failed to save comment", "ticket_id", cmd.TicketID, "error", err)
			return err
		}

		if err := store.Tickets().Update(txCtx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return err
		}
		comment = c
		return nil
	})
	if txErr != nil {
		return nil, mapStoreError(txErr)
	}

	uc.logger.Infow("comment added successfully", "comment_id", comment.ID(), "ticket_id", cmd.TicketID)
	publishEvent(uc.publisher, uc.logger, ticket.NewTicketCommentAddedEvent(comment))

	return &AddCommentResult{
		CommentID: comment.ID(),
		CreatedAt: comment.CreatedAt(),
	}, nil
}
