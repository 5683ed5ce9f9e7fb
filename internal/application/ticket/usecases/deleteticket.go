package usecases

import (
	"context"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/biztime"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type DeleteTicketCommand struct {
	TicketID uint
}

type DeleteTicketUseCase struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewDeleteTicketUseCase(publisher events.EventPublisher, logger logger.Interface) *DeleteTicketUseCase {
	return &DeleteTicketUseCase{
		publisher: publisher,
		logger:    logger,
	}
}

// Execute removes the ticket and its comments. The comments table also cascades
// on delete; removing them here keeps stores without enforced foreign keys clean.
func (uc *DeleteTicketUseCase) Execute(ctx context.Context, store ticket.Store, cmd DeleteTicketCommand) error {
	uc.logger.Infow("executing delete ticket use case", "ticket_id", cmd.TicketID)

	txErr := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		if _, err := store.Tickets().GetByID(txCtx, cmd.TicketID); err != nil {
			return err
		}
		if err := store.Comments().DeleteByTicketID(txCtx, cmd.TicketID); err != nil {
			uc.logger.Errorw("failed to delete comments", "ticket_id", cmd.TicketID, "error", err)
			return err
		}
		if err := store.Tickets().Delete(txCtx, cmd.TicketID); err != nil {
			uc.logger.Errorw("failed to delete ticket", "ticket_id", cmd.TicketID, "error", err)
			return err
		}
		return nil
	})
	if txErr != nil {
		return mapStoreError(txErr)
	}

	uc.logger.Infow("ticket deleted successfully", "ticket_id", cmd.TicketID)
	publishEvent(uc.publisher, uc.logger, ticket.NewTicketDeletedEvent(cmd.TicketID, biztime.NowUTC()))
	return nil
}
