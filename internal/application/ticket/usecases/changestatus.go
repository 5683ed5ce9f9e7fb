package usecases

import (
	"context"

	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	vo "github.com/orris-inc/supportdesk/internal/domain/ticket/valueobjects"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type ChangeStatusCommand struct {
	TicketID uint
	Status   string
}

type ChangeStatusResult struct {
	TicketID  uint
	OldStatus string
	NewStatus string
}

type ChangeStatusUseCase struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewChangeStatusUseCase(publisher events.EventPublisher, logger logger.Interface) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		publisher: publisher,
		logger:    logger,
	}
}

// Execute moves the ticket to any of the three statuses. Setting the current
// status again is accepted and still refreshes updatedAt.
func (uc *ChangeStatusUseCase) Execute(ctx context.Context, store ticket.Store, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	uc.logger.Infow("executing change status use case", "ticket_id", cmd.TicketID, "status", cmd.Status)

	newStatus, err := vo.NewTicketStatus(cmd.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(MsgInvalidStatus)
	}

	var (
		updated   *ticket.Ticket
		oldStatus vo.TicketStatus
	)
	txErr := store.RunInTransaction(ctx, func(txCtx context.Context) error {
		t, err := store.Tickets().GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return err
		}

		oldStatus = t.Status()
		if err := t.ChangeStatus(newStatus); err != nil {
			return err
		}

		if err := store.Tickets().Update(txCtx, t); err != nil {
			uc.logger.Errorw("failed to update ticket", "ticket_id", cmd.TicketID, "error", err)
			return err
		}
		updated = t
		return nil
	})
	if txErr != nil {
		return nil, mapStoreError(txErr)
	}

	uc.logger.Infow("ticket status changed",
		"ticket_id", cmd.TicketID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)
	publishEvent(uc.publisher, uc.logger, ticket.NewTicketStatusChangedEvent(updated, oldStatus.String()))

	return &ChangeStatusResult{
		TicketID:  cmd.TicketID,
		OldStatus: oldStatus.String(),
		NewStatus: newStatus.String(),
	}, nil
}
