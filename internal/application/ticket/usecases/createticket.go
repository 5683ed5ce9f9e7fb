package usecases

import (
	"context"
	"errors"

	"github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/domain/shared/events"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	apperrors "github.com/orris-inc/supportdesk/internal/shared/errors"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type CreateTicketCommand struct {
	Title       string
	Category    string
	Description string
}

type CreateTicketUseCase struct {
	publisher events.EventPublisher
	logger    logger.Interface
}

func NewCreateTicketUseCase(publisher events.EventPublisher, logger logger.Interface) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		publisher: publisher,
		logger:    logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, store ticket.Store, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.Infow("executing create ticket use case", "title", cmd.Title, "category", cmd.Category)

	newTicket, err := ticket.NewTicket(cmd.Title, cmd.Category, cmd.Description)
	if err != nil {
		if errors.Is(err, ticket.ErrMissingFields) {
			return nil, apperrors.NewValidationError(MsgMissingTicketFields)
		}
		return nil, apperrors.NewInternalError(err)
	}

	if err := store.Tickets().Create(ctx, newTicket); err != nil {
		uc.logger.Errorw("failed to save ticket", "error", err)
		return nil, mapStoreError(err)
	}

	uc.logger.Infow("ticket created successfully", "ticket_id", newTicket.ID())
	publishEvent(uc.publisher, uc.logger, ticket.NewTicketCreatedEvent(newTicket))

	return dto.ToTicketDTO(newTicket), nil
}
