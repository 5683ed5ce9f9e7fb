package usecases

import (
	"context"

	"github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
	"github.com/orris-inc/supportdesk/internal/shared/mapper"
)

type ListTicketsUseCase struct {
	logger logger.Interface
}

func NewListTicketsUseCase(logger logger.Interface) *ListTicketsUseCase {
	return &ListTicketsUseCase{logger: logger}
}

// Execute returns every ticket newest first, each with its comments newest first.
func (uc *ListTicketsUseCase) Execute(ctx context.Context, store ticket.Store) ([]*dto.TicketDTO, error) {
	uc.logger.Debugw("executing list tickets use case")

	tickets, err := store.Tickets().List(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list tickets", "error", err)
		return nil, mapStoreError(err)
	}

	if len(tickets) > 0 {
		ids := mapper.MapSlice(tickets, (*ticket.Ticket).ID)
		byTicket, err := store.Comments().ListByTicketIDs(ctx, ids)
		if err != nil {
			uc.logger.Errorw("failed to load comments", "ticket_count", len(ids), "error", err)
			return nil, mapStoreError(err)
		}
		for _, t := range tickets {
			t.AttachComments(byTicket[t.ID()])
		}
	}

	return dto.ToTicketDTOs(tickets), nil
}
