package usecases

import (
	"context"

	"github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
	"github.com/orris-inc/supportdesk/internal/shared/logger"
)

type GetTicketQuery struct {
	TicketID uint
}

type GetTicketUseCase struct {
	logger logger.Interface
}

func NewGetTicketUseCase(logger logger.Interface) *GetTicketUseCase {
	return &GetTicketUseCase{logger: logger}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, store ticket.Store, query GetTicketQuery) (*dto.TicketDTO, error) {
	uc.logger.Debugw("executing get ticket use case", "ticket_id", query.TicketID)

	t, err := store.Tickets().GetByID(ctx, query.TicketID)
	if err != nil {
		return nil, mapStoreError(err)
	}

	comments, err := store.Comments().ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to load comments", "ticket_id", t.ID(), "error", err)
		return nil, mapStoreError(err)
	}
	t.AttachComments(comments)

	return dto.ToTicketDTO(t), nil
}
