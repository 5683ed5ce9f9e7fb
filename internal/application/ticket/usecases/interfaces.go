package usecases

import (
	"context"

	"github.com/orris-inc/supportdesk/internal/application/ticket/dto"
	"github.com/orris-inc/supportdesk/internal/domain/ticket"
)

type CreateTicketExecutor interface {
	Execute(ctx context.Context, store ticket.Store, cmd CreateTicketCommand) (*dto.TicketDTO, error)
}

type ListTicketsExecutor interface {
	Execute(ctx context.Context, store ticket.Store) ([]*dto.TicketDTO, error)
}

type GetTicketExecutor interface {
	Execute(ctx context.Context, store ticket.Store, query GetTicketQuery) (*dto.TicketDTO, error)
}

type ChangeStatusExecutor interface {
	Execute(ctx context.Context, store ticket.Store, cmd ChangeStatusCommand) (*ChangeStatusResult, error)
}

type AddCommentExecutor interface {
	Execute(ctx context.Context, store ticket.Store, cmd AddCommentCommand) (*AddCommentResult, error)
}

type DeleteTicketExecutor interface {
	Execute(ctx context.Context, store ticket.Store, cmd DeleteTicketCommand) error
}
