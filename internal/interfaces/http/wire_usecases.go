package http

import (
	ticketUsecases "github.com/orris-inc/supportdesk/internal/application/ticket/usecases"
)

// allUseCases holds all use case instances used by the application.
type allUseCases struct {
	createTicketUC *ticketUsecases.CreateTicketUseCase
	listTicketsUC  *ticketUsecases.ListTicketsUseCase
	getTicketUC    *ticketUsecases.GetTicketUseCase
	changeStatusUC *ticketUsecases.ChangeStatusUseCase
	addCommentUC   *ticketUsecases.AddCommentUseCase
	deleteTicketUC *ticketUsecases.DeleteTicketUseCase
}

func (c *Container) initUseCases() {
	log := c.log.Named("tickets")

	c.ucs = &allUseCases{
		createTicketUC: ticketUsecases.NewCreateTicketUseCase(c.publisher, log),
		listTicketsUC:  ticketUsecases.NewListTicketsUseCase(log),
		getTicketUC:    ticketUsecases.NewGetTicketUseCase(log),
		changeStatusUC: ticketUsecases.NewChangeStatusUseCase(c.publisher, log),
		addCommentUC:   ticketUsecases.NewAddCommentUseCase(c.publisher, log),
		deleteTicketUC: ticketUsecases.NewDeleteTicketUseCase(c.publisher, log),
	}
}
