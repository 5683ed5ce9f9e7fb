package http

import (
	"github.com/orris-inc/supportdesk/internal/interfaces/http/handlers"
	ticketHandlers "github.com/orris-inc/supportdesk/internal/interfaces/http/handlers/ticket"
)

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler *handlers.HealthHandler
	ticketHandler *ticketHandlers.TicketHandler
}

func (c *Container) initHandlers() {
	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(c.cfg.Server.ServiceName),
		ticketHandler: ticketHandlers.NewTicketHandler(
			c.stores,
			c.ucs.createTicketUC,
			c.ucs.listTicketsUC,
			c.ucs.getTicketUC,
			c.ucs.changeStatusUC,
			c.ucs.addCommentUC,
			c.ucs.deleteTicketUC,
			c.log.Named("ticket-handler"),
		),
	}
}
