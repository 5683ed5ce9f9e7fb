package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/orris-inc/supportdesk/internal/interfaces/http/handlers/ticket"
)

type TicketRouteConfig struct {
	TicketHandler *tickethandlers.TicketHandler
}

func SetupTicketRoutes(router gin.IRouter, config *TicketRouteConfig) {
	tickets := router.Group("/tickets")
	{
		// Register specific paths before parameterized paths.

		// Collection operations (no ID parameter)
		tickets.POST("",
			config.TicketHandler.CreateTicket)
		tickets.GET("",
			config.TicketHandler.ListTickets)

		// Action endpoints
		tickets.PUT("/:id/status",
			config.TicketHandler.UpdateStatus)
		tickets.POST("/:id/comment",
			config.TicketHandler.AddComment)

		// Generic parameterized routes (must come LAST)
		tickets.GET("/:id",
			config.TicketHandler.GetTicket)
		tickets.DELETE("/:id",
			config.TicketHandler.DeleteTicket)
	}
}
