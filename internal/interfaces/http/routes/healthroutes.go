package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/supportdesk/internal/interfaces/http/handlers"
)

func SetupHealthRoutes(router gin.IRouter, handler *handlers.HealthHandler) {
	router.GET("/health", handler.Health)
}
