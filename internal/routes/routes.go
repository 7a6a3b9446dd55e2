package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ulp_backend/internal/handlers"
	"ulp_backend/internal/middleware"
	"ulp_backend/internal/services"
)

// RegisterRoutes регистрирует все HTTP маршруты.
//
// Публичная часть обслуживает лендинг: заявки, телеметрия, клиентский
// аудит и логин. Защищенная часть - админка, все маршруты за
// SessionMiddleware.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	authService services.AuthService,
) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.LeadHandler.RegisterPublicRoutes(api)
		appHandlers.EventHandler.RegisterPublicRoutes(api)
		appHandlers.LogHandler.RegisterPublicRoutes(api)
	}

	protected := ginRouter.Group("/api/v1")
	protected.Use(middleware.SessionMiddleware(authService))
	{
		appHandlers.LeadHandler.RegisterProtectedRoutes(protected)
		appHandlers.EventHandler.RegisterProtectedRoutes(protected)
		appHandlers.LogHandler.RegisterProtectedRoutes(protected)
	}
}
