package routes

import (
	"supplyhouse/internal/container"
	"supplyhouse/internal/middleware"
	"supplyhouse/pkg/security"

	"github.com/gin-gonic/gin"
)

func RegisterPublicRoutes(router *gin.Engine, c *container.Container) {
	c.LoginHandler.RegisterRoutes(router)
	c.InventoryHandler.RegisterRoutes(router)
	c.SyncErrorsHandler.RegisterRoutes(router)
}

func RegisterProtectedRoutes(router *gin.Engine, c *container.Container) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	c.CheckingHandler.RegisterRoutes(protectedRoutes)
	c.SupplierHandler.RegisterRoutes(protectedRoutes)
	c.SupplyItemHandler.RegisterRoutes(protectedRoutes)
	c.UserHandler.RegisterRoutes(protectedRoutes)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
