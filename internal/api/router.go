package api

import (
	"github.com/boardcamp/boardcamp-api/telemetry"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/categories", h.ListCategories)
	r.POST("/categories", h.CreateCategory)

	r.GET("/games", h.ListGames)
	r.POST("/games", h.CreateGame)

	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.POST("/customers", h.CreateCustomer)
	r.PUT("/customers/:id", h.UpdateCustomer)

	r.GET("/rentals", h.ListRentals)
	r.POST("/rentals", h.CreateRental)
	r.POST("/rentals/:id/return", h.ReturnRental)
	r.DELETE("/rentals/:id", h.DeleteRental)

	r.GET("/health", h.Health)
	r.GET("/metrics", telemetry.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
