package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/product-api/internal/middleware"
)

// NewRouter builds the route table. Each mutating route declares the role
// set allowed to call it; guard turns that set into an auth middleware.
func NewRouter(h *ProductHandler, guard func(roles ...string) gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	router.GET("/health", h.HealthCheck)

	router.POST("/products", guard("admin"), h.CreateProduct)
	router.GET("/products", h.ListProducts)
	router.GET("/products/:id", h.GetProduct)
	router.PUT("/products/:id", guard("admin", "user"), h.UpdateProduct)
	router.DELETE("/products/:id", guard("admin"), h.DeleteProduct)
	router.PATCH("/products/:id", guard("admin", "user"), h.DecreaseStock)

	return router
}
