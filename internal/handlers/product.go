package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/prudhivi99/product-api/internal/db"
	"github.com/prudhivi99/product-api/internal/models"
)

// ProductStore is the storage surface the handlers need. TryDecrement must
// apply the sufficiency check and the decrement atomically and must not
// write anything on failure.
type ProductStore interface {
	Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	GetAll(ctx context.Context) (*models.ProductList, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, req models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	TryDecrement(ctx context.Context, id primitive.ObjectID, amount int) (*models.Product, error)
}

// StockEventPublisher announces committed stock decrements.
type StockEventPublisher interface {
	PublishStockDecreased(product *models.Product, quantity int) error
}

type ProductHandler struct {
	store     ProductStore
	publisher StockEventPublisher
}

// NewProductHandler creates a handler; publisher may be nil when no broker
// is configured.
func NewProductHandler(store ProductStore, publisher StockEventPublisher) *ProductHandler {
	return &ProductHandler{
		store:     store,
		publisher: publisher,
	}
}

// HealthCheck returns server status
func (h *ProductHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "product-service"})
}

// CreateProduct creates a new product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("✅ Product %s created", product.ID.Hex())
	c.JSON(http.StatusCreated, product)
}

// ListProducts returns all products with the total record count
func (h *ProductHandler) ListProducts(c *gin.Context) {
	list, err := h.store.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetProduct returns a single product
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	product, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct applies a partial update
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req models.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.store.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

// DecreaseStock applies a guarded stock decrement. The quantity is signed;
// only negative values (decrease) are accepted.
func (h *ProductHandler) DecreaseStock(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	var req models.UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Quantity >= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock can only be decreased"})
		return
	}

	amount := -req.Quantity
	product, err := h.store.TryDecrement(c.Request.Context(), id, amount)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		case errors.Is(err, db.ErrInsufficientStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if h.publisher != nil {
		if err := h.publisher.PublishStockDecreased(product, amount); err != nil {
			log.Printf("⚠️ Failed to publish event: %v", err)
			// Don't fail the request, the decrement is already committed
		}
	}

	log.Printf("✅ Stock of product %s reduced by %d, %d remaining", product.ID.Hex(), amount, product.Stock)
	c.JSON(http.StatusOK, product)
}
