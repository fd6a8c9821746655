package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// maxPrice is the largest value a DECIMAL(10,2) column holds.
var maxPrice = decimal.RequireFromString("99999999.99")

// CreateProductInput is the body of POST /api/products.
type CreateProductInput struct {
	Name  string           `json:"name" binding:"required,max=255"`
	Price *decimal.Decimal `json:"price" binding:"required"`
	Image *string          `json:"image" binding:"omitempty,max=255"`
}

// ListProducts is the handler for GET /api/products.
// The catalog is public; order is whatever the store returns.
func (h *Handlers) ListProducts(c *gin.Context) {
	products, err := h.Products.ListProducts(c.Request.Context())
	if err != nil {
		log.Printf("list products: %v", err)
		respondInternal(c, "Failed to fetch products")
		return
	}
	c.JSON(http.StatusOK, products)
}

// CreateProduct is the handler for POST /api/products (admin only).
func (h *Handlers) CreateProduct(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 2. --- Rules the tags cannot express ---
	fields := FieldErrors{}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		fields["name"] = "is required"
	}
	price := input.Price.Round(2)
	if price.IsNegative() {
		fields["price"] = "must be at least 0"
	} else if price.GreaterThan(maxPrice) {
		fields["price"] = "must be at most " + maxPrice.String()
	}
	if len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	// 3. --- Build & Save ---
	product := &models.Product{
		Name:  name,
		Price: price,
	}
	if input.Image != nil && strings.TrimSpace(*input.Image) != "" {
		image := strings.TrimSpace(*input.Image)
		product.Image = &image
	}

	if err := h.Products.CreateProduct(c.Request.Context(), product); err != nil {
		log.Printf("create product: %v", err)
		respondInternal(c, "Failed to create product")
		return
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusCreated, product)
}

// DeleteProduct is the handler for DELETE /api/products/:id (admin only).
// Purchases hold their own snapshots, so nothing else is checked.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	if err := h.Products.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Printf("delete product %d: %v", id, err)
		respondInternal(c, "Failed to delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
