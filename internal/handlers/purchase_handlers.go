package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/01moynul/vrshop-golang/internal/middleware"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//
// --- Purchase Ledger Handlers ---
//

// PurchaseItemInput is one cart line as the client captured it.
type PurchaseItemInput struct {
	ID       int64            `json:"id" binding:"required"`
	Name     string           `json:"name" binding:"required,max=255"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
	Image    *string          `json:"image"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
}

// CreatePurchaseInput is the body of POST /compras.
type CreatePurchaseInput struct {
	Items []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
	Total *decimal.Decimal    `json:"total" binding:"required"`
}

// ListMyPurchases is the handler for GET /compras.
// Only the caller's purchases are ever returned.
func (h *Handlers) ListMyPurchases(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	purchases, err := h.Purchases.ListPurchasesByUser(c.Request.Context(), userID)
	if err != nil {
		log.Printf("list purchases for user %d: %v", userID, err)
		respondInternal(c, "Failed to fetch purchases")
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// CreatePurchase is the handler for POST /compras (checkout).
// The items are stored as a frozen snapshot. No payment happens here.
func (h *Handlers) CreatePurchase(c *gin.Context) {
	// 1. --- Get User ID ---
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	// 2. --- Bind & Validate JSON ---
	var input CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respondBindError(c, err)
		return
	}

	// 3. --- Build the snapshot ---
	fields := FieldErrors{}
	items := make([]models.PurchaseItem, 0, len(input.Items))
	for i, in := range input.Items {
		price := in.Price.Round(2)
		if price.IsNegative() {
			fields[fmt.Sprintf("items[%d].price", i)] = "must be at least 0"
		}
		item := models.PurchaseItem{
			ID:       in.ID,
			Name:     strings.TrimSpace(in.Name),
			Price:    price,
			Quantity: in.Quantity,
		}
		if in.Image != nil && *in.Image != "" {
			image := *in.Image
			item.Image = &image
		}
		items = append(items, item)
	}

	// 4. --- Check the total ---
	total := input.Total.Round(2)
	computed := models.ItemsTotal(items)
	switch {
	case total.IsNegative():
		fields["total"] = "must be at least 0"
	case total.GreaterThan(maxPrice):
		fields["total"] = "must be at most " + maxPrice.String()
	case !total.Equal(computed):
		if h.Settings.VerifyPurchaseTotal {
			fields["total"] = "does not match the items (expected " + computed.StringFixed(2) + ")"
		} else {
			log.Printf("purchase by user %d: client total %s differs from items total %s", userID, total.StringFixed(2), computed.StringFixed(2))
		}
	}
	if len(fields) > 0 {
		respondValidation(c, fields)
		return
	}

	// 5. --- Save ---
	purchase := &models.Purchase{
		UserID: userID,
		Items:  items,
		Total:  total,
	}
	if err := h.Purchases.CreatePurchase(c.Request.Context(), purchase); err != nil {
		log.Printf("create purchase for user %d: %v", userID, err)
		respondInternal(c, "Failed to save purchase")
		return
	}

	c.JSON(http.StatusCreated, purchase)
}
