package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is the model for the 'compras' table.
// Items is stored as a JSON column and never re-read from 'products',
// so later catalog changes do not touch purchase history.
type Purchase struct {
	ID        int64           `json:"id" db:"id"`
	UserID    int64           `json:"user_id" db:"user_id"`
	Items     []PurchaseItem  `json:"items" db:"items"`
	Total     decimal.Decimal `json:"total" db:"total"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

// PurchaseItem is one frozen line of a purchase: the product as it was
// when it went into the cart, plus the quantity bought.
type PurchaseItem struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"` // Price at the time of purchase
	Image    *string         `json:"image"`
	Quantity int             `json:"quantity"`
}

// LineTotal is price x quantity for a single line.
func (i PurchaseItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemsTotal sums every line of a snapshot.
func ItemsTotal(items []PurchaseItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
