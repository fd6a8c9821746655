package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices and totals travel as plain JSON numbers ("price": 10.5), not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is the model for the 'products' table.
// Image is a pointer so a missing image serializes as null.
type Product struct {
	ID        int64           `json:"id" db:"id"`
	Name      string          `json:"name" db:"name"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Image     *string         `json:"image" db:"image"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}
