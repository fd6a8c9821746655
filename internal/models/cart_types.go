package models

import "github.com/shopspring/decimal"

// CartItem is one line of a client-side cart. It is never stored on the
// server; at checkout it becomes a PurchaseItem.
type CartItem struct {
	Product  Product `json:"product"` // Snapshot taken when first added
	Quantity int     `json:"quantity"`
}

// LineTotal is price x quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseItem freezes the line for the purchase ledger.
func (i CartItem) PurchaseItem() PurchaseItem {
	return PurchaseItem{
		ID:       i.Product.ID,
		Name:     i.Product.Name,
		Price:    i.Product.Price,
		Image:    i.Product.Image,
		Quantity: i.Quantity,
	}
}
