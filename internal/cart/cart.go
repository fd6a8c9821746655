// Package cart holds the client-side shopping cart.
//
// A Cart is owned by a single event loop and is not safe for concurrent use.
package cart

import (
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/shopspring/decimal"
)

// Cart maps products to quantities and keeps them in the order they were first added.
type Cart struct {
	items []models.CartItem
	index map[int64]int // product id -> position in items
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{index: make(map[int64]int)}
}

// Add puts one unit of p in the cart. A product already present only has
// its quantity bumped; the snapshot taken on the first add is kept.
func (c *Cart) Add(p models.Product) {
	if c.index == nil {
		c.index = make(map[int64]int)
	}
	if i, ok := c.index[p.ID]; ok {
		c.items[i].Quantity++
		return
	}
	c.index[p.ID] = len(c.items)
	c.items = append(c.items, models.CartItem{Product: p, Quantity: 1})
}

// Remove drops the whole entry for productID, whatever its quantity.
// Unknown ids are ignored.
func (c *Cart) Remove(productID int64) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	delete(c.index, productID)
	for j := i; j < len(c.items); j++ {
		c.index[c.items[j].Product.ID] = j
	}
}

// Total is the sum of price x quantity over every entry. Zero when empty.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
	c.index = make(map[int64]int)
}

// Items returns a copy of the entries in insertion order.
func (c *Cart) Items() []models.CartItem {
	return append([]models.CartItem(nil), c.items...)
}

// Quantity of productID, 0 when absent.
func (c *Cart) Quantity(productID int64) int {
	if i, ok := c.index[productID]; ok {
		return c.items[i].Quantity
	}
	return 0
}

// Len is the number of distinct products.
func (c *Cart) Len() int { return len(c.items) }

// Count is the number of units across all entries.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return len(c.items) == 0 }

// Snapshot converts the cart into purchase line items.
func (c *Cart) Snapshot() []models.PurchaseItem {
	out := make([]models.PurchaseItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item.PurchaseItem())
	}
	return out
}
