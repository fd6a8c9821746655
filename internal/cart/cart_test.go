package cart

import (
	"testing"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price string) models.Product {
	return models.Product{ID: id, Name: "Product", Price: decimal.RequireFromString(price)}
}

func TestAddCountsRepeats(t *testing.T) {
	c := New()
	p := product(1, "10.00")
	for i := 0; i < 4; i++ {
		c.Add(p)
	}

	assert.Equal(t, 4, c.Quantity(1))
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 4, c.Count())
}

func TestAddKeepsFirstSnapshot(t *testing.T) {
	c := New()
	c.Add(product(1, "10.00"))
	c.Add(product(1, "99.00"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "10", items[0].Product.Price.String())
	assert.Equal(t, 2, items[0].Quantity)
}

func TestRemoveDropsWholeEntry(t *testing.T) {
	c := New()
	a, b, d := product(1, "1"), product(2, "2"), product(3, "3")
	c.Add(a)
	c.Add(b)
	c.Add(b)
	c.Add(b)
	c.Add(d)

	c.Remove(2)

	assert.Equal(t, 0, c.Quantity(2))
	assert.Equal(t, 2, c.Len())
	items := c.Items()
	assert.Equal(t, int64(1), items[0].Product.ID)
	assert.Equal(t, int64(3), items[1].Product.ID)

	// Index stays consistent after the shift.
	c.Add(d)
	assert.Equal(t, 2, c.Quantity(3))
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	c := New()
	c.Add(product(1, "5"))
	c.Remove(42)
	assert.Equal(t, 1, c.Len())
}

func TestTotalIsExactAndOrderIndependent(t *testing.T) {
	forward := New()
	forward.Add(product(1, "0.10"))
	forward.Add(product(2, "0.20"))
	forward.Add(product(2, "0.20"))
	forward.Add(product(3, "19.99"))

	backward := New()
	backward.Add(product(3, "19.99"))
	backward.Add(product(2, "0.20"))
	backward.Add(product(1, "0.10"))
	backward.Add(product(2, "0.20"))

	want := decimal.RequireFromString("20.49")
	assert.True(t, forward.Total().Equal(want), forward.Total().String())
	assert.True(t, backward.Total().Equal(want), backward.Total().String())
}

func TestEmptyCart(t *testing.T) {
	c := New()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.Empty(t, c.Snapshot())

	var zero Cart
	zero.Add(product(1, "1"))
	assert.Equal(t, 1, zero.Quantity(1))
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(product(1, "10"))
	c.Add(product(2, "10"))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.Quantity(1))
}

func TestSnapshot(t *testing.T) {
	image := "quest.png"
	c := New()
	p := product(7, "10.00")
	p.Image = &image
	c.Add(p)
	c.Add(p)

	snap := c.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, int64(7), snap[0].ID)
	assert.Equal(t, 2, snap[0].Quantity)
	assert.Equal(t, &image, snap[0].Image)
	assert.True(t, models.ItemsTotal(snap).Equal(c.Total()))
}
