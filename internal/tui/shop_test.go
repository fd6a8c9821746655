package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/01moynul/vrshop-golang/internal/cart"
	"github.com/01moynul/vrshop-golang/internal/client"
	"github.com/01moynul/vrshop-golang/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedView[T any](items ...T) *client.View[T] {
	v := client.NewView("fixed", 0, func(context.Context) ([]T, error) { return items, nil })
	_ = v.Refresh(context.Background())
	return v
}

func newTestModel() ShopModel {
	shop := &client.Storefront{
		Cart: cart.New(),
		Catalog: fixedView(
			models.Product{ID: 1, Name: "Quest 3", Price: decimal.RequireFromString("10.00")},
			models.Product{ID: 2, Name: "Index", Price: decimal.RequireFromString("999.00")},
		),
		Forum:   fixedView[models.Comment](),
		History: fixedView[models.Purchase](),
	}
	m := NewShopModel(shop, &models.User{ID: 1, Name: "Alice"})
	m.loading = false
	return m
}

func press(t *testing.T, m ShopModel, keys ...string) (ShopModel, tea.Cmd) {
	t.Helper()

	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, c := m.Update(msg)
		m = next.(ShopModel)
		cmd = c
	}
	return m, cmd
}

func TestAddAndRemoveFromCart(t *testing.T) {
	m := newTestModel()

	m, _ = press(t, m, "a", "a", "down", "a")
	assert.Equal(t, 2, m.shop.Cart.Quantity(1))
	assert.Equal(t, 1, m.shop.Cart.Quantity(2))
	assert.True(t, m.shop.Cart.Total().Equal(decimal.RequireFromString("1019")))

	m, _ = press(t, m, "tab")
	assert.Equal(t, TabCart, m.tab)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(t, m, "x")
	assert.Equal(t, 0, m.shop.Cart.Quantity(1))
	assert.Equal(t, 1, m.shop.Cart.Len())
	assert.Contains(t, m.View(), "999.00")
}

func TestCheckoutEmptyCartDoesNothing(t *testing.T) {
	m := newTestModel()

	m, cmd := press(t, m, "c")
	assert.Nil(t, cmd)
	assert.False(t, m.checkingOut)
	assert.True(t, m.statusErr)
}

func TestCheckoutOutcome(t *testing.T) {
	m := newTestModel()
	m, _ = press(t, m, "a", "a")

	m, cmd := press(t, m, "c")
	require.NotNil(t, cmd)
	assert.True(t, m.checkingOut)

	// The cart is frozen while the order is in flight.
	m, _ = press(t, m, "a")
	assert.Equal(t, 2, m.shop.Cart.Quantity(1))

	next, _ := m.Update(checkoutMsg{err: errors.New("server answered 500")})
	m = next.(ShopModel)
	assert.False(t, m.checkingOut)
	assert.True(t, m.statusErr)
	assert.Equal(t, 2, m.shop.Cart.Quantity(1))

	next, _ = m.Update(checkoutMsg{purchase: &models.Purchase{ID: 7, Total: decimal.NewFromInt(20)}})
	m = next.(ShopModel)
	assert.True(t, m.shop.Cart.IsEmpty())
	assert.False(t, m.statusErr)
	assert.Contains(t, m.status, "20.00")
}

func TestCommentDraftSurvivesFailure(t *testing.T) {
	m := newTestModel()
	m, _ = press(t, m, "tab", "tab", "tab")
	require.Equal(t, TabForum, m.tab)

	// Incomplete drafts are not sent.
	m, cmd := press(t, m, "enter")
	assert.Nil(t, cmd)
	assert.True(t, m.statusErr)

	m, _ = press(t, m, "4", "i", "G", "o", "o", "d")
	assert.Equal(t, 4, m.rating)
	assert.Equal(t, "Good", m.draft.Value())

	m, cmd = press(t, m, "enter")
	require.NotNil(t, cmd)
	assert.True(t, m.posting)

	next, _ := m.Update(commentMsg{err: errors.New("server answered 401")})
	m = next.(ShopModel)
	assert.Equal(t, "Good", m.draft.Value())
	assert.Equal(t, 4, m.rating)
	assert.True(t, m.statusErr)

	next, _ = m.Update(commentMsg{comment: &models.Comment{ID: 1, Content: "Good", Rating: 4}})
	m = next.(ShopModel)
	assert.Empty(t, m.draft.Value())
	assert.Equal(t, 0, m.rating)
}

func TestQuit(t *testing.T) {
	_, cmd := press(t, newTestModel(), "q")
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
