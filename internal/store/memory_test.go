package store

import (
	"context"
	"testing"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ Store = (*Memory)(nil)
	_ Store = (*MySQL)(nil)
)

func TestMemoryProductsKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	for _, name := range []string{"Quest 3", "Index", "Pico 4"} {
		require.NoError(t, m.CreateProduct(ctx, &models.Product{Name: name, Price: decimal.NewFromInt(100)}))
	}

	products, err := m.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Quest 3", products[0].Name)
	assert.Equal(t, "Pico 4", products[2].Name)
	assert.NotZero(t, products[0].ID)
	assert.False(t, products[0].CreatedAt.IsZero())
}

func TestMemoryDeleteProduct(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p := &models.Product{Name: "Quest 3", Price: decimal.NewFromInt(499)}
	require.NoError(t, m.CreateProduct(ctx, p))

	require.NoError(t, m.DeleteProduct(ctx, p.ID))
	assert.ErrorIs(t, m.DeleteProduct(ctx, p.ID), ErrNotFound)

	products, err := m.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestMemoryPurchasesScopedToOwner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	mine := &models.Purchase{UserID: 1, Items: []models.PurchaseItem{{ID: 9, Name: "Index", Price: decimal.NewFromInt(10), Quantity: 2}}, Total: decimal.NewFromInt(20)}
	theirs := &models.Purchase{UserID: 2, Items: []models.PurchaseItem{{ID: 9, Name: "Index", Price: decimal.NewFromInt(10), Quantity: 1}}, Total: decimal.NewFromInt(10)}
	require.NoError(t, m.CreatePurchase(ctx, mine))
	require.NoError(t, m.CreatePurchase(ctx, theirs))

	purchases, err := m.ListPurchasesByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, mine.ID, purchases[0].ID)

	// Caller mutations must not leak into the ledger.
	purchases[0].Items[0].Quantity = 99
	again, err := m.ListPurchasesByUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, again[0].Items[0].Quantity)
}

func TestMemoryPurchaseSnapshotSurvivesProductDeletion(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	p := &models.Product{Name: "Quest 3", Price: decimal.NewFromInt(499)}
	require.NoError(t, m.CreateProduct(ctx, p))
	require.NoError(t, m.CreatePurchase(ctx, &models.Purchase{
		UserID: 1,
		Items:  []models.PurchaseItem{{ID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1}},
		Total:  p.Price,
	}))
	require.NoError(t, m.DeleteProduct(ctx, p.ID))

	purchases, err := m.ListPurchasesByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.Equal(t, "Quest 3", purchases[0].Items[0].Name)
}

func TestMemoryUsers(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	u := &models.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "x"}
	require.NoError(t, m.CreateUser(ctx, u))
	assert.Equal(t, models.RoleUser, u.Role)

	err := m.CreateUser(ctx, &models.User{Name: "Ana 2", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	byEmail, err := m.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	require.NoError(t, m.SetRole(ctx, "ana@example.com", models.RoleAdmin))
	role, err := m.RoleOf(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	assert.ErrorIs(t, m.SetRole(ctx, "nobody@example.com", models.RoleAdmin), ErrNotFound)
	_, err = m.GetUserByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
