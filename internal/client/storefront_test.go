package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/vrshop-golang/internal/auth"
	"github.com/01moynul/vrshop-golang/internal/handlers"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/routes"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	auth.Configure([]byte("client-test-secret"), time.Hour)
}

type shop struct {
	srv *httptest.Server
	mem *store.Memory
}

// newShop runs the real router over an in-memory store.
func newShop(t *testing.T, settings handlers.Settings) *shop {
	t.Helper()

	mem := store.NewMemory()
	h := handlers.New(mem, nil, nil, settings)
	srv := httptest.NewServer(routes.SetupRouter(h, routes.Options{}))
	t.Cleanup(srv.Close)
	return &shop{srv: srv, mem: mem}
}

func (s *shop) account(t *testing.T, email, role string) {
	t.Helper()

	var pw models.Password
	require.NoError(t, pw.Set("password1"))
	require.NoError(t, s.mem.CreateUser(context.Background(), &models.User{
		Name: "Test", Email: email, PasswordHash: pw.Hash, Role: role,
	}))
}

func (s *shop) login(t *testing.T, email string) *Client {
	t.Helper()

	c, err := New(s.srv.URL)
	require.NoError(t, err)
	c.RetryDelay = 10 * time.Millisecond
	_, err = c.Login(context.Background(), email, "password1", "")
	require.NoError(t, err)
	return c
}

func TestCheckoutScenario(t *testing.T) {
	ctx := context.Background()
	s := newShop(t, handlers.Settings{VerifyPurchaseTotal: true})
	s.account(t, "admin@example.com", models.RoleAdmin)
	s.account(t, "alice@example.com", models.RoleUser)

	admin := s.login(t, "admin@example.com")
	product, err := admin.CreateProduct(ctx, "Quest 3", decimal.RequireFromString("10.00"), nil)
	require.NoError(t, err)

	front := NewStorefront(s.login(t, "alice@example.com"))
	require.NoError(t, front.Load(ctx))
	require.Len(t, front.Catalog.Items(), 1)
	assert.Empty(t, front.History.Items())

	front.Cart.Add(front.Catalog.Items()[0])
	front.Cart.Add(front.Catalog.Items()[0])
	assert.True(t, front.Cart.Total().Equal(decimal.NewFromInt(20)))

	purchase, err := front.Checkout(ctx)
	require.NoError(t, err)
	assert.True(t, purchase.Total.Equal(decimal.NewFromInt(20)))
	require.Len(t, purchase.Items, 1)
	assert.Equal(t, product.ID, purchase.Items[0].ID)
	assert.Equal(t, 2, purchase.Items[0].Quantity)

	assert.True(t, front.Cart.IsEmpty())
	history := front.History.Items()
	require.Len(t, history, 1)
	assert.Equal(t, purchase.ID, history[0].ID)

	// Deleting the product leaves the recorded purchase intact.
	require.NoError(t, admin.DeleteProduct(ctx, product.ID))
	require.NoError(t, front.History.Refresh(ctx))
	assert.Equal(t, "Quest 3", front.History.Items()[0].Items[0].Name)
}

func TestCheckoutEmptyCart(t *testing.T) {
	front := NewStorefront(&Client{})
	_, err := front.Checkout(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	c.RetryDelay = 5 * time.Millisecond

	front := NewStorefront(c)
	front.Cart.Add(models.Product{ID: 1, Name: "Index", Price: decimal.NewFromInt(999)})

	_, err := front.Checkout(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, front.Cart.Quantity(1))
	assert.Empty(t, front.History.Items())
}

func TestNonAdminCannotDeleteThroughClient(t *testing.T) {
	ctx := context.Background()
	s := newShop(t, handlers.Settings{})
	s.account(t, "admin@example.com", models.RoleAdmin)
	s.account(t, "alice@example.com", models.RoleUser)

	product, err := s.login(t, "admin@example.com").CreateProduct(ctx, "Index", decimal.NewFromInt(999), nil)
	require.NoError(t, err)

	err = s.login(t, "alice@example.com").DeleteProduct(ctx, product.ID)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)

	products, err := s.mem.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestSubmitComment(t *testing.T) {
	ctx := context.Background()
	s := newShop(t, handlers.Settings{})
	s.account(t, "alice@example.com", models.RoleUser)

	anonymous, err := New(s.srv.URL)
	require.NoError(t, err)

	t.Run("incomplete draft is not sent", func(t *testing.T) {
		front := NewStorefront(anonymous)
		front.Draft = CommentDraft{Content: "  ", Rating: 4}
		_, err := front.SubmitComment(ctx)
		assert.ErrorIs(t, err, ErrIncompleteDraft)

		front.Draft = CommentDraft{Content: "Nice", Rating: 0}
		_, err = front.SubmitComment(ctx)
		assert.ErrorIs(t, err, ErrIncompleteDraft)
	})

	t.Run("failure keeps the draft", func(t *testing.T) {
		front := NewStorefront(anonymous)
		front.Draft = CommentDraft{Content: "Nice", Rating: 4}

		_, err := front.SubmitComment(ctx)
		var se *StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
		assert.Equal(t, CommentDraft{Content: "Nice", Rating: 4}, front.Draft)
		assert.Empty(t, front.Forum.Items())
	})

	t.Run("success appends and resets", func(t *testing.T) {
		front := NewStorefront(s.login(t, "alice@example.com"))
		front.Draft = CommentDraft{Content: "Nice", Rating: 5}

		comment, err := front.SubmitComment(ctx)
		require.NoError(t, err)
		assert.Equal(t, 5, comment.Rating)
		assert.Equal(t, CommentDraft{}, front.Draft)

		forum := front.Forum.Items()
		require.Len(t, forum, 1)
		assert.Equal(t, comment.ID, forum[0].ID)
	})
}

func TestLoadIsPartialOnFailure(t *testing.T) {
	ctx := context.Background()
	s := newShop(t, handlers.Settings{})
	require.NoError(t, s.mem.CreateProduct(ctx, &models.Product{Name: "Index", Price: decimal.NewFromInt(999)}))

	anonymous, err := New(s.srv.URL)
	require.NoError(t, err)
	front := NewStorefront(anonymous)

	// The catalog is public; comments and purchases need a session.
	err = front.Load(ctx)
	require.Error(t, err)
	assert.Len(t, front.Catalog.Items(), 1)
	assert.False(t, front.Catalog.Stale())
	assert.True(t, front.Forum.Stale())
	assert.Error(t, front.History.Err())
}
