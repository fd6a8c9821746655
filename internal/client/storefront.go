package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/01moynul/vrshop-golang/internal/cart"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyCart is returned by Checkout when there is nothing to buy.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIncompleteDraft is returned by SubmitComment when the text is blank or no rating was picked.
	ErrIncompleteDraft = errors.New("write a comment and pick a rating from 1 to 5")
)

// DefaultViewMaxAge is how long loaded collections are served before Get refetches them.
const DefaultViewMaxAge = 2 * time.Minute

// CommentDraft is the comment being written. Rating 0 means none picked yet.
type CommentDraft struct {
	Content string
	Rating  int
}

// Storefront is the client-side state of one shopping session: three
// independent views of server data plus the local cart.
type Storefront struct {
	Client  *Client
	Cart    *cart.Cart
	Catalog *View[models.Product]
	Forum   *View[models.Comment]
	History *View[models.Purchase]
	Draft   CommentDraft
}

func NewStorefront(c *Client) *Storefront {
	return &Storefront{
		Client:  c,
		Cart:    cart.New(),
		Catalog: NewView("products", DefaultViewMaxAge, c.Products),
		Forum:   NewView("comments", DefaultViewMaxAge, c.Comments),
		History: NewView("purchases", DefaultViewMaxAge, c.Purchases),
	}
}

// Load fetches catalog, comments and purchase history concurrently. A failed
// read leaves its view as it was and does not stop the others; the first
// failure is returned so it can be shown.
func (s *Storefront) Load(ctx context.Context) error {
	// A plain Group: one failure must not cancel the other reads.
	var g errgroup.Group
	g.Go(func() error { return s.Catalog.Refresh(ctx) })
	g.Go(func() error { return s.Forum.Refresh(ctx) })
	g.Go(func() error { return s.History.Refresh(ctx) })
	return g.Wait()
}

// Checkout sends the cart to the purchase ledger with retries. On success the
// cart is cleared and the history reloaded; on failure the cart is untouched.
func (s *Storefront) Checkout(ctx context.Context) (*models.Purchase, error) {
	if s.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	purchase, err := s.PlaceOrder(ctx, s.Cart.Snapshot(), s.Cart.Total())
	if err != nil {
		return nil, err
	}
	s.Cart.Clear()
	return purchase, nil
}

// PlaceOrder records items with retries and reloads the history. It leaves
// the cart alone, so it may run off the goroutine that owns the cart.
func (s *Storefront) PlaceOrder(ctx context.Context, items []models.PurchaseItem, total decimal.Decimal) (*models.Purchase, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	purchase, err := s.Client.CreatePurchase(ctx, items, total)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}

	if err := s.History.Refresh(ctx); err != nil {
		// The purchase is recorded; only the displayed history is behind.
		log.Printf("checkout saved purchase %d but history reload failed: %v", purchase.ID, err)
	}
	return purchase, nil
}

// SubmitComment posts the current draft once. On success the server's record
// is appended to the forum view and the draft reset; on failure the draft is kept.
func (s *Storefront) SubmitComment(ctx context.Context) (*models.Comment, error) {
	comment, err := s.PostDraft(ctx, s.Draft)
	if err != nil {
		return nil, err
	}
	s.Draft = CommentDraft{}
	return comment, nil
}

// PostDraft validates and posts draft, then appends the result to the forum view.
func (s *Storefront) PostDraft(ctx context.Context, draft CommentDraft) (*models.Comment, error) {
	content := strings.TrimSpace(draft.Content)
	if content == "" || draft.Rating < models.MinRating || draft.Rating > models.MaxRating {
		return nil, ErrIncompleteDraft
	}

	comment, err := s.Client.PostComment(ctx, content, draft.Rating)
	if err != nil {
		return nil, fmt.Errorf("post comment: %w", err)
	}

	s.Forum.Append(*comment)
	return comment, nil
}
