// Package store persists products, comments, purchases and users.
//
// Two implementations exist: MySQL (production) and Memory (local runs and tests).
// Both satisfy every interface below.
package store

import (
	"context"
	"errors"

	"github.com/01moynul/vrshop-golang/internal/models"
)

var (
	// ErrNotFound is returned when a row addressed by id or email does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email that already has an account.
	ErrDuplicateEmail = errors.New("email already registered")
)

// ProductStore is the catalog. Listing returns store insertion order.
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// CommentStore is the append-only forum.
type CommentStore interface {
	ListComments(ctx context.Context) ([]models.Comment, error)
	CreateComment(ctx context.Context, c *models.Comment) error
}

// PurchaseStore is the append-only purchase ledger.
type PurchaseStore interface {
	ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error)
	CreatePurchase(ctx context.Context, p *models.Purchase) error
}

// UserStore holds accounts and their roles.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	RoleOf(ctx context.Context, userID int64) (string, error)
	SetRole(ctx context.Context, email, role string) error
}

// Store bundles every store a server needs.
type Store interface {
	ProductStore
	CommentStore
	PurchaseStore
	UserStore
}
