package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/shopspring/decimal"
)

// --- Session ---

// Login stores the session cookie in the client's jar.
func (c *Client) Login(ctx context.Context, email, password, captchaToken string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/login",
		Body: map[string]string{
			"email":        email,
			"password":     password,
			"captchaToken": captchaToken,
		},
	}, false, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	var user models.User
	err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/register",
		Body:   map[string]string{"name": name, "email": email, "password": password},
	}, false, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, Request{Method: http.MethodPost, Path: "/logout"}, false, nil)
}

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, Request{Method: http.MethodGet, Path: "/api/me"}, false, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// --- Reads ---

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, Request{Method: http.MethodGet, Path: "/api/products"}, false, &products)
	return products, err
}

func (c *Client) Comments(ctx context.Context) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.do(ctx, Request{Method: http.MethodGet, Path: "/api/comentarios"}, false, &comments)
	return comments, err
}

// Purchases returns the logged-in user's purchase history.
func (c *Client) Purchases(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	err := c.do(ctx, Request{Method: http.MethodGet, Path: "/compras"}, false, &purchases)
	return purchases, err
}

// --- Writes ---

// PostComment is a single attempt.
func (c *Client) PostComment(ctx context.Context, content string, rating int) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/comentarios",
		Body:   map[string]any{"content": content, "rating": rating},
	}, false, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

type purchaseBody struct {
	Items []models.PurchaseItem `json:"items"`
	Total decimal.Decimal       `json:"total"`
}

// CreatePurchase records a checkout, retrying per MaxAttempts and RetryDelay.
func (c *Client) CreatePurchase(ctx context.Context, items []models.PurchaseItem, total decimal.Decimal) (*models.Purchase, error) {
	var purchase models.Purchase
	err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/compras",
		Body:   purchaseBody{Items: items, Total: total},
	}, true, &purchase)
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// CreateProduct needs an admin session.
func (c *Client) CreateProduct(ctx context.Context, name string, price decimal.Decimal, image *string) (*models.Product, error) {
	var product models.Product
	err := c.do(ctx, Request{
		Method: http.MethodPost,
		Path:   "/api/products",
		Body:   map[string]any{"name": name, "price": price, "image": image},
	}, false, &product)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct needs an admin session.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, Request{
		Method: http.MethodDelete,
		Path:   "/api/products/" + strconv.FormatInt(id, 10),
	}, false, nil)
}
