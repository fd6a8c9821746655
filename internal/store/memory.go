package store

import (
	"context"
	"sync"
	"time"

	"github.com/01moynul/vrshop-golang/internal/models"
)

// Memory is a process-local Store used with STORE_DRIVER=memory and in tests.
// It keeps insertion order and never shares slices with callers.
type Memory struct {
	mu        sync.RWMutex
	nextID    int64
	products  []models.Product
	comments  []models.Comment
	purchases []models.Purchase
	users     []models.User
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) newID() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Product{}, m.products...), nil
}

func (m *Memory) CreateProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p.ID = m.newID()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products = append(m.products, *p)
	return nil
}

func (m *Memory) DeleteProduct(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *Memory) ListComments(ctx context.Context) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Comment{}, m.comments...), nil
}

func (m *Memory) CreateComment(ctx context.Context, c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	c.ID = m.newID()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.comments = append(m.comments, *c)
	return nil
}

func (m *Memory) ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	purchases := []models.Purchase{}
	for _, p := range m.purchases {
		if p.UserID == userID {
			p.Items = append([]models.PurchaseItem{}, p.Items...)
			purchases = append(purchases, p)
		}
	}
	return purchases, nil
}

func (m *Memory) CreatePurchase(ctx context.Context, p *models.Purchase) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	p.ID = m.newID()
	p.CreatedAt = now
	p.UpdatedAt = now

	stored := *p
	stored.Items = append([]models.PurchaseItem{}, p.Items...)
	m.purchases = append(m.purchases, stored)
	return nil
}

func (m *Memory) CreateUser(ctx context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	now := time.Now()
	u.ID = m.newID()
	u.CreatedAt = now
	u.UpdatedAt = now
	m.users = append(m.users, *u)
	return nil
}

func (m *Memory) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) RoleOf(ctx context.Context, userID int64) (string, error) {
	u, err := m.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Role, nil
}

func (m *Memory) SetRole(ctx context.Context, email, role string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.users {
		if m.users[i].Email == email {
			m.users[i].Role = role
			m.users[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrNotFound
}
