package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is the server error number for a UNIQUE violation.
const mysqlDuplicateEntry = 1062

// MySQL implements Store on top of a database/sql pool opened by the database package.
type MySQL struct {
	DB *sql.DB
}

// NewMySQL wraps an open connection pool.
func NewMySQL(db *sql.DB) *MySQL {
	return &MySQL{DB: db}
}

//
// --- Products ---
//

func (s *MySQL) ListProducts(ctx context.Context) ([]models.Product, error) {
	query := "SELECT id, name, price, image, created_at, updated_at FROM products ORDER BY id ASC"

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		var image sql.NullString
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &image, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		if image.Valid {
			p.Image = &image.String
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *MySQL) CreateProduct(ctx context.Context, p *models.Product) error {
	now := time.Now()
	query := `
		INSERT INTO products (name, price, image, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.DB.ExecContext(ctx, query, p.Name, p.Price, p.Image, now, now)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (s *MySQL) DeleteProduct(ctx context.Context, id int64) error {
	result, err := s.DB.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

//
// --- Comments ---
//

func (s *MySQL) ListComments(ctx context.Context) ([]models.Comment, error) {
	query := "SELECT id, user_id, content, rating, created_at, updated_at FROM comentarios ORDER BY id ASC"

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.Content, &c.Rating, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}

func (s *MySQL) CreateComment(ctx context.Context, c *models.Comment) error {
	now := time.Now()
	query := `
		INSERT INTO comentarios (user_id, content, rating, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.DB.ExecContext(ctx, query, c.UserID, c.Content, c.Rating, now, now)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("comment id: %w", err)
	}

	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

//
// --- Purchases ---
//

func (s *MySQL) ListPurchasesByUser(ctx context.Context, userID int64) ([]models.Purchase, error) {
	query := `
		SELECT id, user_id, items, total, created_at, updated_at
		FROM compras
		WHERE user_id = ?
		ORDER BY id ASC`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query purchases: %w", err)
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		var itemsJSON []byte
		if err := rows.Scan(&p.ID, &p.UserID, &itemsJSON, &p.Total, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan purchase: %w", err)
		}
		if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
			return nil, fmt.Errorf("decode items of purchase %d: %w", p.ID, err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate purchases: %w", err)
	}
	return purchases, nil
}

func (s *MySQL) CreatePurchase(ctx context.Context, p *models.Purchase) error {
	itemsJSON, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("encode purchase items: %w", err)
	}

	now := time.Now()
	query := `
		INSERT INTO compras (user_id, items, total, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := s.DB.ExecContext(ctx, query, p.UserID, itemsJSON, p.Total, now, now)
	if err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("purchase id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

//
// --- Users ---
//

const userColumns = "id, name, email, password_hash, role, created_at, updated_at"

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *MySQL) CreateUser(ctx context.Context, u *models.User) error {
	now := time.Now()
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	query := `
		INSERT INTO users (name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := s.DB.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.Role, now, now)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("user id: %w", err)
	}

	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (s *MySQL) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return scanUser(row)
}

func (s *MySQL) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return scanUser(row)
}

func (s *MySQL) RoleOf(ctx context.Context, userID int64) (string, error) {
	var role string
	err := s.DB.QueryRowContext(ctx, "SELECT role FROM users WHERE id = ?", userID).Scan(&role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("query role: %w", err)
	}
	return role, nil
}

func (s *MySQL) SetRole(ctx context.Context, email, role string) error {
	result, err := s.DB.ExecContext(ctx,
		"UPDATE users SET role = ?, updated_at = ? WHERE email = ?",
		role, time.Now(), email)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if rowsAffected == 0 {
		// MySQL reports 0 when the row already had this role, so check existence.
		if _, err := s.GetUserByEmail(ctx, email); err != nil {
			return err
		}
	}
	return nil
}
