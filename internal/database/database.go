package database

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

//go:embed schema.sql
var schemaSQL string

// ErrNoDSN is returned by OpenDB when DB_DSN_PRIMARY is not set.
var ErrNoDSN = errors.New("DB_DSN_PRIMARY environment variable is not set")

// OpenDB initializes and returns the primary Read/Write connection pool
// using the DSN from DB_DSN_PRIMARY (it must include parseTime=true).
func OpenDB() (*sql.DB, error) {
	dsn := os.Getenv("DB_DSN_PRIMARY")
	if dsn == "" {
		return nil, ErrNoDSN
	}
	return OpenDBWithDSN(dsn)
}

// OpenDBWithDSN creates and configures a connection pool for any DSN.
func OpenDBWithDSN(dsn string) (*sql.DB, error) {
	// 1. Open a new connection pool.
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// 2. Configure the connection pool settings.
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// 3. Ping the database to verify the connection.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		log.Printf("Error connecting to database: %v", err)
		db.Close()
		return nil, err
	}

	log.Println("Database connection pool established successfully")
	return db, nil
}

// Migrate applies the embedded schema. Every statement is idempotent
// (CREATE TABLE IF NOT EXISTS), so running it twice is harmless.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range statements(schemaSQL) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

// statements splits a script on ';'. The schema holds no literals with semicolons.
func statements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
