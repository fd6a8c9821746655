package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/vrshop-golang/internal/config"
	"github.com/01moynul/vrshop-golang/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long: `Create the users, products, comentarios and compras tables in the database
named by DB_DSN_PRIMARY. Existing tables are left alone.

Examples:
  vrshop migrate`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func openDB() (*sql.DB, error) {
	cfg := config.Load()
	if cfg.DSN == "" {
		return nil, database.ErrNoDSN
	}
	db, err := database.OpenDBWithDSN(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func runMigrate(ctx context.Context) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("migration timed out: %w", err)
		}
		return err
	}

	fmt.Println("Schema applied.")
	return nil
}
