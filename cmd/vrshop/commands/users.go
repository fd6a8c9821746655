package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/01moynul/vrshop-golang/internal/store"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage account roles",
	Long: `Grant or revoke the admin role. Admins can add and remove catalog products.
Talks to the database directly (DB_DSN_PRIMARY), not to the API.`,
}

var usersPromoteCmd = &cobra.Command{
	Use:   "promote <email>",
	Short: "Make an account admin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd.Context(), args[0], models.RoleAdmin)
	},
}

var usersDemoteCmd = &cobra.Command{
	Use:   "demote <email>",
	Short: "Make an admin a regular user again",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd.Context(), args[0], models.RoleUser)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersPromoteCmd, usersDemoteCmd)
}

func setRole(ctx context.Context, email, role string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := store.NewMySQL(db).SetRole(ctx, email, role); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no account with email %s", email)
		}
		return err
	}

	fmt.Printf("%s is now %s.\n", email, role)
	return nil
}
