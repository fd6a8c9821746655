package commands

import (
	"context"
	"fmt"

	"github.com/01moynul/vrshop-golang/internal/client"
	"github.com/01moynul/vrshop-golang/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var logFile string

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Open the terminal storefront",
	Long: `Log in and open the interactive storefront: browse the catalog, fill a cart,
check out, see your purchase history and read or write comments.

Examples:
  vrshop shop --email alice@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, user, err := login(context.Background())
		if err != nil {
			return err
		}

		// The screen belongs to the UI; logs go to a file.
		f, err := tea.LogToFile(logFile, "vrshop")
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()

		return tui.RunShop(client.NewStorefront(c), user)
	},
}

func init() {
	rootCmd.AddCommand(shopCmd)
	shopCmd.Flags().StringVar(&logFile, "log-file", "vrshop.log", "Where client logs are written")
}
