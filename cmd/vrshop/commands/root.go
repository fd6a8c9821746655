package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/01moynul/vrshop-golang/internal/client"
	"github.com/01moynul/vrshop-golang/internal/config"
	"github.com/01moynul/vrshop-golang/internal/models"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	serverURL    string
	email        string
	password     string
	captchaToken string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "vrshop",
	Short: "VR Shop - storefront client and operator tools",
	Long: `vrshop talks to a running VR Shop API server and manages its database.

Commands:
  shop      - Browse the catalog, fill a cart, check out and join the forum
  products  - Add, list and remove catalog products (admin)
  migrate   - Apply the database schema
  users     - Grant or revoke admin rights`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadDotEnv()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("VRSHOP_SERVER", "http://localhost:8080"), "API server base URL")
	rootCmd.PersistentFlags().StringVar(&email, "email", os.Getenv("VRSHOP_EMAIL"), "Account email")
	rootCmd.PersistentFlags().StringVar(&password, "password", "", "Account password (defaults to $VRSHOP_PASSWORD)")
	rootCmd.PersistentFlags().StringVar(&captchaToken, "captcha-token", "", "reCAPTCHA token, when the server requires one")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// login returns a Client holding a session for --email.
func login(ctx context.Context) (*client.Client, *models.User, error) {
	if email == "" {
		return nil, nil, errors.New("--email (or $VRSHOP_EMAIL) is required")
	}
	pw := password
	if pw == "" {
		pw = os.Getenv("VRSHOP_PASSWORD")
	}
	if pw == "" {
		return nil, nil, errors.New("--password (or $VRSHOP_PASSWORD) is required")
	}

	c, err := client.New(serverURL)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	user, err := c.Login(ctx, email, pw, captchaToken)
	if err != nil {
		return nil, nil, fmt.Errorf("log in as %s: %w", email, err)
	}
	return c, user, nil
}
