package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/01moynul/vrshop-golang/internal/client"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	// Products flags
	productName  string
	productPrice string
	productImage string
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the catalog",
	Long: `List, add and remove catalog products through the API.
Adding and removing need an admin account (--email/--password).

Examples:
  vrshop products list
  vrshop products add --name "Quest 3" --price 499.99 --image /uploads/quest.png
  vrshop products rm 12`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every product",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := client.New(serverURL)
		if err != nil {
			return err
		}
		products, err := c.Products(context.Background())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPRICE\tIMAGE")
		for _, p := range products {
			image := "-"
			if p.Image != nil {
				image = *p.Image
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Price.StringFixed(2), image)
		}
		return w.Flush()
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := decimal.NewFromString(productPrice)
		if err != nil {
			return fmt.Errorf("invalid --price %q: %w", productPrice, err)
		}

		c, _, err := login(context.Background())
		if err != nil {
			return err
		}

		var image *string
		if productImage != "" {
			image = &productImage
		}
		p, err := c.CreateProduct(context.Background(), productName, price, image)
		if err != nil {
			return err
		}
		fmt.Printf("Created product #%d %s (%s)\n", p.ID, p.Name, p.Price.StringFixed(2))
		return nil
	},
}

var productsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid product id %q", args[0])
		}

		c, _, err := login(context.Background())
		if err != nil {
			return err
		}
		if err := c.DeleteProduct(context.Background(), id); err != nil {
			return err
		}
		fmt.Printf("Deleted product #%d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsListCmd, productsAddCmd, productsRmCmd)

	productsAddCmd.Flags().StringVar(&productName, "name", "", "Product name")
	productsAddCmd.Flags().StringVar(&productPrice, "price", "", "Price, e.g. 499.99")
	productsAddCmd.Flags().StringVar(&productImage, "image", "", "Image URL (see POST /api/products/image)")
	_ = productsAddCmd.MarkFlagRequired("name")
	_ = productsAddCmd.MarkFlagRequired("price")
}
