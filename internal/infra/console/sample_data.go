package console

import (
	"context"
	"fmt"
	"io"

	"github.com/jcmexdev/restaurant-orders/internal/app"
)

type sampleProduct struct {
	name        string
	description string
	price       float64
	category    string
}

var sampleProducts = []sampleProduct{
	{"Margherita Pizza", "Classic pizza with tomato sauce, mozzarella, and fresh basil", 12.99, "Pizza"},
	{"Pepperoni Pizza", "Pizza with pepperoni, tomato sauce, and mozzarella cheese", 14.99, "Pizza"},
	{"Classic Burger", "Beef patty with lettuce, tomato, onion, and special sauce", 10.50, "Burger"},
	{"Chicken Burger", "Grilled chicken breast with lettuce and mayo", 9.99, "Burger"},
	{"Coca Cola", "Refreshing cola soft drink", 2.99, "Drinks"},
	{"Fresh Orange Juice", "Freshly squeezed orange juice", 4.50, "Drinks"},
	{"Chocolate Cake", "Rich chocolate cake with chocolate frosting", 6.99, "Desserts"},
	{"Ice Cream Sundae", "Vanilla ice cream with chocolate sauce and whipped cream", 5.50, "Desserts"},
}

// SeedDemoData loads the demo menu and two customers, printing the generated
// ids so they can be used in the menu.
func SeedDemoData(ctx context.Context, out io.Writer, products *app.ProductService, customers *app.CustomerService) error {
	for _, sp := range sampleProducts {
		product, err := products.AddProduct(ctx, sp.name, sp.description, sp.price, sp.category)
		if err != nil {
			return fmt.Errorf("seed product %q: %w", sp.name, err)
		}
		fmt.Fprintf(out, "  product  %s  %s\n", product.ID, product.Name)
	}

	demoCustomers := [][4]string{
		{"Alice Johnson", "alice@example.com", "+1-555-0101", "12 Oak Street"},
		{"Bruno Diaz", "bruno@example.com", "+1-555-0102", "48 Elm Avenue"},
	}
	for _, dc := range demoCustomers {
		customer, err := customers.RegisterCustomer(ctx, dc[0], dc[1], dc[2], dc[3])
		if err != nil {
			return fmt.Errorf("seed customer %q: %w", dc[0], err)
		}
		fmt.Fprintf(out, "  customer %s  %s\n", customer.ID, customer.Name)
	}
	return nil
}
