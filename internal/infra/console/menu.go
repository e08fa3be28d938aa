// Package console is the presentation layer: a text menu over the
// application services, plus the demo data loader.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jcmexdev/restaurant-orders/internal/app"
	"github.com/jcmexdev/restaurant-orders/internal/core/domain"
	"github.com/jcmexdev/restaurant-orders/internal/core/ports"
)

// Menu drives the interactive session.
type Menu struct {
	in        *bufio.Scanner
	out       io.Writer
	products  *app.ProductService
	customers *app.CustomerService
	workflow  *app.OrderWorkflow
	inventory ports.InventoryService
}

func NewMenu(
	in io.Reader,
	out io.Writer,
	products *app.ProductService,
	customers *app.CustomerService,
	workflow *app.OrderWorkflow,
	inventory ports.InventoryService,
) *Menu {
	return &Menu{
		in:        bufio.NewScanner(in),
		out:       out,
		products:  products,
		customers: customers,
		workflow:  workflow,
		inventory: inventory,
	}
}

// Run loops until the user exits or the context is cancelled.
func (m *Menu) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		m.printMenu()
		choice, ok := m.prompt("Select an option: ")
		if !ok {
			return
		}
		switch strings.TrimSpace(choice) {
		case "1":
			m.browseMenu(ctx)
		case "2":
			m.createOrder(ctx)
		case "3":
			m.confirmOrder(ctx)
		case "4":
			m.advanceOrder(ctx)
		case "5":
			m.cancelOrder(ctx)
		case "6":
			m.addItem(ctx)
		case "7":
			m.removeItem(ctx)
		case "8":
			m.listOrders(ctx)
		case "9":
			m.showStock(ctx)
		case "0":
			fmt.Fprintln(m.out, "Goodbye!")
			return
		default:
			fmt.Fprintln(m.out, "Unknown option")
		}
	}
}

func (m *Menu) printMenu() {
	fmt.Fprint(m.out, `
=== Restaurant Orders ===
 1) Browse menu
 2) Create order
 3) Confirm order (charge payment)
 4) Advance order status
 5) Cancel order
 6) Add item to order
 7) Remove item from order
 8) List orders
 9) Stock levels
 0) Exit
`)
}

func (m *Menu) browseMenu(ctx context.Context) {
	products, err := m.products.AvailableProducts(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	for _, p := range products {
		fmt.Fprintf(m.out, "  [%s] %-24s $%6.2f  (%s)\n", shortID(p.ID), p.Name, p.Price, p.Category)
	}
}

func (m *Menu) createOrder(ctx context.Context) {
	customerID, ok := m.prompt("Customer ID: ")
	if !ok {
		return
	}

	var lines []app.OrderLine
	for {
		productID, ok := m.prompt("Product ID (empty to finish): ")
		if !ok || strings.TrimSpace(productID) == "" {
			break
		}
		quantity, err := m.promptInt("Quantity: ")
		if err != nil {
			m.printErr(err)
			continue
		}
		lines = append(lines, app.OrderLine{ProductID: strings.TrimSpace(productID), Quantity: quantity})
	}
	notes, _ := m.prompt("Notes (optional): ")

	order, err := m.workflow.CreateOrder(ctx, app.CreateOrderInput{
		CustomerID: strings.TrimSpace(customerID),
		Lines:      lines,
		Notes:      strings.TrimSpace(notes),
	})
	if err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintf(m.out, "Order %s created, total $%.2f\n", order.ID, order.TotalAmount())
}

func (m *Menu) confirmOrder(ctx context.Context) {
	id, ok := m.prompt("Order ID: ")
	if !ok {
		return
	}
	if err := m.workflow.ConfirmOrder(ctx, strings.TrimSpace(id)); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Order confirmed")
}

func (m *Menu) advanceOrder(ctx context.Context) {
	id, ok := m.prompt("Order ID: ")
	if !ok {
		return
	}
	status, ok := m.prompt("New status (CONFIRMED/PREPARING/READY/DELIVERED/CANCELLED): ")
	if !ok {
		return
	}
	next := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if !next.IsValid() {
		fmt.Fprintln(m.out, "Unknown status")
		return
	}
	if err := m.workflow.UpdateOrderStatus(ctx, strings.TrimSpace(id), next); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintf(m.out, "Order moved to %s\n", next)
}

func (m *Menu) cancelOrder(ctx context.Context) {
	id, ok := m.prompt("Order ID: ")
	if !ok {
		return
	}
	if err := m.workflow.CancelOrder(ctx, strings.TrimSpace(id)); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Order cancelled")
}

func (m *Menu) addItem(ctx context.Context) {
	orderID, ok := m.prompt("Order ID: ")
	if !ok {
		return
	}
	productID, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	quantity, err := m.promptInt("Quantity: ")
	if err != nil {
		m.printErr(err)
		return
	}
	if err := m.workflow.AddItemToOrder(ctx, strings.TrimSpace(orderID), strings.TrimSpace(productID), quantity); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Item added")
}

func (m *Menu) removeItem(ctx context.Context) {
	orderID, ok := m.prompt("Order ID: ")
	if !ok {
		return
	}
	productID, ok := m.prompt("Product ID: ")
	if !ok {
		return
	}
	if err := m.workflow.RemoveItemFromOrder(ctx, strings.TrimSpace(orderID), strings.TrimSpace(productID)); err != nil {
		m.printErr(err)
		return
	}
	fmt.Fprintln(m.out, "Item removed")
}

func (m *Menu) listOrders(ctx context.Context) {
	orders, err := m.workflow.AllOrders(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	if len(orders) == 0 {
		fmt.Fprintln(m.out, "No orders yet")
		return
	}
	for _, o := range orders {
		fmt.Fprintf(m.out, "  %s  %-9s  $%7.2f  customer=%s  items=%d\n",
			o.ID, o.Status, o.TotalAmount(), shortID(o.CustomerID), o.TotalItems())
	}
}

func (m *Menu) showStock(ctx context.Context) {
	products, err := m.products.AvailableProducts(ctx)
	if err != nil {
		m.printErr(err)
		return
	}
	for _, p := range products {
		quantity, err := m.inventory.AvailableQuantity(ctx, p.ID)
		if err != nil {
			m.printErr(err)
			return
		}
		fmt.Fprintf(m.out, "  %-24s %4d units\n", p.Name, quantity)
	}
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) promptInt(label string) (int, error) {
	raw, ok := m.prompt(label)
	if !ok {
		return 0, fmt.Errorf("input closed")
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	return n, nil
}

func (m *Menu) printErr(err error) {
	fmt.Fprintf(m.out, "Error: %v\n", err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
