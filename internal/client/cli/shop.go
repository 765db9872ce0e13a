package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// getLines is a test seam for GetLines.
var getLines = GetLines

func (a *App) Products(ctx context.Context) error {
	products, err := a.shop.Products(ctx)
	if err != nil {
		return err
	}
	a.printProducts(products)
	return nil
}

func (a *App) Trending(ctx context.Context) error {
	products, err := a.shop.Trending(ctx)
	if err != nil {
		return err
	}
	a.printProducts(products)
	return nil
}

func (a *App) Product(ctx context.Context, id string) error {
	p, err := a.shop.Product(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n  id: %s\n  price: %d\n  stock: %d\n", p.Name, p.ID, p.Price, p.Stock)
	if p.Size != "" {
		fmt.Fprintf(a.out, "  size: %s\n", p.Size)
	}
	if p.QuantityInBox > 0 {
		fmt.Fprintf(a.out, "  in box: %d\n", p.QuantityInBox)
	}
	if p.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", p.Description)
	}
	return nil
}

func (a *App) printProducts(products []models.Product) {
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products")
		return
	}
	for _, p := range products {
		stock := "in stock"
		if !p.InStock() {
			stock = "sold out"
		}
		fmt.Fprintf(a.out, "%s  %s  %d  (%s)\n", p.ID, p.Name, p.Price, stock)
	}
}

func (a *App) Orders(ctx context.Context) error {
	orders, err := a.shop.Orders(ctx)
	if err != nil {
		return err
	}
	if len(orders) == 0 {
		fmt.Fprintln(a.out, "No orders")
		return nil
	}
	for _, o := range orders {
		fmt.Fprintf(a.out, "#%d  %s  %s  total %d\n", o.OrderNumber, o.Status, o.CreatedAt.Format("2006-01-02"), o.Total)
		for _, l := range o.Products {
			fmt.Fprintf(a.out, "    %s x%d @ %d\n", l.Product.Name, l.Quantity, l.PriceAtOrder)
		}
		fmt.Fprintf(a.out, "    address: %s\n", o.Address)
		if o.Comment != "" {
			fmt.Fprintf(a.out, "    comment: %s\n", o.Comment)
		}
	}
	return nil
}

// PlaceOrder reads "<product id> <quantity>" lines, the address, an optional
// comment and the total to charge.
func (a *App) PlaceOrder(ctx context.Context) error {
	lines, err := getLines(a.reader, "Enter items as: <product id> <quantity>", a.out)
	if err != nil {
		return err
	}
	items, err := parseItems(lines)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Enter delivery address", a.out)
	if err != nil {
		return err
	}
	comment, err := getSimpleText(a.reader, "Enter comment (optional)", a.out)
	if err != nil {
		return err
	}
	totalText, err := getSimpleText(a.reader, "Enter order total", a.out)
	if err != nil {
		return err
	}
	total, err := strconv.ParseInt(totalText, 10, 64)
	if err != nil || total < 0 {
		return fmt.Errorf("invalid total %q", totalText)
	}

	order, err := a.shop.PlaceOrder(ctx, models.NewOrder{Items: items, Address: address, Comment: comment, Total: total})
	if err != nil {
		return err
	}
	if order.OrderNumber != 0 {
		fmt.Fprintf(a.out, "Order #%d created\n", order.OrderNumber)
	} else {
		fmt.Fprintln(a.out, "Order created")
	}
	return nil
}

func parseItems(lines []string) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("item %q: want <product id> <quantity>", line)
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("item %q: invalid quantity", line)
		}
		items = append(items, models.OrderItem{ProductID: fields[0], Quantity: qty})
	}
	return items, nil
}

func (a *App) EditOrder(ctx context.Context, number string) error {
	n, err := parseOrderNumber(number)
	if err != nil {
		return err
	}
	address, err := getSimpleText(a.reader, "Enter new delivery address", a.out)
	if err != nil {
		return err
	}
	comment, err := getSimpleText(a.reader, "Enter new comment (optional)", a.out)
	if err != nil {
		return err
	}
	if err := a.shop.UpdateOrder(ctx, n, address, comment); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d updated\n", n)
	return nil
}

func (a *App) CancelOrder(ctx context.Context, number string) error {
	n, err := parseOrderNumber(number)
	if err != nil {
		return err
	}
	if err := a.shop.CancelOrder(ctx, n); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d cancelled\n", n)
	return nil
}

func parseOrderNumber(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid order number %q", s)
	}
	return n, nil
}
