package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/dmitrijs2005/storefront/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Products(ctx context.Context) error
	Product(ctx context.Context, id string) error
	Trending(ctx context.Context) error
	Me(ctx context.Context) error
	Rename(ctx context.Context) error
	Passwd(ctx context.Context) error
	Orders(ctx context.Context) error
	PlaceOrder(ctx context.Context) error
	EditOrder(ctx context.Context, number string) error
	CancelOrder(ctx context.Context, number string) error
}

const (
	guestHelp  = "Available commands: register, login, products, product <id>, trending, exit"
	memberHelp = "Available commands: products, product <id>, trending, me, rename, passwd, orders, order, editorder <n>, cancel <n>, logout, exit"
)

// runREPL reads commands from reader until EOF, "exit" or "quit" and
// dispatches them to a. Commands that need a session are refused while
// logged out. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("shop %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if needsSession(cmd) && !a.isLoggedIn() {
			printlnFn("Please log in first")
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(memberHelp)
			} else {
				printlnFn(guestHelp)
			}

		case "register":
			report(a.Register(ctx))

		case "login":
			report(a.Login(ctx))

		case "logout":
			report(a.Logout(ctx))

		case "products":
			report(a.Products(ctx))

		case "product":
			if len(args) == 0 {
				printlnFn("Usage: product <id>")
				continue
			}
			report(a.Product(ctx, args[0]))

		case "trending":
			report(a.Trending(ctx))

		case "me":
			report(a.Me(ctx))

		case "rename":
			report(a.Rename(ctx))

		case "passwd":
			report(a.Passwd(ctx))

		case "orders":
			report(a.Orders(ctx))

		case "order":
			report(a.PlaceOrder(ctx))

		case "editorder":
			if len(args) == 0 {
				printlnFn("Usage: editorder <order number>")
				continue
			}
			report(a.EditOrder(ctx, args[0]))

		case "cancel":
			if len(args) == 0 {
				printlnFn("Usage: cancel <order number>")
				continue
			}
			report(a.CancelOrder(ctx, args[0]))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func needsSession(cmd string) bool {
	switch cmd {
	case "logout", "me", "rename", "passwd", "orders", "order", "editorder", "cancel":
		return true
	}
	return false
}

// report prints err in user terms. A refresh failure was already announced
// by the session watcher.
func report(err error) {
	var apiErr *api.APIError
	switch {
	case err == nil:
	case errors.Is(err, gateway.ErrAuthenticationFailed):
		if errors.Is(err, gateway.ErrNotLoggedIn) {
			printlnFn("Please log in first")
		}
	case errors.Is(err, api.ErrInsufficientStock):
		printlnFn("Not enough stock:", userMessage(err))
	case errors.Is(err, services.ErrNotLoggedIn):
		printlnFn("Please log in first")
	case errors.As(err, &apiErr) && apiErr.Message != "":
		printlnFn("Error:", apiErr.Message)
	case errors.Is(err, api.ErrUnavailable):
		printlnFn("Server unavailable, try again later")
	default:
		printlnFn("Error:", err.Error())
	}
}

func userMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
