package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/storefront/internal/client/api"
	"github.com/dmitrijs2005/storefront/internal/client/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error     { return f.record("register") }
func (f *fakeExec) Products(context.Context) error     { return f.record("products") }
func (f *fakeExec) Trending(context.Context) error     { return f.record("trending") }
func (f *fakeExec) Me(context.Context) error           { return f.record("me") }
func (f *fakeExec) Rename(context.Context) error       { return f.record("rename") }
func (f *fakeExec) Passwd(context.Context) error       { return f.record("passwd") }
func (f *fakeExec) Orders(context.Context) error       { return f.record("orders") }
func (f *fakeExec) PlaceOrder(context.Context) error   { return f.record("order") }
func (f *fakeExec) Product(_ context.Context, id string) error {
	return f.record("product " + id)
}
func (f *fakeExec) EditOrder(_ context.Context, n string) error {
	return f.record("editorder " + n)
}
func (f *fakeExec) CancelOrder(_ context.Context, n string) error {
	return f.record("cancel " + n)
}
func (f *fakeExec) Login(context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"orders",
		"products",
		"login",
		"help",
		"product p1",
		"trending",
		"me",
		"order",
		"editorder 12",
		"cancel 12",
		"foobar",
		"logout",
		"me",
		"exit",
		"products",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"products", "login", "product p1", "trending", "me", "order", "editorder 12", "cancel 12", "logout",
	}, exec.calls)
	assert.Contains(t, *out, guestHelp)
	assert.Contains(t, *out, memberHelp)
	assert.Contains(t, *out, "Please log in first")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_UsageAndQuit(t *testing.T) {
	out := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("product\ncancel\neditorder\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: product <id>")
	assert.Contains(t, *out, "Usage: cancel <order number>")
}

func TestRunREPL_StopsOnEOFWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("products")))
	assert.Equal(t, []string{"products"}, exec.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	capturePrints(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("products\n")))
	assert.Empty(t, exec.calls)
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want []string
	}{
		{name: "nil", err: nil, want: nil},
		{name: "refresh failure is announced elsewhere", err: fmt.Errorf("%w: %w", gateway.ErrAuthenticationFailed, gateway.ErrRefreshRejected), want: nil},
		{name: "no credentials", err: fmt.Errorf("%w: %w", gateway.ErrAuthenticationFailed, gateway.ErrNotLoggedIn), want: []string{"Please log in first"}},
		{name: "stock", err: &api.APIError{Status: 400, Message: "Choynak yetarli miqdor mavjud emas"}, want: []string{"Not enough stock: Choynak yetarli miqdor mavjud emas"}},
		{name: "server message", err: &api.APIError{Status: 400, Message: "Parol noto'g'ri"}, want: []string{"Error: Parol noto'g'ri"}},
		{name: "unavailable", err: fmt.Errorf("%w: dial tcp", api.ErrUnavailable), want: []string{"Server unavailable, try again later"}},
		{name: "other", err: fmt.Errorf("boom"), want: []string{"Error: boom"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := capturePrints(t)
			report(tt.err)
			require.Equal(t, tt.want, *out)
		})
	}
}
