package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/gradebook/internal/client/router"
)

// enter navigates to path through the guard and reports whether the user
// actually arrived there. Redirects are printed.
func (a *App) enter(ctx context.Context, path string) bool {
	a.view()

	nav, err := a.router.Navigate(ctx, path)
	if err != nil {
		a.log.Error(ctx, "navigation failed", "target", path, "error", err)
		a.printf("cannot open %s: %v\n", path, err)
		return false
	}
	if nav.Redirected() {
		a.printf("-> %s\n", nav.Path())
	}
	return nav.Path() == router.Normalize(path)
}

// Go handles "go <path>".
func (a *App) Go(ctx context.Context, args []string) error {
	if len(args) != 1 {
		a.println("Usage: go <path>")
		return nil
	}
	if a.enter(ctx, args[0]) {
		a.printf("at %s\n", a.router.Current())
	}
	return nil
}

// Where prints the current route and the routes reachable from the menu.
func (a *App) Where(_ context.Context) error {
	a.printf("current: %s\n", a.router.Current())
	a.println("routes:", strings.Join(a.table.Paths(), " "))
	return nil
}
