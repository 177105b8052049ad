package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gradebook/internal/logging"
)

// MaxHops bounds the redirects followed by one navigation.
const MaxHops = 10

var ErrRedirectLoop = errors.New("too many redirects")

// Navigation describes where a Navigate call ended up.
type Navigation struct {
	Requested string
	Match     Match
	// Hops lists every path visited after the requested one.
	Hops []string
}

func (n Navigation) Path() string { return n.Match.Path }

func (n Navigation) Redirected() bool { return len(n.Hops) > 0 }

// Router tracks the current location and moves it only through the guard.
type Router struct {
	table *Table
	guard *Guard
	log   logging.Logger

	mu         sync.Mutex
	current    string
	generation uint64
}

func New(table *Table, guard *Guard, log logging.Logger) *Router {
	if log == nil {
		log = logging.Discard()
	}
	return &Router{table: table, guard: guard, log: log, current: LoginPath}
}

// Navigate resolves target, following route redirects and guard decisions
// until a route is allowed. The current location changes only on success.
func (r *Router) Navigate(ctx context.Context, target string) (Navigation, error) {
	nav := Navigation{Requested: target}
	p := Normalize(target)

	for hop := 0; ; hop++ {
		if hop > MaxHops {
			return nav, fmt.Errorf("navigate %s: %w", target, ErrRedirectLoop)
		}
		if hop > 0 {
			nav.Hops = append(nav.Hops, p)
		}

		m := r.table.Resolve(p)
		if m.Route == nil {
			return nav, fmt.Errorf("navigate %s: no route for %s", target, p)
		}
		if m.Route.Redirect != "" {
			p = Normalize(m.Route.Redirect)
			continue
		}

		d := r.guard.Check(ctx, p)
		if !d.Allowed() {
			p = Normalize(d.Redirect)
			continue
		}

		nav.Match = m
		r.mu.Lock()
		r.current = m.Path
		r.mu.Unlock()
		return nav, nil
	}
}

// Current returns the path of the active route.
func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Generation changes on every hard redirect. Views compare it to drop state
// cached before the reset.
func (r *Router) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// HardRedirect discards the current location without consulting the
// guard, like a full page load. It satisfies client.Navigator.
func (r *Router) HardRedirect(path string) {
	r.mu.Lock()
	r.current = Normalize(path)
	r.generation++
	r.mu.Unlock()
	r.log.Debug(context.Background(), "hard redirect", "path", path)
}
