package router

import (
	"context"

	"github.com/dmitrijs2005/gradebook/internal/client/session"
	"github.com/dmitrijs2005/gradebook/internal/logging"
)

// Decision is the outcome of a guard check. The zero value allows the
// transition.
type Decision struct {
	Redirect string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

func allow() Decision { return Decision{} }

func redirectTo(p string) Decision { return Decision{Redirect: p} }

// Guard evaluates the session against a target route.
type Guard struct {
	table    *Table
	store    session.Store
	notifier Notifier
	log      logging.Logger
}

type GuardOption func(*Guard)

func WithNotifier(n Notifier) GuardOption {
	return func(g *Guard) { g.notifier = n }
}

func WithGuardLogger(l logging.Logger) GuardOption {
	return func(g *Guard) { g.log = l }
}

func NewGuard(table *Table, store session.Store, opts ...GuardOption) *Guard {
	g := &Guard{
		table:    table,
		store:    store,
		notifier: silentNotifier{},
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// current loads the session and wipes it when role and token disagree.
// Store failures are logged and read as an anonymous session.
func (g *Guard) current(ctx context.Context) session.Session {
	s, err := g.store.Load(ctx)
	if err != nil {
		g.log.Error(ctx, "cannot read session, treating as logged out", "error", err)
		return session.Session{}
	}
	if !s.Consistent() {
		g.log.Warn(ctx, "inconsistent session record, wiping",
			"has_role", s.Role != "", "has_token", s.AccessToken != "")
		if err := g.store.Clear(ctx); err != nil {
			g.log.Error(ctx, "failed to clear session", "error", err)
		}
		return session.Session{}
	}
	return s
}

// Check decides whether the session may enter target. It never fails.
func (g *Guard) Check(ctx context.Context, target string) Decision {
	d := g.check(ctx, Normalize(target))
	if !d.Allowed() {
		g.log.Debug(ctx, "navigation redirected", "target", target, "redirect", d.Redirect)
	}
	return d
}

func (g *Guard) check(ctx context.Context, target string) Decision {
	s := g.current(ctx)
	authenticated := s.IsAuthenticated()
	mustChange := s.MustChangePassword

	if target == LoginPath {
		if !authenticated {
			return allow()
		}
		if mustChange {
			return redirectTo(ChangePasswordPath)
		}
		if landing, ok := LandingPath(s.Role); ok {
			return redirectTo(landing)
		}
		return allow()
	}

	m := g.table.Resolve(target)

	if m.RequiresAuth() && !authenticated {
		g.notifier.Warn(MsgLoginRequired)
		return redirectTo(LoginPath)
	}

	// A pending password change blocks everything else, role checks included.
	if authenticated && mustChange && target != ChangePasswordPath {
		g.notifier.Warn(MsgChangePasswordFirst)
		return redirectTo(ChangePasswordPath)
	}

	if required, ok := m.Role(); ok && required != s.Role {
		g.notifier.Error(MsgAccessDenied)
		return redirectTo(LoginPath)
	}

	return allow()
}
