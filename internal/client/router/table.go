package router

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/dmitrijs2005/gradebook/internal/client/models"
)

// CatchAllPath marks the route that receives every unmatched path.
const CatchAllPath = "*"

// Match is the result of resolving a path: the leaf route and its chain of
// ancestors, root first.
type Match struct {
	Path  string
	Route *Route
	Chain []*Route
}

// RequiresAuth reports the nearest declared requiresAuth flag in the chain.
func (m Match) RequiresAuth() bool {
	for i := len(m.Chain) - 1; i >= 0; i-- {
		if v := m.Chain[i].Meta.RequiresAuth; v != nil {
			return *v
		}
	}
	return false
}

// Role reports the nearest declared role in the chain.
func (m Match) Role() (models.Role, bool) {
	for i := len(m.Chain) - 1; i >= 0; i-- {
		if v := m.Chain[i].Meta.Role; v != nil {
			return *v, true
		}
	}
	return "", false
}

// CatchAll reports whether the path matched no declared route.
func (m Match) CatchAll() bool {
	return m.Route != nil && m.Route.Path == CatchAllPath
}

// Table is an immutable index over a route tree.
type Table struct {
	byPath   map[string][]*Route
	paths    []string
	catchAll *Route
}

// NewTable indexes routes. Duplicate full paths are rejected.
func NewTable(routes []*Route) (*Table, error) {
	t := &Table{byPath: map[string][]*Route{}}

	var walk func(parent string, chain []*Route, rs []*Route) error
	walk = func(parent string, chain []*Route, rs []*Route) error {
		for _, r := range rs {
			if r.Path == CatchAllPath {
				t.catchAll = r
				continue
			}
			full := r.Path
			if !strings.HasPrefix(full, "/") {
				full = path.Join(parent, full)
			}
			full = Normalize(full)

			c := append(append([]*Route(nil), chain...), r)
			if _, dup := t.byPath[full]; dup {
				return fmt.Errorf("duplicate route %q", full)
			}
			t.byPath[full] = c
			t.paths = append(t.paths, full)

			if err := walk(full, c, r.Children); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk("/", nil, routes); err != nil {
		return nil, err
	}
	return t, nil
}

// MustTable is NewTable that panics on error; used for the static tree.
func MustTable(routes []*Route) *Table {
	t, err := NewTable(routes)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve matches p against the table. Unknown paths resolve to the
// catch-all route when one is declared; otherwise Route is nil.
func (t *Table) Resolve(p string) Match {
	p = Normalize(p)
	if chain, ok := t.byPath[p]; ok {
		return Match{Path: p, Route: chain[len(chain)-1], Chain: chain}
	}
	if t.catchAll != nil {
		return Match{Path: p, Route: t.catchAll, Chain: []*Route{t.catchAll}}
	}
	return Match{Path: p}
}

// Paths lists every declared full path in declaration order.
func (t *Table) Paths() []string {
	return append([]string(nil), t.paths...)
}

// Normalize drops query and fragment, cleans the path and removes a
// trailing slash. The empty path becomes "/".
func Normalize(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
