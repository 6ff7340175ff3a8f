// Package guard decides, per navigation to a protected view, whether the
// current session may render it. Decisions are a pure function of the
// session snapshot and the route's access requirements: no I/O, no timers,
// recomputed on every evaluation.
package guard

import (
	"github.com/microshop-platform/shopctl/internal/cli/session"
	"github.com/microshop-platform/shopctl/internal/models"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// Render allows the requested view.
	Render Decision = iota
	// Wait means the session is still initializing; show a transient
	// indicator, no redirect decision yet.
	Wait
	// RedirectLogin is an authentication failure: send the visitor to the
	// login destination.
	RedirectLogin
	// RedirectHome is an authorization failure: the visitor is signed in but
	// lacks the required role, send them to the neutral home destination.
	RedirectHome
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case Wait:
		return "wait"
	case RedirectLogin:
		return "redirect-login"
	case RedirectHome:
		return "redirect-home"
	}
	return "unknown"
}

// Access describes what a route requires from the session.
type Access struct {
	RequireAuth bool
	// RequireRole, when set, restricts the route to that role. Implies
	// RequireAuth.
	RequireRole models.Role
}

// Routes is the gated surface of the storefront. Routes not listed here are
// public.
var Routes = map[string]Access{
	"/":               {},
	"/login":          {},
	"/register":       {},
	"/products":       {},
	"/products/:id":   {},
	"/profile":        {RequireAuth: true},
	"/admin":          {RequireAuth: true, RequireRole: models.RoleAdmin},
	"/admin/products": {RequireAuth: true, RequireRole: models.RoleAdmin},
}

// Guard evaluates access decisions. Redirect destinations are configurable;
// the zero value uses /login and /.
type Guard struct {
	LoginRedirect string
	HomeRedirect  string
}

// New returns a guard with the default redirect destinations.
func New() *Guard {
	return &Guard{
		LoginRedirect: "/login",
		HomeRedirect:  "/",
	}
}

// Evaluate decides whether the session may access a route with the given
// requirements.
func (g *Guard) Evaluate(snap session.Snapshot, access Access) Decision {
	if !access.RequireAuth && access.RequireRole == "" {
		return Render
	}
	if snap.Loading {
		return Wait
	}
	if !snap.Authenticated {
		return RedirectLogin
	}
	if access.RequireRole != "" && snap.Role != access.RequireRole {
		return RedirectHome
	}
	return Render
}

// Check evaluates access to a named route from the Routes table. Unknown
// routes are treated as public.
func (g *Guard) Check(snap session.Snapshot, route string) Decision {
	return g.Evaluate(snap, Routes[route])
}

// Destination returns where a redirect decision points. Render and Wait have
// no destination.
func (g *Guard) Destination(d Decision) string {
	switch d {
	case RedirectLogin:
		return g.LoginRedirect
	case RedirectHome:
		return g.HomeRedirect
	}
	return ""
}
