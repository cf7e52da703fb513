package router

import (
	"go.uber.org/zap"

	"github.com/shiptrain/portal/config"
	"github.com/shiptrain/portal/pkg/logger"
	"github.com/shiptrain/portal/pkg/metrics"
)

// Outcome of a guard check
type Outcome string

const (
	Allowed           Outcome = "allowed"
	RedirectedToLogin Outcome = "redirected_to_login"
	Forbidden         Outcome = "forbidden"
)

// Decision is the result of checking one navigation target
type Decision struct {
	Outcome Outcome
	// Target is where navigation actually lands
	Target string
	// Route is the matched route; zero for unknown paths
	Route   Route
	Params  Params
	Matched bool
}

// Session is what the guard reads from the session store
type Session interface {
	IsLoggedIn() bool
	UserRole() string
}

// GuardOption configures a Guard
type GuardOption func(*Guard)

// WithRoleEnforcement sends users whose role differs from the route's role to the home route
func WithRoleEnforcement() GuardOption {
	return func(g *Guard) {
		g.enforceRoles = true
	}
}

// Guard decides whether a navigation may proceed
type Guard struct {
	table        *Table
	session      Session
	deployment   string
	loginRoute   string
	homeRoute    string
	enforceRoles bool
}

// NewGuard creates a guard over table for the deployment
func NewGuard(table *Table, session Session, d config.DeploymentConfig, opts ...GuardOption) *Guard {
	g := &Guard{
		table:      table,
		session:    session,
		deployment: d.Name,
		loginRoute: d.LoginRoute,
		homeRoute:  d.HomeRoute,
	}
	if g.loginRoute == "" {
		g.loginRoute = "/login"
	}
	if g.homeRoute == "" {
		g.homeRoute = "/"
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// LoginRoute is where unauthenticated navigations are sent
func (g *Guard) LoginRoute() string {
	return g.loginRoute
}

// Check decides the navigation to target. It only reads the session.
func (g *Guard) Check(target string) Decision {
	path := CleanPath(target)
	route, params, ok := g.table.Match(path)

	d := Decision{Outcome: Allowed, Target: target, Route: route, Params: params, Matched: ok}
	switch {
	case !ok:
	case route.RequiresAuth && !g.session.IsLoggedIn():
		d.Outcome, d.Target = RedirectedToLogin, g.loginRoute
	case g.enforceRoles && route.Role != "" && g.session.UserRole() != route.Role:
		d.Outcome, d.Target = Forbidden, g.homeRoute
	}

	metrics.GuardDecisions.WithLabelValues(g.deployment, string(d.Outcome)).Inc()
	if d.Outcome != Allowed {
		logger.Debug("Navigation redirected",
			zap.String("deployment", g.deployment),
			zap.String("target", target),
			zap.String("outcome", string(d.Outcome)),
			zap.String("redirect", d.Target))
	}
	return d
}
