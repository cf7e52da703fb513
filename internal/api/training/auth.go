package training

import (
	"context"
	"net/http"

	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/session"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration creates an account; Role is employee, teacher or planner
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// LoginResult is the data of a successful login. Token is the session id.
type LoginResult struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

type AuthAPI struct {
	c Caller
}

func (a *AuthAPI) Login(ctx context.Context, creds Credentials) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/auth/login", Body: creds})
}

func (a *AuthAPI) Register(ctx context.Context, reg Registration) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/auth/register", Body: reg})
}

func (a *AuthAPI) Logout(ctx context.Context) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: "/auth/logout"})
}

func (a *AuthAPI) CurrentUser(ctx context.Context) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Path: "/auth/current-user"})
}

type HomeAPI struct {
	c Caller
}

// Statistics returns platform counters, personalised when logged in
func (h *HomeAPI) Statistics(ctx context.Context) (*apiclient.Envelope, error) {
	return h.c.Call(ctx, &apiclient.Request{Path: "/home/statistics"})
}
