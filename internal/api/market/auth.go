package market

import (
	"context"
	"net/http"

	"github.com/shiptrain/portal/internal/apiclient"
	"github.com/shiptrain/portal/internal/session"
)

type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email,omitempty"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the data of a successful login; Token is a bearer JWT
type LoginResult struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

type PasswordChange struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// TransactionFilter pages the balance history; Type is "deposit", "withdraw", "purchase" or empty
type TransactionFilter struct {
	Type     string
	Page     int
	PageSize int
}

type AuthAPI struct {
	c Caller
}

func (a *AuthAPI) Register(ctx context.Context, reg Registration) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/register", Body: reg})
}

func (a *AuthAPI) Login(ctx context.Context, creds Credentials) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/login", Body: creds})
}

func (a *AuthAPI) Logout(ctx context.Context) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/logout"})
}

func (a *AuthAPI) CurrentUser(ctx context.Context) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Path: prefix + "/auth/current"})
}

func (a *AuthAPI) UpdatePassword(ctx context.Context, change PasswordChange) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPut, Path: prefix + "/auth/password", Body: change})
}

func (a *AuthAPI) UploadAvatar(ctx context.Context, file apiclient.File) (*apiclient.Envelope, error) {
	form := apiclient.NewMultipartForm().AddFile("file", &file)
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/avatar", Form: form})
}

// AvatarURL builds the avatar address of a user without sending anything
func (a *AuthAPI) AvatarURL(userID string) string {
	return a.c.URL(prefix + "/auth/avatar/" + userID)
}

func (a *AuthAPI) Deposit(ctx context.Context, amount float64) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/deposit", Body: amountBody(amount)})
}

func (a *AuthAPI) Withdraw(ctx context.Context, amount float64) (*apiclient.Envelope, error) {
	return a.c.Call(ctx, &apiclient.Request{Method: http.MethodPost, Path: prefix + "/auth/withdraw", Body: amountBody(amount)})
}

func (a *AuthAPI) Transactions(ctx context.Context, f TransactionFilter) (*apiclient.Envelope, error) {
	q := apiclient.NewQuery().String("type", f.Type).Int("page", f.Page).Int("pageSize", f.PageSize)
	return a.c.Call(ctx, &apiclient.Request{Path: prefix + "/auth/transactions", Query: q.Values()})
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

func amountBody(v float64) amountRequest {
	return amountRequest{Amount: v}
}
