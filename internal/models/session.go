package models

// Session is an authenticated caller of the mock backend. Training sessions are
// kept server-side under ID; marketplace sessions are rebuilt from bearer claims.
type Session struct {
	ID        string `json:"id,omitempty"`
	PersonID  int64  `json:"person_id"`
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat"`
}

// LoginRequest is the payload of both login endpoints
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=20"`
	Password string `json:"password" binding:"required,max=20"`
}

// UserInfo is the user object returned at login. Clients persist it as-is.
type UserInfo struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	RoleDisplay string `json:"roleDisplay"`
	AccountID   int64  `json:"accountId"`
}

// LoginResponse carries the credential (session id or bearer token) and the user
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// CurrentUser answers the current-user endpoints
type CurrentUser struct {
	PersonID    int64  `json:"personId"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Role        string `json:"role"`
	RoleDisplay string `json:"roleDisplay"`
	AccountID   int64  `json:"accountId"`
}
