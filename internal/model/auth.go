package model

// AuthenticatedUser represents an operator session as returned by the
// server. Token is the bearer credential and is never empty on a valid
// session.
type AuthenticatedUser struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Token    string   `json:"token"`
	Roles    []string `json:"roles,omitempty"`
}

// Credentials is transient login input; it is never persisted
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
