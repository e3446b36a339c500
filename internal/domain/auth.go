package domain

import "context"

// AuthClient exchanges credentials for an opaque session token with the
// upstream auth endpoints. The token is never parsed locally; it is stored
// and forwarded verbatim.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (string, error)
	Signup(ctx context.Context, username, email, password string) error
	// Logout invalidates the token upstream. Best-effort: callers clear the
	// local session regardless of the result.
	Logout(ctx context.Context, token string) error
}
