package rest

import (
	"context"
	"net/http"
)

// AuthRepository implements domain.AuthClient over the upstream token-auth
// endpoints.
type AuthRepository struct {
	client *Client
}

func NewAuthRepository(client *Client) *AuthRepository {
	return &AuthRepository{client: client}
}

func (r *AuthRepository) Login(ctx context.Context, username, password string) (string, error) {
	body := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{Username: username, Password: password}

	var resp struct {
		Token string `json:"token"`
	}
	if err := r.client.do(ctx, http.MethodPost, "/auth-token/", "", body, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (r *AuthRepository) Signup(ctx context.Context, username, email, password string) error {
	body := struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Username: username, Email: email, Password: password}

	return r.client.do(ctx, http.MethodPost, "/auth/signup/", "", body, nil)
}

func (r *AuthRepository) Logout(ctx context.Context, token string) error {
	return r.client.do(ctx, http.MethodPost, "/auth/logout/", token, nil, nil)
}
