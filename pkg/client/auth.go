package client

import (
	"context"
	"fmt"
)

// Account is the identity returned by the auth endpoint.
type Account struct {
	ID       string
	Username string
	Role     string
}

func (c *Client) Login(ctx context.Context, username, password, role string) (*Account, error) {
	return c.auth(ctx, map[string]any{
		"action":   "login",
		"username": username,
		"password": password,
		"role":     role,
	})
}

func (c *Client) Register(ctx context.Context, username, password, role, name, email, phone string) (*Account, error) {
	return c.auth(ctx, map[string]any{
		"action":   "register",
		"username": username,
		"password": password,
		"role":     role,
		"name":     name,
		"email":    email,
		"phone":    phone,
	})
}

func (c *Client) auth(ctx context.Context, payload map[string]any) (*Account, error) {
	body, err := c.postJSON(ctx, "/auth", payload)
	if err != nil {
		c.log.Error().Err(err).Msg("auth request failed")
		return nil, err
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("auth response missing user")
	}
	account := &Account{}
	account.ID, _ = user["id"].(string)
	account.Username, _ = user["username"].(string)
	account.Role, _ = user["role"].(string)
	if account.ID == "" {
		return nil, fmt.Errorf("auth response missing user id")
	}
	return account, nil
}
