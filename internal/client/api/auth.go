// Методы клиента для ресурса /api/users: регистрация, вход и текущий пользователь.
package api

import (
	"context"

	"github.com/mustafaciftc/notebook-app/internal/shared/models"
)

// Register отправляет POST /api/users/register.
func (c *Client) Register(ctx context.Context, name, email, password string) (models.RegisterResponse, error) {
	var resp models.RegisterResponse
	err := c.PostJSON(ctx, "/api/users/register", models.RegisterRequest{Name: name, Email: email, Password: password}, &resp, "")
	return resp, err
}

// Login отправляет POST /api/users/login.
func (c *Client) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var resp models.LoginResponse
	err := c.PostJSON(ctx, "/api/users/login", models.LoginRequest{Email: email, Password: password}, &resp, "")
	return resp, err
}

// Me запрашивает пользователя, которому выдан token.
func (c *Client) Me(ctx context.Context, token string) (models.MeResponse, error) {
	var resp models.MeResponse
	err := c.GetJSON(ctx, "/api/users/me", &resp, token)
	return resp, err
}
