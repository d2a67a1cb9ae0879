package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// Registration is the sign-up form as the API expects it.
type Registration struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	PANNumber string `json:"panNumber"`
	Role      string `json:"role"`
}

// Register creates an account and returns the server's confirmation text.
func (c *HTTPClient) Register(ctx context.Context, r Registration) (string, error) {
	return c.doText(ctx, request{method: http.MethodPost, path: "/api/auth/register", body: r})
}

// Login authenticates against the role-specific endpoint.
func (c *HTTPClient) Login(ctx context.Context, role models.Role, email, password string) (models.Identity, error) {
	var w loginWire
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login/" + role.Path(),
		body:   map[string]string{"email": email, "password": password},
	}, &w)
	if err != nil {
		return models.Identity{}, err
	}
	return models.Identity{User: w.userWire.model(), Token: w.Token}, nil
}

// ForgotPassword resets a password, proving identity with the PAN number.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email, panNumber, newPassword string) (string, error) {
	return c.doText(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/forgot-password",
		body:   map[string]string{"email": email, "panNumber": panNumber, "newPassword": newPassword},
	})
}

// ChangePassword changes the password of the logged-in user.
func (c *HTTPClient) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error) {
	return c.doText(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/change-password",
		auth:   true,
		body:   map[string]string{"email": email, "oldPassword": oldPassword, "newPassword": newPassword},
	})
}

// Profile fetches the caller's own profile from the role-specific endpoint.
func (c *HTTPClient) Profile(ctx context.Context, role models.Role) (models.User, error) {
	var w userWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/api/" + role.Path() + "/profile", auth: true}, &w); err != nil {
		return models.User{}, err
	}
	return w.model(), nil
}
