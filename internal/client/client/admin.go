package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

func (c *HTTPClient) listUsers(ctx context.Context, path string) ([]models.User, error) {
	var ws []userWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: path, auth: true}, &ws); err != nil {
		return nil, err
	}
	return users(ws), nil
}

func (c *HTTPClient) PendingAdmins(ctx context.Context) ([]models.User, error) {
	return c.listUsers(ctx, "/api/admin/pending-admins")
}

func (c *HTTPClient) PendingCustomers(ctx context.Context) ([]models.User, error) {
	return c.listUsers(ctx, "/api/admin/pending-customers")
}

func (c *HTTPClient) AllUsers(ctx context.Context) ([]models.User, error) {
	return c.listUsers(ctx, "/api/admin/all-users")
}

func (c *HTTPClient) ActivateAdmin(ctx context.Context, id int64) (string, error) {
	return c.doText(ctx, request{method: http.MethodPost, path: idPath("/api/admin/activate-admin/%d", id), auth: true})
}

func (c *HTTPClient) ActivateCustomer(ctx context.Context, id int64) (string, error) {
	return c.doText(ctx, request{method: http.MethodPost, path: idPath("/api/admin/activate-customer/%d", id), auth: true})
}

func (c *HTTPClient) DeactivateUser(ctx context.Context, id int64) (string, error) {
	return c.doText(ctx, request{method: http.MethodPost, path: idPath("/api/admin/deactivate-user/%d", id), auth: true})
}

func (c *HTTPClient) findUser(ctx context.Context, q url.Values) (models.User, error) {
	var w userWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/api/admin/find-user", query: q, auth: true}, &w); err != nil {
		return models.User{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return c.findUser(ctx, url.Values{"email": {email}})
}

func (c *HTTPClient) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return c.findUser(ctx, url.Values{"id": {strconv.FormatInt(id, 10)}})
}
