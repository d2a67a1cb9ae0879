package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// PolicyFilter narrows catalogue listings. Zero values mean "no filter".
type PolicyFilter struct {
	Type       string
	ActiveOnly *bool
}

func (f PolicyFilter) query() url.Values {
	q := url.Values{}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.ActiveOnly != nil {
		q.Set("activeOnly", strconv.FormatBool(*f.ActiveOnly))
	}
	return q
}

func (c *HTTPClient) listPolicies(ctx context.Context, path string, f PolicyFilter) ([]models.Policy, error) {
	var ws []policyWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: path, query: f.query(), auth: true}, &ws); err != nil {
		return nil, err
	}
	out := make([]models.Policy, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out, nil
}

// Policies lists the catalogue as an admin sees it.
func (c *HTTPClient) Policies(ctx context.Context, f PolicyFilter) ([]models.Policy, error) {
	return c.listPolicies(ctx, "/api/admin/policies", f)
}

// AvailablePolicies lists the catalogue offered to customers.
func (c *HTTPClient) AvailablePolicies(ctx context.Context, f PolicyFilter) ([]models.Policy, error) {
	return c.listPolicies(ctx, "/api/customer/availablepolicies", f)
}

func (c *HTTPClient) CreatePolicy(ctx context.Context, p models.Policy) (models.Policy, error) {
	var w policyWire
	if err := c.doJSON(ctx, request{method: http.MethodPost, path: "/api/admin/policies", auth: true, body: policyBody(p)}, &w); err != nil {
		return models.Policy{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) UpdatePolicy(ctx context.Context, id int64, p models.Policy) (models.Policy, error) {
	var w policyWire
	err := c.doJSON(ctx, request{method: http.MethodPut, path: idPath("/api/admin/policies/%d", id), auth: true, body: policyBody(p)}, &w)
	if err != nil {
		return models.Policy{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) DeletePolicy(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath("/api/admin/policies/%d", id), auth: true})
	return err
}
