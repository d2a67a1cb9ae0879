package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/common"
)

// Purchases lists the purchases of a user. activeOnly nil means all.
func (c *HTTPClient) Purchases(ctx context.Context, userID int64, activeOnly *bool) ([]models.Purchase, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	if activeOnly != nil {
		q.Set("activeOnly", strconv.FormatBool(*activeOnly))
	}

	var ws []purchaseWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/api/customer/purchases", query: q, auth: true}, &ws); err != nil {
		return nil, err
	}
	return purchases(ws), nil
}

// UpdatePurchaseDates rewrites the validity window of a purchase; renewal
// uses it to push the expiry date out.
func (c *HTTPClient) UpdatePurchaseDates(ctx context.Context, id, userID int64, purchaseDate, expiryDate time.Time) (models.Purchase, error) {
	body := map[string]any{
		"userId":       userID,
		"purchaseDate": purchaseDate.Format(common.ISODate),
		"expiryDate":   expiryDate.Format(common.ISODate),
	}
	var w purchaseWire
	if err := c.doJSON(ctx, request{method: http.MethodPut, path: idPath("/api/customer/purchases/%d", id), auth: true, body: body}, &w); err != nil {
		return models.Purchase{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) CancelPurchase(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodPut, path: idPath("/api/customer/purchases/cancel/%d", id), auth: true})
	return err
}
