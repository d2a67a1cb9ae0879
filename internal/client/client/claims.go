package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// Claims lists every claim (admin).
func (c *HTTPClient) Claims(ctx context.Context) ([]models.Claim, error) {
	var ws []claimWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: "/api/admin/claims", auth: true}, &ws); err != nil {
		return nil, err
	}
	return claims(ws), nil
}

// UpdateClaimStatus records an admin decision.
func (c *HTTPClient) UpdateClaimStatus(ctx context.Context, id int64, status models.ClaimStatus) error {
	_, err := c.do(ctx, request{
		method: http.MethodPut,
		path:   idPath("/api/admin/claims/%d/status", id),
		auth:   true,
		body:   map[string]string{"status": string(status)},
	})
	return err
}

// SubmitClaim files a claim against a purchase.
func (c *HTTPClient) SubmitClaim(ctx context.Context, userID, purchaseID int64, status models.ClaimStatus) (models.Claim, error) {
	var w claimWire
	err := c.doJSON(ctx, request{
		method: http.MethodPost,
		path:   "/api/customer/claims",
		auth:   true,
		body:   claimBody{UserID: userID, PurchaseID: purchaseID, ClaimStatus: string(status)},
	}, &w)
	if err != nil {
		return models.Claim{}, err
	}
	return w.model(), nil
}

func (c *HTTPClient) UserClaims(ctx context.Context, userID int64) ([]models.Claim, error) {
	var ws []claimWire
	if err := c.doJSON(ctx, request{method: http.MethodGet, path: idPath("/api/customer/claims/user/%d", userID), auth: true}, &ws); err != nil {
		return nil, err
	}
	return claims(ws), nil
}

func (c *HTTPClient) DeleteClaim(ctx context.Context, id int64) error {
	_, err := c.do(ctx, request{method: http.MethodDelete, path: idPath("/api/customer/claims/%d", id), auth: true})
	return err
}
