package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const claimTTL = 3 * time.Second

var ErrNoPurchaseSelected = errors.New("no purchase selected")

// ClaimDesk is the admin claim review screen. Decisions patch only the
// matching local record.
type ClaimDesk struct {
	screen
	api    ClaimAPI
	claims []models.Claim
	status string
}

func NewClaimDesk(api ClaimAPI) *ClaimDesk {
	return &ClaimDesk{api: api}
}

func (d *ClaimDesk) Claims() []models.Claim { return d.claims }
func (d *ClaimDesk) Status() string         { return d.status }

// SetStatus sets the filter; "" or ALL shows everything.
func (d *ClaimDesk) SetStatus(s string) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, filterAll) {
		s = ""
	}
	d.status = s
}

// Filtered returns the claims whose status matches the filter ignoring
// case, in their original order.
func (d *ClaimDesk) Filtered() []models.Claim {
	if d.status == "" {
		return d.claims
	}
	out := make([]models.Claim, 0, len(d.claims))
	for _, c := range d.claims {
		if c.Status.Is(d.status) {
			out = append(out, c)
		}
	}
	return out
}

func (d *ClaimDesk) Load(ctx context.Context) error {
	d.loading = true
	cs, err := d.api.Claims(ctx)
	d.loading = false
	if err != nil {
		return d.failWith(err, "Failed to load claims.")
	}
	d.claims = cs
	return nil
}

func (d *ClaimDesk) Approve(ctx context.Context, id int64) error {
	return d.decide(ctx, id, models.ClaimApproved)
}

func (d *ClaimDesk) Reject(ctx context.Context, id int64) error {
	return d.decide(ctx, id, models.ClaimRejected)
}

func (d *ClaimDesk) decide(ctx context.Context, id int64, status models.ClaimStatus) error {
	d.loading = true
	err := d.api.UpdateClaimStatus(ctx, id, status)
	d.loading = false
	if err != nil {
		d.failFor(describe(err, "Failed to update claim status."), claimTTL)
		return err
	}
	for i := range d.claims {
		if d.claims[i].ID == id {
			d.claims[i].Status = status
		}
	}
	d.succeed(fmt.Sprintf("Claim %s successfully.", strings.ToLower(string(status))), claimTTL)
	return nil
}

// CustomerClaims is the customer claim screen: own claims plus the
// purchases a new claim can be filed against.
type CustomerClaims struct {
	screen
	api       ClaimAPI
	session   Session
	claims    []models.Claim
	purchases []models.Purchase
}

func NewCustomerClaims(api ClaimAPI, s Session) *CustomerClaims {
	return &CustomerClaims{api: api, session: s}
}

func (c *CustomerClaims) Claims() []models.Claim       { return c.claims }
func (c *CustomerClaims) Purchases() []models.Purchase { return c.purchases }

// Claimable returns the purchases with status CONFIRMED or ACTIVE.
func (c *CustomerClaims) Claimable() []models.Purchase {
	out := make([]models.Purchase, 0, len(c.purchases))
	for _, p := range c.purchases {
		if p.Claimable() {
			out = append(out, p)
		}
	}
	return out
}

// Load fetches claims and purchases concurrently.
func (c *CustomerClaims) Load(ctx context.Context) error {
	user, err := currentUser(c.session)
	if err != nil {
		return c.failWith(err, msgNotAuthenticated)
	}

	c.loading = true
	defer func() { c.loading = false }()

	var (
		g         errgroup.Group
		claims    []models.Claim
		purchases []models.Purchase
		claimsErr error
	)
	g.Go(func() error {
		claims, claimsErr = c.api.UserClaims(ctx, user.ID)
		return claimsErr
	})
	g.Go(func() error {
		var err error
		purchases, err = c.api.Purchases(ctx, user.ID, nil)
		return err
	})
	err = g.Wait()

	if claims != nil {
		c.claims = claims
	}
	if purchases != nil {
		c.purchases = purchases
	}
	switch {
	case claimsErr != nil:
		return c.failWith(claimsErr, "Failed to load claims.")
	case err != nil:
		return c.failWith(err, "Failed to load purchases.")
	}
	return nil
}

func (c *CustomerClaims) loadClaims(ctx context.Context, userID int64) error {
	cs, err := c.api.UserClaims(ctx, userID)
	if err != nil {
		return c.failWith(err, "Failed to load claims.")
	}
	c.claims = cs
	return nil
}

// Submit files a PENDING claim against purchaseID and reloads the claims.
func (c *CustomerClaims) Submit(ctx context.Context, purchaseID int64) error {
	user, err := currentUser(c.session)
	if err != nil {
		return c.failWith(err, msgNotAuthenticated)
	}
	if purchaseID <= 0 {
		var v checker
		v.add("purchaseId", "is required")
		c.failFor(v.err().Error(), claimTTL)
		return ErrNoPurchaseSelected
	}

	c.loading = true
	_, err = c.api.SubmitClaim(ctx, user.ID, purchaseID, models.ClaimPending)
	c.loading = false
	if err != nil {
		c.failFor(describe(err, "Failed to submit claim."), claimTTL)
		return err
	}
	c.succeed("Claim submitted successfully.", claimTTL)
	return c.loadClaims(ctx, user.ID)
}

// Withdraw deletes a claim. Decided claims are not guarded here; the server
// has the final word.
func (c *CustomerClaims) Withdraw(ctx context.Context, id int64) error {
	c.loading = true
	err := c.api.DeleteClaim(ctx, id)
	c.loading = false
	if err != nil {
		c.failFor(describe(err, "Failed to withdraw claim."), claimTTL)
		return err
	}

	kept := make([]models.Claim, 0, len(c.claims))
	for _, cl := range c.claims {
		if cl.ID != id {
			kept = append(kept, cl)
		}
	}
	c.claims = kept
	c.succeed("Claim withdrawn successfully.", claimTTL)
	return nil
}
