package workflow

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimIDs(cs []models.Claim) []int64 {
	ids := make([]int64, 0, len(cs))
	for _, c := range cs {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestClaimDesk_FilterKeepsOrder(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeClaims{All: []models.Claim{
		{ID: 1, Status: "PENDING"},
		{ID: 2, Status: "approved"},
		{ID: 3, Status: "Pending"},
		{ID: 4, Status: "REJECTED"},
	}}
	d := NewClaimDesk(api)
	require.NoError(t, d.Load(context.Background()))

	assert.Equal(t, []int64{1, 2, 3, 4}, claimIDs(d.Filtered()))

	d.SetStatus("pending")
	assert.Equal(t, []int64{1, 3}, claimIDs(d.Filtered()))

	d.SetStatus("APPROVED")
	assert.Equal(t, []int64{2}, claimIDs(d.Filtered()))

	d.SetStatus("all")
	assert.Empty(t, d.Status())
	assert.Len(t, d.Filtered(), 4)
}

func TestClaimDesk_Decide(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()
	api := &fakeClaims{All: []models.Claim{{ID: 1, Status: models.ClaimPending}, {ID: 2, Status: models.ClaimPending}}}
	d := NewClaimDesk(api)
	require.NoError(t, d.Load(ctx))

	require.NoError(t, d.Approve(ctx, 2))
	assert.Equal(t, models.ClaimApproved, api.StatusUpdate[2])
	assert.Equal(t, models.ClaimPending, d.Claims()[0].Status)
	assert.Equal(t, models.ClaimApproved, d.Claims()[1].Status)
	assert.Equal(t, "Claim approved successfully.", d.Flash().Text)

	require.NoError(t, d.Reject(ctx, 1))
	assert.Equal(t, models.ClaimRejected, d.Claims()[0].Status)
	assert.Equal(t, "Claim rejected successfully.", d.Flash().Text)

	api.StatusErr = errors.New("down")
	require.Error(t, d.Approve(ctx, 1))
	assert.Equal(t, models.ClaimRejected, d.Claims()[0].Status)
	assert.Equal(t, "Failed to update claim status.", d.Flash().Text)
}

func TestCustomerClaims_Load(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeClaims{Mine: []models.Claim{{ID: 5, PurchaseID: 1}}}
	api.List = []models.Purchase{
		{ID: 1, Status: models.PurchaseConfirmed},
		{ID: 2, Status: models.PurchaseCancelled},
		{ID: 3, Status: models.PurchaseActive},
		{ID: 4, Status: models.PurchasePending},
	}
	c := NewCustomerClaims(api, sessionAs(models.RoleCustomer, 3))

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []int64{5}, claimIDs(c.Claims()))
	assert.Len(t, c.Purchases(), 4)
	assert.Nil(t, api.LastActiveOnly)

	var ids []int64
	for _, p := range c.Claimable() {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestCustomerClaims_LoadPartialFailure(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeClaims{MineErr: apiError(http.StatusInternalServerError, "")}
	api.List = []models.Purchase{{ID: 1, Status: models.PurchaseConfirmed}}
	c := NewCustomerClaims(api, sessionAs(models.RoleCustomer, 3))

	require.Error(t, c.Load(context.Background()))
	assert.Len(t, c.Purchases(), 1)
	assert.Equal(t, "Failed to load claims.", c.Flash().Text)
}

func TestCustomerClaims_SubmitAndWithdraw(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()
	api := &fakeClaims{}
	c := NewCustomerClaims(api, sessionAs(models.RoleCustomer, 3))

	require.ErrorIs(t, c.Submit(ctx, 0), ErrNoPurchaseSelected)
	assert.Equal(t, "purchaseId: is required", c.Flash().Text)
	assert.Empty(t, api.Submitted)

	require.NoError(t, c.Submit(ctx, 1))
	assert.Equal(t, []int64{1}, api.Submitted)
	assert.Equal(t, models.ClaimPending, api.LastStatus)
	assert.Equal(t, 1, api.MineCalls, "claims are reloaded after a submit")
	assert.Equal(t, []int64{101}, claimIDs(c.Claims()))
	assert.Equal(t, "Claim submitted successfully.", c.Flash().Text)

	require.NoError(t, c.Withdraw(ctx, 101))
	assert.Equal(t, []int64{101}, api.Deleted)
	assert.Empty(t, c.Claims())
	assert.Equal(t, "Claim withdrawn successfully.", c.Flash().Text)

	api.SubmitErr = apiError(http.StatusBadRequest, "Claim already exists for this purchase")
	require.Error(t, c.Submit(ctx, 1))
	assert.Equal(t, "Claim already exists for this purchase", c.Flash().Text)
}

func TestCustomerClaims_WithdrawLeavesEarlierSnapshot(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()
	api := &fakeClaims{Mine: []models.Claim{{ID: 1}, {ID: 2}, {ID: 3}}}
	c := NewCustomerClaims(api, sessionAs(models.RoleCustomer, 3))
	require.NoError(t, c.Load(ctx))

	before := c.Claims()
	require.NoError(t, c.Withdraw(ctx, 1))

	assert.Equal(t, []int64{2, 3}, claimIDs(c.Claims()))
	assert.Equal(t, []int64{1, 2, 3}, claimIDs(before))
}
