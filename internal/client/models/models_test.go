package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{
		"admin":         RoleAdmin,
		"CUSTOMER":      RoleCustomer,
		" ROLE_ADMIN ":  RoleAdmin,
		"role_customer": RoleCustomer,
	} {
		got, err := ParseRole(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseRole("broker")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestIdentity_RoleChecks(t *testing.T) {
	var none *Identity
	assert.False(t, none.IsAdmin())
	assert.False(t, none.IsCustomer())
	assert.Nil(t, none.Clone())

	id := &Identity{User: User{ID: 1, Role: RoleAdmin}, Token: "t"}
	assert.True(t, id.IsAdmin())
	assert.False(t, id.IsCustomer())

	c := id.Clone()
	c.Name = "changed"
	assert.Empty(t, id.Name)
}

func TestUser_StatusText(t *testing.T) {
	assert.Equal(t, "Active", User{IsActive: true}.StatusText())
	assert.Equal(t, "Inactive", User{}.StatusText())
}

func TestParseProductKind(t *testing.T) {
	k, err := ParseProductKind(" Bike ")
	require.NoError(t, err)
	assert.Equal(t, KindBike, k)
	assert.True(t, k.IsVehicle())
	assert.False(t, KindLife.IsVehicle())

	_, err = ParseProductKind("travel")
	assert.Error(t, err)
}

func TestPurchase_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 1, 0)
	past := now.AddDate(0, -1, 0)

	tests := []struct {
		name      string
		p         Purchase
		want      PurchaseStatus
		canRenew  bool
		claimable bool
	}{
		{"cancelled wins", Purchase{Status: PurchaseCancelled, ExpiryDate: future}, PurchaseCancelled, false, false},
		{"active before expiry", Purchase{Status: PurchaseActive, ExpiryDate: future}, PurchaseActive, true, true},
		{"confirmed before expiry", Purchase{Status: PurchaseConfirmed, ExpiryDate: future}, PurchaseActive, true, true},
		{"expired", Purchase{Status: PurchaseActive, ExpiryDate: past}, PurchaseExpired, false, true},
		{"pending", Purchase{Status: PurchasePending, ExpiryDate: future}, PurchaseActive, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.EffectiveStatus(now))
			assert.Equal(t, tt.canRenew, tt.p.CanRenew(now))
			assert.Equal(t, tt.canRenew, tt.p.CanCancel(now))
			assert.Equal(t, tt.claimable, tt.p.Claimable())
		})
	}
}

func TestOneYearFrom(t *testing.T) {
	start, end := OneYearFrom(time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, "2024-02-29", start.Format("2006-01-02"))
	assert.Equal(t, "2025-03-01", end.Format("2006-01-02"))
}

func TestClaimStatus_Is(t *testing.T) {
	assert.True(t, ClaimApproved.Is("approved"))
	assert.False(t, ClaimApproved.Is("APPROVE"))
}

func TestQuote_Apply(t *testing.T) {
	v := &Vehicle{CC: 150}
	Quote{IDV: 50000, ThirdPartyPremium: 700, ComprehensivePremium: 1900}.Apply(v)
	assert.Equal(t, 50000.0, v.IDV)
	assert.Equal(t, 700.0, v.ThirdPartyPremium)
	assert.Equal(t, 1900.0, v.ComprehensivePremium)
}

func TestProductKind_Labels(t *testing.T) {
	assert.Equal(t, "Bike details", KindBike.Label())
	assert.Equal(t, "car", KindCar.Noun())
	assert.Equal(t, "Life insurance", KindLife.Label())
	assert.Equal(t, "health insurance", KindHealth.Noun())
}

func TestDocument_FileName(t *testing.T) {
	assert.Equal(t, "1718000000000_invoice.pdf", Document{FileURL: "/uploads/1718000000000_invoice.pdf"}.FileName())
	assert.Equal(t, "bare.pdf", Document{FileURL: "bare.pdf"}.FileName())
	assert.Empty(t, Document{}.FileName())
}
