package client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlag(t *testing.T) {
	tests := []struct {
		raw    string
		want   bool
		wantOK bool
	}{
		{"", false, false},
		{"null", false, false},
		{"true", true, true},
		{"false", false, true},
		{`"true"`, true, true},
		{`"FALSE"`, false, true},
		{`"1"`, true, true},
		{`"0"`, false, true},
		{`"yes"`, false, false},
		{"1", true, true},
		{"0", false, true},
		{"{}", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := flag(json.RawMessage(tt.raw))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestUserWire_ActiveVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"isActive bool", `{"isActive":true}`, true},
		{"isActive string", `{"isActive":"true"}`, true},
		{"active string false", `{"active":"false"}`, false},
		{"active bool", `{"active":true}`, true},
		{"absent", `{}`, false},
		{"isActive wins", `{"isActive":false,"active":true}`, false},
		{"null isActive is inactive", `{"isActive":null,"active":"true"}`, false},
		{"unknown isActive is inactive", `{"isActive":"yes","active":true}`, false},
		{"absent isActive falls back", `{"name":"x","active":"TRUE"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w userWire
			require.NoError(t, json.Unmarshal([]byte(tt.body), &w))
			assert.Equal(t, tt.want, w.model().IsActive)
		})
	}
}

func TestUserWire_Role(t *testing.T) {
	var w userWire
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Asha","email":"a@x.io","role":"ROLE_admin","panNumber":"ABCDE1234F"}`), &w))

	want := models.User{ID: 3, Name: "Asha", Email: "a@x.io", Role: models.RoleAdmin, PANNumber: "ABCDE1234F"}
	if diff := cmp.Diff(want, w.model()); diff != "" {
		t.Errorf("user mismatch (-want +got):\n%s", diff)
	}
}

func TestWireTime(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"iso date", `"2025-03-04"`, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"local datetime", `"2025-03-04T10:11:12"`, time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC)},
		{"rfc3339", `"2025-03-04T10:11:12Z"`, time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC)},
		{"array date", `[2025,3,4]`, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"array datetime", `[2025,3,4,10,11,12]`, time.Date(2025, 3, 4, 10, 11, 12, 0, time.UTC)},
		{"null", `null`, time.Time{}},
		{"empty", `""`, time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var wt wireTime
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &wt))
			assert.True(t, tt.want.Equal(wt.Time), "want %v got %v", tt.want, wt.Time)
		})
	}

	var wt wireTime
	assert.Error(t, json.Unmarshal([]byte(`"04/03/2025"`), &wt))
}

func TestPurchaseWire_Nesting(t *testing.T) {
	body := `[
		{"purchaseId":1,"purchaseDate":"2025-01-01","expiryDate":"2026-01-01","status":"active","user":{"id":9},"bikePolicy":{"vehicle_id":11}},
		{"purchaseId":2,"status":"CANCELLED","userId":9,"carPolicy":{"id":12}},
		{"purchaseId":3,"status":"ACTIVE","healthPolicy":{"id":13}},
		{"purchaseId":4,"status":"ACTIVE","lifePolicy":{"id":14}}
	]`
	var ws []purchaseWire
	require.NoError(t, json.Unmarshal([]byte(body), &ws))
	got := purchases(ws)

	want := []models.Purchase{
		{ID: 1, PurchaseDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), ExpiryDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			Status: models.PurchaseActive, Kind: models.KindBike, InstanceID: 11, UserID: 9},
		{ID: 2, Status: models.PurchaseCancelled, Kind: models.KindCar, InstanceID: 12, UserID: 9},
		{ID: 3, Status: models.PurchaseActive, Kind: models.KindHealth, InstanceID: 13},
		{ID: 4, Status: models.PurchaseActive, Kind: models.KindLife, InstanceID: 14},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("purchases mismatch (-want +got):\n%s", diff)
	}
}

func TestPurchaseRequestBody(t *testing.T) {
	start := time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC)
	b, err := json.Marshal(purchaseRequestBody(models.PurchaseRequest{
		UserID: 7, Kind: models.KindHealth, InstanceID: 42, PurchaseDate: start, ExpiryDate: start.AddDate(1, 0, 0),
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":7,"healthPolicyId":42,"purchaseDate":"2025-05-06","expiryDate":"2026-05-06"}`, string(b))

	b, err = json.Marshal(purchaseRequestBody(models.PurchaseRequest{UserID: 7, Kind: models.KindBike}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"userId":7}`, string(b))
}

func TestClaimWire_IDVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.Claim
	}{
		{
			name: "response dto",
			body: `{"claimId":5,"userId":2,"purchaseId":8,"claimStatus":"pending","userName":"Ravi","userEmail":"r@x.io"}`,
			want: models.Claim{ID: 5, UserID: 2, PurchaseID: 8, Status: models.ClaimPending, UserName: "Ravi", UserEmail: "r@x.io"},
		},
		{
			name: "entity with nested refs",
			body: `{"id":6,"claimStatus":"APPROVED","user":{"id":3,"name":"Mina","email":"m@x.io"},"purchase":{"purchaseId":9}}`,
			want: models.Claim{ID: 6, UserID: 3, PurchaseID: 9, Status: models.ClaimApproved, UserName: "Mina", UserEmail: "m@x.io"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var w claimWire
			require.NoError(t, json.Unmarshal([]byte(tt.body), &w))
			if diff := cmp.Diff(tt.want, w.model()); diff != "" {
				t.Errorf("claim mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNotificationWire(t *testing.T) {
	var w notificationWire
	require.NoError(t, json.Unmarshal([]byte(`{"notificationId":4,"user":{"id":2},"claim":{"claimId":6},"message":"Claim approved","read":true,"createdAt":"2025-02-03T04:05:06"}`), &w))

	want := models.Notification{
		ID: 4, UserID: 2, ClaimID: 6, Message: "Claim approved", Read: true,
		CreatedAt: time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	if diff := cmp.Diff(want, w.model()); diff != "" {
		t.Errorf("notification mismatch (-want +got):\n%s", diff)
	}
}

func TestPolicyWire(t *testing.T) {
	var w policyWire
	require.NoError(t, json.Unmarshal([]byte(`{"policy_id":1,"policyName":"Two Wheeler","type":"Bike","premium":1200.5,"tenure":12,"coverage":"Own damage","active":"true"}`), &w))

	want := models.Policy{ID: 1, Name: "Two Wheeler", Type: "Bike", Premium: 1200.5, Tenure: 12, Coverage: "Own damage", Active: true}
	if diff := cmp.Diff(want, w.model()); diff != "" {
		t.Errorf("policy mismatch (-want +got):\n%s", diff)
	}

	b, err := json.Marshal(policyBody(want))
	require.NoError(t, err)
	assert.JSONEq(t, `{"policyName":"Two Wheeler","type":"Bike","premium":1200.5,"tenure":12,"coverage":"Own damage","active":true}`, string(b))
}
