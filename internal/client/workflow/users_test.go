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

func TestApproval_ActivateRefetches(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{
		Admins:    []models.User{},
		Customers: []models.User{{ID: 12, Name: "C", Role: models.RoleCustomer}},
	}
	a := NewApproval(api)
	ctx := context.Background()

	require.NoError(t, a.Load(ctx))
	require.Len(t, a.PendingCustomers(), 1)
	assert.Empty(t, a.PendingAdmins())

	require.NoError(t, a.Activate(ctx, a.PendingCustomers()[0]))
	assert.Equal(t, []int64{12}, api.Activated)
	assert.Equal(t, 2, api.PendingCalls)
	assert.Empty(t, a.PendingCustomers())
	assert.Equal(t, "User activated successfully", a.Flash().Text)
}

func TestApproval_PartialFailureKeepsOtherList(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{
		AdminsErr: apiError(http.StatusInternalServerError, ""),
		Customers: []models.User{{ID: 1}, {ID: 2}},
	}
	a := NewApproval(api)

	err := a.Load(context.Background())
	require.Error(t, err)
	assert.Len(t, a.PendingCustomers(), 2)
	assert.Nil(t, a.PendingAdmins())
	assert.Equal(t, FlashError, a.Flash().Kind)
	assert.Equal(t, "Failed to load pending users", a.Flash().Text)
	assert.False(t, a.Loading())
}

func TestApproval_ActivateFailure(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{ActivateErr: apiError(http.StatusBadRequest, "already active")}
	a := NewApproval(api)

	err := a.Activate(context.Background(), models.User{ID: 4, Role: models.RoleAdmin})
	require.Error(t, err)
	assert.Equal(t, "Failed to activate admin: already active", a.Flash().Text)
	assert.Zero(t, api.PendingCalls, "no reload after a failed action")
}

func TestApproval_LoadProfile(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{}
	api.ProfileRet = models.User{ID: 1, Name: "Root", Role: models.RoleAdmin}
	a := NewApproval(api)

	require.NoError(t, a.LoadProfile(context.Background()))
	assert.Equal(t, "Root", a.Profile().Name)
}

func TestUserList_Filter(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{All: []models.User{
		{ID: 1, Role: models.RoleAdmin},
		{ID: 2, Role: models.RoleCustomer},
		{ID: 3, Role: models.RoleCustomer},
	}}
	l := NewUserList(api)
	require.NoError(t, l.Load(context.Background()))

	assert.Len(t, l.Filtered(), 3)

	l.SetRoleFilter("customer")
	assert.Equal(t, "CUSTOMER", l.RoleFilter())
	var ids []int64
	for _, u := range l.Filtered() {
		ids = append(ids, u.ID)
	}
	assert.Equal(t, []int64{2, 3}, ids)

	l.SetRoleFilter("")
	assert.Equal(t, "ALL", l.RoleFilter())
}

func TestUserList_DeactivateReloads(t *testing.T) {
	freezeClock(t, epoch)
	api := &fakeUsers{All: []models.User{{ID: 2, IsActive: true}}}
	l := NewUserList(api)

	require.NoError(t, l.Deactivate(context.Background(), models.User{ID: 2}))
	assert.Equal(t, []int64{2}, api.Deactivated)
	assert.Len(t, l.Filtered(), 1)
}

func TestDirectory_Find(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()

	tests := []struct {
		name     string
		by       string
		value    string
		findErr  error
		wantErr  bool
		wantFind string
		wantText string
	}{
		{"by email", "email", " a@b.co ", nil, false, "email:a@b.co", "User found successfully!"},
		{"by id", "id", "42", nil, false, "id:42", "User found successfully!"},
		{"bad id", "id", "x", nil, true, "", "searchValue: must be a positive number"},
		{"empty", "email", " ", nil, true, "", "searchValue: is required"},
		{"bad type", "name", "bob", nil, true, "", "searchType: must be email or id"},
		{"not found", "id", "9", apiError(http.StatusNotFound, ""), true, "id:9", "User not found. Please check your search criteria."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeUsers{Found: models.User{ID: 42, Email: "a@b.co"}, FindErr: tt.findErr}
			d := NewDirectory(api, sessionAs(models.RoleAdmin, 1))

			err := d.Find(ctx, tt.by, tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.Nil(t, d.Found())
			} else {
				require.NoError(t, err)
				require.NotNil(t, d.Found())
			}
			assert.Equal(t, tt.wantFind, api.LastFind)
			assert.Equal(t, tt.wantText, d.Flash().Text)
		})
	}
}

func TestDirectory_Guards(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()

	t.Run("nothing selected", func(t *testing.T) {
		d := NewDirectory(&fakeUsers{}, sessionAs(models.RoleAdmin, 1))
		assert.ErrorIs(t, d.Activate(ctx), ErrNoUserSelected)
		assert.ErrorIs(t, d.Deactivate(ctx), ErrNoUserSelected)
	})

	t.Run("already active", func(t *testing.T) {
		api := &fakeUsers{Found: models.User{ID: 5, Role: models.RoleCustomer, IsActive: true}}
		d := NewDirectory(api, sessionAs(models.RoleAdmin, 1))
		require.NoError(t, d.Find(ctx, "id", "5"))

		assert.ErrorIs(t, d.Activate(ctx), ErrAlreadyActive)
		assert.Equal(t, "This customer is already active!", d.Flash().Text)
		assert.Empty(t, api.Activated)
	})

	t.Run("already inactive", func(t *testing.T) {
		api := &fakeUsers{Found: models.User{ID: 5, Role: models.RoleAdmin}}
		d := NewDirectory(api, sessionAs(models.RoleAdmin, 1))
		require.NoError(t, d.Find(ctx, "id", "5"))

		assert.ErrorIs(t, d.Deactivate(ctx), ErrAlreadyInactive)
		assert.Equal(t, "This admin is already inactive!", d.Flash().Text)
		assert.Empty(t, api.Deactivated)
	})

	t.Run("self", func(t *testing.T) {
		api := &fakeUsers{Found: models.User{ID: 1, Role: models.RoleAdmin, IsActive: true}}
		d := NewDirectory(api, sessionAs(models.RoleAdmin, 1))
		require.NoError(t, d.Find(ctx, "id", "1"))

		assert.ErrorIs(t, d.Deactivate(ctx), ErrSelfAction)
		assert.Equal(t, "You cannot deactivate your own account!", d.Flash().Text)
		assert.Empty(t, api.Deactivated)
	})
}

func TestDirectory_ToggleRefreshes(t *testing.T) {
	freezeClock(t, epoch)
	ctx := context.Background()
	api := &fakeUsers{Found: models.User{ID: 5, Role: models.RoleCustomer}}
	d := NewDirectory(api, sessionAs(models.RoleAdmin, 1))
	require.NoError(t, d.Find(ctx, "id", "5"))

	api.Found.IsActive = true
	require.NoError(t, d.Activate(ctx))
	assert.Equal(t, []int64{5}, api.Activated)
	assert.True(t, d.Found().IsActive)

	api.Found.IsActive = false
	api.FindErr = errors.New("gone")
	require.NoError(t, d.Deactivate(ctx))
	assert.True(t, d.Found().IsActive, "failed refresh keeps the old copy")

	d.Clear()
	assert.Nil(t, d.Found())
	assert.Nil(t, d.Flash())
}
