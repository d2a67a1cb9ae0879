package workflow

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

var epoch = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

// freezeClock pins clock to at for the duration of the test and returns a
// func that moves it forward.
func freezeClock(t *testing.T, at time.Time) func(d time.Duration) {
	t.Helper()
	old := clock
	now := at
	clock = func() time.Time { return now }
	t.Cleanup(func() { clock = old })
	return func(d time.Duration) { now = now.Add(d) }
}

// ---- session ----

type fakeSession struct {
	id       *models.Identity
	SetErr   error
	SetCalls int
	Cleared  int
}

func sessionAs(role models.Role, id int64) *fakeSession {
	return &fakeSession{id: &models.Identity{
		User:  models.User{ID: id, Name: "Test", Email: "test@example.com", Role: role, IsActive: true},
		Token: "tok",
	}}
}

func (s *fakeSession) Current() *models.Identity { return s.id.Clone() }

func (s *fakeSession) Set(_ context.Context, id models.Identity) error {
	s.SetCalls++
	if s.SetErr != nil {
		return s.SetErr
	}
	s.id = &id
	return nil
}

func (s *fakeSession) Clear(context.Context) error {
	s.Cleared++
	s.id = nil
	return nil
}

// ---- auth ----

type fakeAuth struct {
	LoginRet  models.Identity
	LoginErr  error
	LastRole  models.Role
	LastEmail string

	RegisterRet  string
	RegisterErr  error
	LastRegister client.Registration
	Registered   int

	ForgotRet string
	ForgotErr error

	ChangeRet   string
	ChangeErr   error
	LastChanged [3]string

	ProfileRet models.User
	ProfileErr error
}

func (f *fakeAuth) Register(_ context.Context, r client.Registration) (string, error) {
	f.Registered++
	f.LastRegister = r
	return f.RegisterRet, f.RegisterErr
}

func (f *fakeAuth) Login(_ context.Context, role models.Role, email, _ string) (models.Identity, error) {
	f.LastRole, f.LastEmail = role, email
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuth) ForgotPassword(context.Context, string, string, string) (string, error) {
	return f.ForgotRet, f.ForgotErr
}

func (f *fakeAuth) ChangePassword(_ context.Context, email, oldPassword, newPassword string) (string, error) {
	f.LastChanged = [3]string{email, oldPassword, newPassword}
	return f.ChangeRet, f.ChangeErr
}

func (f *fakeAuth) Profile(context.Context, models.Role) (models.User, error) {
	return f.ProfileRet, f.ProfileErr
}

// ---- users ----

type fakeUsers struct {
	fakeAuth

	Admins       []models.User
	Customers    []models.User
	All          []models.User
	AdminsErr    error
	CustomersErr error

	Activated   []int64
	Deactivated []int64
	ActivateErr error

	Found    models.User
	FindErr  error
	LastFind string

	PendingCalls int
}

func (f *fakeUsers) PendingAdmins(context.Context) ([]models.User, error) {
	return f.Admins, f.AdminsErr
}

func (f *fakeUsers) PendingCustomers(context.Context) ([]models.User, error) {
	f.PendingCalls++
	return f.Customers, f.CustomersErr
}

func (f *fakeUsers) AllUsers(context.Context) ([]models.User, error) { return f.All, nil }

func (f *fakeUsers) activate(id int64) (string, error) {
	if f.ActivateErr != nil {
		return "", f.ActivateErr
	}
	f.Activated = append(f.Activated, id)
	var kept []models.User
	for _, u := range f.Customers {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	f.Customers = kept
	return "User activated successfully", nil
}

func (f *fakeUsers) ActivateAdmin(_ context.Context, id int64) (string, error) {
	return f.activate(id)
}

func (f *fakeUsers) ActivateCustomer(_ context.Context, id int64) (string, error) {
	return f.activate(id)
}

func (f *fakeUsers) DeactivateUser(_ context.Context, id int64) (string, error) {
	f.Deactivated = append(f.Deactivated, id)
	return "User deactivated", nil
}

func (f *fakeUsers) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	f.LastFind = "email:" + email
	return f.Found, f.FindErr
}

func (f *fakeUsers) FindUserByID(_ context.Context, id int64) (models.User, error) {
	f.LastFind = fmt.Sprintf("id:%d", id)
	return f.Found, f.FindErr
}

// ---- product gateway ----

type fakeGateway[T any] struct {
	kind models.ProductKind

	Quote    models.Quote
	CalcErr  error
	LastCalc T

	AddRet  T
	AddErr  error
	Adds    int
	LastAdd T

	UpdateErr error
	Updates   []int64
	LastIn    T

	ConfirmErr  error
	Confirmed   []int64
	LastRequest models.PurchaseRequest

	CancelErr error
	Cancelled []int64
}

func (g *fakeGateway[T]) Kind() models.ProductKind { return g.kind }

func (g *fakeGateway[T]) Calculate(_ context.Context, in T) (models.Quote, error) {
	g.LastCalc = in
	return g.Quote, g.CalcErr
}

func (g *fakeGateway[T]) Add(_ context.Context, in T) (T, error) {
	g.Adds++
	g.LastAdd = in
	return g.AddRet, g.AddErr
}

func (g *fakeGateway[T]) Update(_ context.Context, id int64, in T) (T, error) {
	g.Updates = append(g.Updates, id)
	g.LastIn = in
	if g.UpdateErr != nil {
		var zero T
		return zero, g.UpdateErr
	}
	return g.AddRet, nil
}

func (g *fakeGateway[T]) Confirm(_ context.Context, id int64, r models.PurchaseRequest) (T, error) {
	g.Confirmed = append(g.Confirmed, id)
	g.LastRequest = r
	return g.AddRet, g.ConfirmErr
}

func (g *fakeGateway[T]) CancelPending(_ context.Context, id int64) error {
	g.Cancelled = append(g.Cancelled, id)
	return g.CancelErr
}

// ---- policies ----

type fakePolicies struct {
	List        []models.Policy
	ListErr     error
	LastFilter  client.PolicyFilter
	Created     models.Policy
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	Deleted     []int64
	LastUpdated models.Policy
}

func (f *fakePolicies) Policies(_ context.Context, q client.PolicyFilter) ([]models.Policy, error) {
	f.LastFilter = q
	return f.List, f.ListErr
}

func (f *fakePolicies) AvailablePolicies(_ context.Context, q client.PolicyFilter) ([]models.Policy, error) {
	f.LastFilter = q
	return f.List, f.ListErr
}

func (f *fakePolicies) CreatePolicy(_ context.Context, p models.Policy) (models.Policy, error) {
	if f.CreateErr != nil {
		return models.Policy{}, f.CreateErr
	}
	p.ID = f.Created.ID
	return p, nil
}

func (f *fakePolicies) UpdatePolicy(_ context.Context, _ int64, p models.Policy) (models.Policy, error) {
	f.LastUpdated = p
	return p, f.UpdateErr
}

func (f *fakePolicies) DeletePolicy(_ context.Context, id int64) error {
	f.Deleted = append(f.Deleted, id)
	return f.DeleteErr
}

// ---- purchases and claims ----

type fakePurchases struct {
	List           []models.Purchase
	ListErr        error
	LastActiveOnly *bool
	LastUserID     int64

	CancelErr error
	Cancelled []int64

	UpdateErr  error
	LastDates  [2]time.Time
	LastUpdate int64
}

func (f *fakePurchases) Purchases(_ context.Context, userID int64, activeOnly *bool) ([]models.Purchase, error) {
	f.LastUserID, f.LastActiveOnly = userID, activeOnly
	return f.List, f.ListErr
}

func (f *fakePurchases) UpdatePurchaseDates(_ context.Context, id, _ int64, purchaseDate, expiryDate time.Time) (models.Purchase, error) {
	f.LastUpdate = id
	f.LastDates = [2]time.Time{purchaseDate, expiryDate}
	return models.Purchase{ID: id, PurchaseDate: purchaseDate, ExpiryDate: expiryDate}, f.UpdateErr
}

func (f *fakePurchases) CancelPurchase(_ context.Context, id int64) error {
	f.Cancelled = append(f.Cancelled, id)
	return f.CancelErr
}

type fakeClaims struct {
	fakePurchases

	All          []models.Claim
	AllErr       error
	StatusErr    error
	StatusUpdate map[int64]models.ClaimStatus

	Mine       []models.Claim
	MineErr    error
	MineCalls  int
	SubmitErr  error
	Submitted  []int64
	LastStatus models.ClaimStatus
	DeleteErr  error
	Deleted    []int64
}

func (f *fakeClaims) Claims(context.Context) ([]models.Claim, error) { return f.All, f.AllErr }

func (f *fakeClaims) UpdateClaimStatus(_ context.Context, id int64, status models.ClaimStatus) error {
	if f.StatusErr != nil {
		return f.StatusErr
	}
	if f.StatusUpdate == nil {
		f.StatusUpdate = map[int64]models.ClaimStatus{}
	}
	f.StatusUpdate[id] = status
	return nil
}

func (f *fakeClaims) SubmitClaim(_ context.Context, _ int64, purchaseID int64, status models.ClaimStatus) (models.Claim, error) {
	if f.SubmitErr != nil {
		return models.Claim{}, f.SubmitErr
	}
	f.Submitted = append(f.Submitted, purchaseID)
	f.LastStatus = status
	c := models.Claim{ID: int64(100 + len(f.Submitted)), PurchaseID: purchaseID, Status: status}
	f.Mine = append(f.Mine, c)
	return c, nil
}

func (f *fakeClaims) UserClaims(context.Context, int64) ([]models.Claim, error) {
	f.MineCalls++
	return append([]models.Claim(nil), f.Mine...), f.MineErr
}

func (f *fakeClaims) DeleteClaim(_ context.Context, id int64) error {
	f.Deleted = append(f.Deleted, id)
	return f.DeleteErr
}

// ---- notifications ----

type fakeNotifications struct {
	List    []models.Notification
	ListErr error
	Marked  []int64
	MarkErr error
}

func (f *fakeNotifications) Notifications(context.Context, int64) ([]models.Notification, error) {
	return f.List, f.ListErr
}

func (f *fakeNotifications) MarkNotificationRead(_ context.Context, id int64) error {
	f.Marked = append(f.Marked, id)
	return f.MarkErr
}

// ---- instances ----

type fakeInstances[T any] struct {
	kind      models.ProductKind
	Items     []T
	ListErr   error
	Deleted   []int64
	Cancelled []int64
}

func (f *fakeInstances[T]) Kind() models.ProductKind { return f.kind }

func (f *fakeInstances[T]) List(context.Context) ([]T, error) { return f.Items, f.ListErr }

func (f *fakeInstances[T]) Delete(_ context.Context, id int64) error {
	f.Deleted = append(f.Deleted, id)
	return nil
}

func (f *fakeInstances[T]) CancelConfirmed(_ context.Context, id int64) error {
	f.Cancelled = append(f.Cancelled, id)
	return nil
}

func apiError(status int, msg string) error {
	return &client.APIError{Status: status, Message: msg}
}

// ---- documents ----

type fakeDocuments struct {
	ByClaim   map[int64][]models.Document
	ByUser    []models.Document
	ListErr   error
	UserCalls int

	Uploaded  []client.DocumentUpload
	UploadErr error

	Replaced   map[int64]string
	ReplaceErr error

	Deleted   []int64
	DeleteErr error

	Verified  []int64
	VerifyErr error

	Stored      map[int64]models.Document
	Files       map[string][]byte
	Downloaded  []string
	DownloadErr error
}

func (f *fakeDocuments) UploadDocument(_ context.Context, u client.DocumentUpload) (models.Document, error) {
	if f.UploadErr != nil {
		return models.Document{}, f.UploadErr
	}
	f.Uploaded = append(f.Uploaded, u)
	return models.Document{
		ID:      int64(40 + len(f.Uploaded)),
		UserID:  u.UserID,
		ClaimID: u.ClaimID,
		Type:    u.Type,
		FileURL: "/uploads/1718000000000_" + u.FileName,
	}, nil
}

func (f *fakeDocuments) ReplaceDocument(_ context.Context, id int64, fileName string, _ []byte) (models.Document, error) {
	if f.ReplaceErr != nil {
		return models.Document{}, f.ReplaceErr
	}
	if f.Replaced == nil {
		f.Replaced = map[int64]string{}
	}
	f.Replaced[id] = fileName
	return models.Document{ID: id, FileURL: "/uploads/1718000000001_" + fileName}, nil
}

func (f *fakeDocuments) ClaimDocuments(_ context.Context, claimID int64) ([]models.Document, error) {
	return append([]models.Document(nil), f.ByClaim[claimID]...), f.ListErr
}

func (f *fakeDocuments) UserDocuments(context.Context, int64) ([]models.Document, error) {
	f.UserCalls++
	return append([]models.Document(nil), f.ByUser...), f.ListErr
}

func (f *fakeDocuments) Document(_ context.Context, id int64) (models.Document, error) {
	d, ok := f.Stored[id]
	if !ok {
		return models.Document{}, apiError(http.StatusNotFound, "Document not found")
	}
	return d, nil
}

func (f *fakeDocuments) DeleteDocument(_ context.Context, id int64) error {
	f.Deleted = append(f.Deleted, id)
	return f.DeleteErr
}

func (f *fakeDocuments) VerifyDocument(_ context.Context, id int64) (models.Document, error) {
	if f.VerifyErr != nil {
		return models.Document{}, f.VerifyErr
	}
	f.Verified = append(f.Verified, id)
	return models.Document{ID: id, Verified: true}, nil
}

func (f *fakeDocuments) DownloadDocument(_ context.Context, name string) ([]byte, error) {
	f.Downloaded = append(f.Downloaded, name)
	if f.DownloadErr != nil {
		return nil, f.DownloadErr
	}
	return f.Files[name], nil
}
