package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// Client is the full API surface screens depend on. *HTTPClient is the
// production implementation; tests substitute fakes.
type Client interface {
	Register(ctx context.Context, r Registration) (string, error)
	Login(ctx context.Context, role models.Role, email, password string) (models.Identity, error)
	ForgotPassword(ctx context.Context, email, panNumber, newPassword string) (string, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error)
	Profile(ctx context.Context, role models.Role) (models.User, error)

	PendingAdmins(ctx context.Context) ([]models.User, error)
	PendingCustomers(ctx context.Context) ([]models.User, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	ActivateAdmin(ctx context.Context, id int64) (string, error)
	ActivateCustomer(ctx context.Context, id int64) (string, error)
	DeactivateUser(ctx context.Context, id int64) (string, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)

	Policies(ctx context.Context, f PolicyFilter) ([]models.Policy, error)
	AvailablePolicies(ctx context.Context, f PolicyFilter) ([]models.Policy, error)
	CreatePolicy(ctx context.Context, p models.Policy) (models.Policy, error)
	UpdatePolicy(ctx context.Context, id int64, p models.Policy) (models.Policy, error)
	DeletePolicy(ctx context.Context, id int64) error

	Purchases(ctx context.Context, userID int64, activeOnly *bool) ([]models.Purchase, error)
	UpdatePurchaseDates(ctx context.Context, id, userID int64, purchaseDate, expiryDate time.Time) (models.Purchase, error)
	CancelPurchase(ctx context.Context, id int64) error

	Claims(ctx context.Context) ([]models.Claim, error)
	UpdateClaimStatus(ctx context.Context, id int64, status models.ClaimStatus) error
	SubmitClaim(ctx context.Context, userID, purchaseID int64, status models.ClaimStatus) (models.Claim, error)
	UserClaims(ctx context.Context, userID int64) ([]models.Claim, error)
	DeleteClaim(ctx context.Context, id int64) error

	UploadDocument(ctx context.Context, u DocumentUpload) (models.Document, error)
	ReplaceDocument(ctx context.Context, id int64, fileName string, content []byte) (models.Document, error)
	ClaimDocuments(ctx context.Context, claimID int64) ([]models.Document, error)
	UserDocuments(ctx context.Context, userID int64) ([]models.Document, error)
	Document(ctx context.Context, id int64) (models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	VerifyDocument(ctx context.Context, id int64) (models.Document, error)
	DownloadDocument(ctx context.Context, fileName string) ([]byte, error)

	Notifications(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error

	Bikes() *Product[models.Vehicle]
	Cars() *Product[models.Vehicle]
	Health() *Product[models.Health]
	Life() *Product[models.Life]
}

var _ Client = (*HTTPClient)(nil)
