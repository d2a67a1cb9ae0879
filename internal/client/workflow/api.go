package workflow

import (
	"context"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// The interfaces below are the slices of client.Client each screen uses.

type AuthAPI interface {
	Register(ctx context.Context, r client.Registration) (string, error)
	Login(ctx context.Context, role models.Role, email, password string) (models.Identity, error)
	ForgotPassword(ctx context.Context, email, panNumber, newPassword string) (string, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) (string, error)
	Profile(ctx context.Context, role models.Role) (models.User, error)
}

type UserAPI interface {
	Profile(ctx context.Context, role models.Role) (models.User, error)
	PendingAdmins(ctx context.Context) ([]models.User, error)
	PendingCustomers(ctx context.Context) ([]models.User, error)
	AllUsers(ctx context.Context) ([]models.User, error)
	ActivateAdmin(ctx context.Context, id int64) (string, error)
	ActivateCustomer(ctx context.Context, id int64) (string, error)
	DeactivateUser(ctx context.Context, id int64) (string, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
}

type PolicyAPI interface {
	Policies(ctx context.Context, f client.PolicyFilter) ([]models.Policy, error)
	AvailablePolicies(ctx context.Context, f client.PolicyFilter) ([]models.Policy, error)
	CreatePolicy(ctx context.Context, p models.Policy) (models.Policy, error)
	UpdatePolicy(ctx context.Context, id int64, p models.Policy) (models.Policy, error)
	DeletePolicy(ctx context.Context, id int64) error
}

type PurchaseAPI interface {
	Purchases(ctx context.Context, userID int64, activeOnly *bool) ([]models.Purchase, error)
	UpdatePurchaseDates(ctx context.Context, id, userID int64, purchaseDate, expiryDate time.Time) (models.Purchase, error)
	CancelPurchase(ctx context.Context, id int64) error
}

type ClaimAPI interface {
	Claims(ctx context.Context) ([]models.Claim, error)
	UpdateClaimStatus(ctx context.Context, id int64, status models.ClaimStatus) error
	SubmitClaim(ctx context.Context, userID, purchaseID int64, status models.ClaimStatus) (models.Claim, error)
	UserClaims(ctx context.Context, userID int64) ([]models.Claim, error)
	DeleteClaim(ctx context.Context, id int64) error
	Purchases(ctx context.Context, userID int64, activeOnly *bool) ([]models.Purchase, error)
}

type DocumentAPI interface {
	UploadDocument(ctx context.Context, u client.DocumentUpload) (models.Document, error)
	ReplaceDocument(ctx context.Context, id int64, fileName string, content []byte) (models.Document, error)
	ClaimDocuments(ctx context.Context, claimID int64) ([]models.Document, error)
	UserDocuments(ctx context.Context, userID int64) ([]models.Document, error)
	Document(ctx context.Context, id int64) (models.Document, error)
	DeleteDocument(ctx context.Context, id int64) error
	VerifyDocument(ctx context.Context, id int64) (models.Document, error)
	DownloadDocument(ctx context.Context, fileName string) ([]byte, error)
}

type NotificationAPI interface {
	Notifications(ctx context.Context, userID int64) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id int64) error
}

// ProductGateway is the part of a product sub-client the purchase flow uses.
// *client.Product satisfies it.
type ProductGateway[T any] interface {
	Kind() models.ProductKind
	Calculate(ctx context.Context, in T) (models.Quote, error)
	Add(ctx context.Context, in T) (T, error)
	Update(ctx context.Context, id int64, in T) (T, error)
	Confirm(ctx context.Context, id int64, r models.PurchaseRequest) (T, error)
	CancelPending(ctx context.Context, id int64) error
}

// InstanceGateway lists and removes saved instances of one product family.
type InstanceGateway[T any] interface {
	Kind() models.ProductKind
	List(ctx context.Context) ([]T, error)
	Delete(ctx context.Context, id int64) error
	CancelConfirmed(ctx context.Context, id int64) error
}

var (
	_ AuthAPI                        = (client.Client)(nil)
	_ UserAPI                        = (client.Client)(nil)
	_ PolicyAPI                      = (client.Client)(nil)
	_ PurchaseAPI                    = (client.Client)(nil)
	_ ClaimAPI                       = (client.Client)(nil)
	_ DocumentAPI                    = (client.Client)(nil)
	_ NotificationAPI                = (client.Client)(nil)
	_ ProductGateway[models.Vehicle] = (*client.Product[models.Vehicle])(nil)
	_ InstanceGateway[models.Health] = (*client.Product[models.Health])(nil)
)
