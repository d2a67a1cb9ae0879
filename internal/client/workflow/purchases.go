package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const (
	purchaseTTL      = 2 * time.Second
	checkoutRedirect = 600 * time.Millisecond
)

// PurchaseFilter selects which purchases the server returns.
type PurchaseFilter string

const (
	PurchasesAll      PurchaseFilter = "all"
	PurchasesActive   PurchaseFilter = "active"
	PurchasesInactive PurchaseFilter = "inactive"
)

func ParsePurchaseFilter(s string) (PurchaseFilter, error) {
	switch f := PurchaseFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case PurchasesAll, PurchasesActive, PurchasesInactive:
		return f, nil
	case "":
		return PurchasesAll, nil
	}
	return "", fmt.Errorf("unknown purchase filter %q", s)
}

func (f PurchaseFilter) activeOnly() *bool {
	var v bool
	switch f {
	case PurchasesActive:
		v = true
	case PurchasesInactive:
		v = false
	default:
		return nil
	}
	return &v
}

// MyPurchases lists the customer's purchases. Cancel and renew patch the
// local list.
type MyPurchases struct {
	screen
	api       PurchaseAPI
	session   Session
	filter    PurchaseFilter
	purchases []models.Purchase
}

func NewMyPurchases(api PurchaseAPI, s Session) *MyPurchases {
	return &MyPurchases{api: api, session: s, filter: PurchasesAll}
}

func (m *MyPurchases) Purchases() []models.Purchase { return m.purchases }
func (m *MyPurchases) Filter() PurchaseFilter       { return m.filter }

// SetFilter changes the filter and reloads.
func (m *MyPurchases) SetFilter(ctx context.Context, f PurchaseFilter) error {
	m.filter = f
	return m.Load(ctx)
}

func (m *MyPurchases) Load(ctx context.Context) error {
	user, err := currentUser(m.session)
	if err != nil {
		return m.failWith(err, msgNotAuthenticated)
	}

	m.loading = true
	ps, err := m.api.Purchases(ctx, user.ID, m.filter.activeOnly())
	m.loading = false
	if err != nil {
		return m.failWith(err, "Failed to load purchases.")
	}
	m.purchases = ps
	return nil
}

func (m *MyPurchases) find(id int64) (int, bool) {
	for i, p := range m.purchases {
		if p.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (m *MyPurchases) Cancel(ctx context.Context, id int64) error {
	if err := m.api.CancelPurchase(ctx, id); err != nil {
		return m.failWith(err, "Failed to cancel purchase.")
	}
	if i, ok := m.find(id); ok {
		m.purchases[i].Status = models.PurchaseCancelled
	}
	m.succeed("Purchase cancelled successfully.", purchaseTTL)
	return nil
}

// Renew pushes the expiry date of an active purchase out by one year,
// keeping its purchase date.
func (m *MyPurchases) Renew(ctx context.Context, id int64) error {
	user, err := currentUser(m.session)
	if err != nil {
		return m.failWith(err, msgNotAuthenticated)
	}
	i, ok := m.find(id)
	if !ok {
		return m.failWith(fmt.Errorf("purchase %d is not listed", id), "Failed to renew policy.")
	}
	p := m.purchases[i]
	if !p.CanRenew(clock()) {
		return m.failWith(fmt.Errorf("purchase %d is not active", id), "Only active policies can be renewed.")
	}

	expiry := p.ExpiryDate.AddDate(1, 0, 0)
	if _, err := m.api.UpdatePurchaseDates(ctx, id, user.ID, p.PurchaseDate, expiry); err != nil {
		return m.failWith(err, "Failed to renew policy.")
	}
	m.purchases[i].ExpiryDate = expiry
	m.succeed("Policy renewed for 1 year.", purchaseTTL)
	return nil
}

// ConfirmFunc confirms a saved instance of one family.
type ConfirmFunc func(ctx context.Context, id int64, r models.PurchaseRequest) error

// ConfirmerOf adapts a product gateway to a ConfirmFunc.
func ConfirmerOf[T any](gw ProductGateway[T]) ConfirmFunc {
	return func(ctx context.Context, id int64, r models.PurchaseRequest) error {
		_, err := gw.Confirm(ctx, id, r)
		return err
	}
}

// Checkout confirms an instance saved earlier, addressed by kind and id.
type Checkout struct {
	screen
	session    Session
	confirmers map[models.ProductKind]ConfirmFunc
	kind       string
	entityID   string
	done       bool
}

func NewCheckout(s Session, confirmers map[models.ProductKind]ConfirmFunc, policyType, entityID string) *Checkout {
	return &Checkout{session: s, confirmers: confirmers, kind: policyType, entityID: entityID}
}

func (c *Checkout) PolicyType() string { return c.kind }
func (c *Checkout) EntityID() string   { return c.entityID }
func (c *Checkout) Done() bool         { return c.done }

func (c *Checkout) Confirm(ctx context.Context) error {
	user := c.session.Current()
	id, idErr := strconv.ParseInt(c.entityID, 10, 64)
	if user == nil || idErr != nil || id <= 0 || strings.TrimSpace(c.kind) == "" {
		return c.failWith(ErrNothingToConfirm, "Missing purchase data.")
	}
	kind, err := models.ParseProductKind(c.kind)
	if err != nil {
		return c.failWith(err, "Unsupported policy type.")
	}
	confirm, ok := c.confirmers[kind]
	if !ok {
		return c.failWith(fmt.Errorf("no confirmer for %s", kind), "Unsupported policy type.")
	}

	start, end := models.OneYearFrom(clock())
	c.loading = true
	err = confirm(ctx, id, models.PurchaseRequest{UserID: user.ID, PurchaseDate: start, ExpiryDate: end})
	c.loading = false
	if err != nil {
		return c.failWith(err, "Failed to complete purchase.")
	}

	c.done = true
	c.succeed("Purchase successful!", purchaseTTL)
	c.redirectTo(PathMyPurchases, checkoutRedirect)
	return nil
}

// InstanceSummary is one saved instance of any family, as listed.
type InstanceSummary struct {
	Kind    models.ProductKind
	ID      int64
	Status  models.InstanceStatus
	Premium float64
	Detail  string
}

// InstanceSource lists and removes the instances of one family.
type InstanceSource struct {
	Kind   models.ProductKind
	list   func(ctx context.Context) ([]InstanceSummary, error)
	remove func(ctx context.Context, id int64) error
	cancel func(ctx context.Context, id int64) error
}

func SourceOf[T Instance](gw InstanceGateway[T]) InstanceSource {
	kind := gw.Kind()
	return InstanceSource{
		Kind: kind,
		list: func(ctx context.Context) ([]InstanceSummary, error) {
			items, err := gw.List(ctx)
			if err != nil {
				return nil, err
			}
			out := make([]InstanceSummary, 0, len(items))
			for _, it := range items {
				out = append(out, summarize(kind, it))
			}
			return out, nil
		},
		remove: gw.Delete,
		cancel: gw.CancelConfirmed,
	}
}

func summarize(kind models.ProductKind, v any) InstanceSummary {
	s := InstanceSummary{Kind: kind}
	switch x := v.(type) {
	case models.Vehicle:
		s.ID, s.Status, s.Premium = x.ID, x.Status, x.ComprehensivePremium
		s.Detail = fmt.Sprintf("%s %s, %dcc", x.Manufacturer, x.RegistrationNumber, x.CC)
	case models.Health:
		s.ID, s.Status, s.Premium = x.ID, x.Status, x.Premium
		s.Detail = fmt.Sprintf("age %d, %d members, sum insured %.0f", x.Age, x.Members, x.SumInsured)
	case models.Life:
		s.ID, s.Status, s.Premium = x.ID, x.Status, x.Premium
		s.Detail = fmt.Sprintf("age %d, sum assured %.0f, %d years", x.Age, x.SumAssured, x.PolicyTerm)
	}
	return s
}

// MyInstances lists every saved instance across the product families.
type MyInstances struct {
	screen
	sources []InstanceSource
	items   []InstanceSummary
}

func NewMyInstances(sources ...InstanceSource) *MyInstances {
	return &MyInstances{sources: sources}
}

func (m *MyInstances) Items() []InstanceSummary { return m.items }

// Load fetches all families concurrently; the result keeps source order.
func (m *MyInstances) Load(ctx context.Context) error {
	m.loading = true
	defer func() { m.loading = false }()

	results := make([][]InstanceSummary, len(m.sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range m.sources {
		g.Go(func() error {
			items, err := src.list(gctx)
			if err != nil {
				return fmt.Errorf("list %s: %w", src.Kind, err)
			}
			results[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return m.failWith(err, "Failed to load your policies.")
	}

	var all []InstanceSummary
	for _, r := range results {
		all = append(all, r...)
	}
	m.items = all
	return nil
}

func (m *MyInstances) source(kind models.ProductKind) (InstanceSource, bool) {
	for _, s := range m.sources {
		if s.Kind == kind {
			return s, true
		}
	}
	return InstanceSource{}, false
}

func (m *MyInstances) Delete(ctx context.Context, kind models.ProductKind, id int64) error {
	src, ok := m.source(kind)
	if !ok {
		return m.failWith(fmt.Errorf("unknown kind %q", kind), "Invalid policy type")
	}
	if err := src.remove(ctx, id); err != nil {
		return m.failWith(err, "Failed to delete policy.")
	}
	kept := make([]InstanceSummary, 0, len(m.items))
	for _, it := range m.items {
		if it.Kind != kind || it.ID != id {
			kept = append(kept, it)
		}
	}
	m.items = kept
	m.succeed("Policy deleted.", purchaseTTL)
	return nil
}

func (m *MyInstances) CancelConfirmed(ctx context.Context, kind models.ProductKind, id int64) error {
	src, ok := m.source(kind)
	if !ok {
		return m.failWith(fmt.Errorf("unknown kind %q", kind), "Invalid policy type")
	}
	if err := src.cancel(ctx, id); err != nil {
		return m.failWith(err, "Failed to cancel policy.")
	}
	for i := range m.items {
		if m.items[i].Kind == kind && m.items[i].ID == id {
			m.items[i].Status = models.InstanceCancelled
		}
	}
	m.succeed("Policy cancelled.", purchaseTTL)
	return nil
}
