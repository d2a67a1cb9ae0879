package workflow

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

const policyTTL = 3 * time.Second

// PolicyFilter is the filter bar of the policy screens. A false ActiveOnly
// means "all policies", never "inactive only".
type PolicyFilter struct {
	Type       string
	ActiveOnly bool
}

func (f PolicyFilter) query() client.PolicyFilter {
	q := client.PolicyFilter{Type: strings.TrimSpace(f.Type)}
	if f.ActiveOnly {
		active := true
		q.ActiveOnly = &active
	}
	return q
}

// PolicyForm is the add/edit form of the admin catalogue.
type PolicyForm struct {
	Name     string
	Type     string
	Premium  float64
	Tenure   int
	Coverage string
	Active   bool
}

// NewPolicyForm returns the form with its defaults.
func NewPolicyForm() PolicyForm {
	return PolicyForm{Tenure: 6, Active: true}
}

// PolicyFormFrom prefills the form for editing p.
func PolicyFormFrom(p models.Policy) PolicyForm {
	return PolicyForm{Name: p.Name, Type: p.Type, Premium: p.Premium, Tenure: p.Tenure, Coverage: p.Coverage, Active: p.Active}
}

func (f PolicyForm) Validate() error {
	var c checker
	c.required(f.Name, "policyName")
	c.maxLen(f.Name, 100, "policyName")
	c.required(f.Type, "type")
	c.maxLen(f.Type, 50, "type")
	c.check(f.Premium >= 0, "premium", "must not be negative")
	c.check(f.Tenure >= 1 && f.Tenure <= 600, "tenure", "must be between 1 and 600 months")
	c.required(f.Coverage, "coverage")
	c.maxLen(f.Coverage, 255, "coverage")
	return c.err()
}

func (f PolicyForm) policy() models.Policy {
	return models.Policy{Name: f.Name, Type: f.Type, Premium: f.Premium, Tenure: f.Tenure, Coverage: f.Coverage, Active: f.Active}
}

// PolicyCatalog is the admin policy management screen. Mutations patch the
// local list instead of refetching.
type PolicyCatalog struct {
	screen
	api      PolicyAPI
	filter   PolicyFilter
	policies []models.Policy
}

func NewPolicyCatalog(api PolicyAPI) *PolicyCatalog {
	return &PolicyCatalog{api: api}
}

func (c *PolicyCatalog) Policies() []models.Policy { return c.policies }
func (c *PolicyCatalog) Filter() PolicyFilter      { return c.filter }

func (c *PolicyCatalog) SetFilter(f PolicyFilter) { c.filter = f }

// Find returns the listed policy with the given id.
func (c *PolicyCatalog) Find(id int64) (models.Policy, bool) {
	for _, p := range c.policies {
		if p.ID == id {
			return p, true
		}
	}
	return models.Policy{}, false
}

func (c *PolicyCatalog) Load(ctx context.Context) error {
	c.loading = true
	ps, err := c.api.Policies(ctx, c.filter.query())
	c.loading = false
	if err != nil {
		return c.failWith(err, "Failed to load policies. Please try again.")
	}
	c.policies = ps
	return nil
}

func (c *PolicyCatalog) Create(ctx context.Context, f PolicyForm) error {
	if err := f.Validate(); err != nil {
		return c.failWith(err, "")
	}
	p, err := c.api.CreatePolicy(ctx, f.policy())
	if err != nil {
		return c.failWith(err, "Failed to create policy. Please try again.")
	}
	c.policies = append(c.policies, p)
	c.succeed("Policy created successfully!", policyTTL)
	return nil
}

func (c *PolicyCatalog) Update(ctx context.Context, id int64, f PolicyForm) error {
	if err := f.Validate(); err != nil {
		return c.failWith(err, "")
	}
	p, err := c.api.UpdatePolicy(ctx, id, f.policy())
	if err != nil {
		return c.failWith(err, "Failed to update policy. Please try again.")
	}
	if p.ID == 0 {
		p.ID = id
	}
	for i := range c.policies {
		if c.policies[i].ID == id {
			c.policies[i] = p
			break
		}
	}
	c.succeed("Policy updated successfully!", policyTTL)
	return nil
}

func (c *PolicyCatalog) Delete(ctx context.Context, id int64) error {
	if err := c.api.DeletePolicy(ctx, id); err != nil {
		return c.failWith(err, "Failed to delete policy. Please try again.")
	}
	kept := make([]models.Policy, 0, len(c.policies))
	for _, p := range c.policies {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.policies = kept
	c.succeed("Policy deleted successfully!", policyTTL)
	return nil
}

// PolicyBrowser is the customer catalogue. It shows active policies unless
// told otherwise.
type PolicyBrowser struct {
	screen
	api      PolicyAPI
	filter   PolicyFilter
	policies []models.Policy
}

func NewPolicyBrowser(api PolicyAPI) *PolicyBrowser {
	return &PolicyBrowser{api: api, filter: PolicyFilter{ActiveOnly: true}}
}

func (b *PolicyBrowser) Policies() []models.Policy { return b.policies }
func (b *PolicyBrowser) Filter() PolicyFilter      { return b.filter }

func (b *PolicyBrowser) SetFilter(f PolicyFilter) { b.filter = f }

// ClearFilter restores the default filter.
func (b *PolicyBrowser) ClearFilter() { b.filter = PolicyFilter{ActiveOnly: true} }

func (b *PolicyBrowser) Load(ctx context.Context) error {
	b.loading = true
	ps, err := b.api.AvailablePolicies(ctx, b.filter.query())
	b.loading = false
	if err != nil {
		return b.failWith(err, "Failed to load policies. Please try again.")
	}
	b.policies = ps
	return nil
}

// Select opens the purchase screen for the policy's type.
func (b *PolicyBrowser) Select(p models.Policy) {
	q := url.Values{"type": {strings.ToLower(strings.TrimSpace(p.Type))}}
	b.redirectTo(PathVehicleManagement+"?"+q.Encode(), 0)
}
