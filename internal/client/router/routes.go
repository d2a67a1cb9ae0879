package router

import (
	"github.com/dmitrijs2005/brokerdesk/internal/client/access"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
)

// Factory builds the screen of one path.
type Factory func(p Params) Screen

// guards is the access rule of every screen path.
var guards = map[string]access.Predicate{
	workflow.PathLogin:          access.Public,
	workflow.PathRegister:       access.Public,
	workflow.PathForgotPassword: access.Public,

	workflow.PathAdminDashboard:   access.Admin,
	workflow.PathPendingAdmins:    access.Admin,
	workflow.PathPendingCustomers: access.Admin,
	workflow.PathAllUsers:         access.Admin,
	workflow.PathPolicyManagement: access.Admin,
	workflow.PathClaimManagement:  access.Admin,

	workflow.PathCustomerDashboard: access.Customer,
	workflow.PathChangePassword:    access.Customer,
	workflow.PathPolicyView:        access.Customer,
	workflow.PathVehicleManagement: access.Customer,
	workflow.PathPurchase:          access.Customer,
	workflow.PathMyPurchases:       access.Customer,
	workflow.PathClaim:             access.Customer,
	workflow.PathNotifications:     access.Customer,
}

// Paths lists every screen path in a stable order: public, admin, customer.
func Paths() []string {
	return []string{
		workflow.PathLogin, workflow.PathRegister, workflow.PathForgotPassword,
		workflow.PathAdminDashboard, workflow.PathPendingAdmins, workflow.PathPendingCustomers,
		workflow.PathAllUsers, workflow.PathPolicyManagement, workflow.PathClaimManagement,
		workflow.PathCustomerDashboard, workflow.PathChangePassword, workflow.PathPolicyView,
		workflow.PathVehicleManagement, workflow.PathPurchase, workflow.PathMyPurchases,
		workflow.PathClaim, workflow.PathNotifications,
	}
}

// Allowed reports whether the identity may enter path.
func Allowed(path string, identity access.IdentitySource) bool {
	g, ok := guards[normalize(path)]
	return ok && g(identity)
}

// Table returns the guarded route of every screen path whose factory
// factories provides. Paths without a factory are left out and so fall
// back like unknown ones.
func Table(factories map[string]Factory) []Route {
	routes := make([]Route, 0, len(factories))
	for _, p := range Paths() {
		build, ok := factories[p]
		if !ok {
			continue
		}
		routes = append(routes, Route{Path: p, Guard: guards[p], Build: build})
	}
	return routes
}
