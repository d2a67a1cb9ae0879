package workflow

// Screen paths. The router maps each of them to a controller.
const (
	PathLogin          = "/login"
	PathRegister       = "/register"
	PathForgotPassword = "/forgot-password"

	PathAdminDashboard   = "/admin/dashboard"
	PathPendingAdmins    = "/admin/dashboard/pending-admins"
	PathPendingCustomers = "/admin/dashboard/pending-customers"
	PathAllUsers         = "/admin/dashboard/all-users"
	PathPolicyManagement = "/admin/dashboard/policy-management"
	PathClaimManagement  = "/admin/dashboard/claim-management"

	PathCustomerDashboard = "/customer/dashboard"
	PathChangePassword    = "/customer/dashboard/change-password"
	PathPolicyView        = "/customer/dashboard/policy-view"
	PathVehicleManagement = "/customer/dashboard/vehicle-management"
	PathPurchase          = "/customer/dashboard/purchase"
	PathMyPurchases       = "/customer/dashboard/my-purchases"
	PathClaim             = "/customer/dashboard/claim"
	PathNotifications     = "/customer/dashboard/notifications"
)

// DashboardFor is where a freshly logged-in user lands.
func DashboardFor(admin bool) string {
	if admin {
		return PathAdminDashboard
	}
	return PathCustomerDashboard
}
