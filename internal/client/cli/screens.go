package cli

import (
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/router"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
)

// factories builds a fresh controller for every visit of a screen.
func (a *App) factories() map[string]router.Factory {
	return map[string]router.Factory{
		workflow.PathLogin: func(router.Params) router.Screen {
			return &loginView{Login: workflow.NewLogin(a.api, a.session), app: a}
		},
		workflow.PathRegister: func(router.Params) router.Screen {
			return &registerView{Registration: workflow.NewRegistration(a.api), app: a}
		},
		workflow.PathForgotPassword: func(router.Params) router.Screen {
			return &forgotPasswordView{ForgotPassword: workflow.NewForgotPassword(a.api), app: a}
		},

		workflow.PathAdminDashboard: func(router.Params) router.Screen {
			return &adminDashboardView{
				approval:  workflow.NewApproval(a.api),
				directory: workflow.NewDirectory(a.api, a.session),
				app:       a,
			}
		},
		workflow.PathPendingAdmins: func(router.Params) router.Screen {
			return &pendingView{Approval: workflow.NewApproval(a.api), admins: true, app: a}
		},
		workflow.PathPendingCustomers: func(router.Params) router.Screen {
			return &pendingView{Approval: workflow.NewApproval(a.api), app: a}
		},
		workflow.PathAllUsers: func(router.Params) router.Screen {
			return &allUsersView{UserList: workflow.NewUserList(a.api), app: a}
		},
		workflow.PathPolicyManagement: func(router.Params) router.Screen {
			return &policyManagementView{PolicyCatalog: workflow.NewPolicyCatalog(a.api), app: a}
		},
		workflow.PathClaimManagement: func(router.Params) router.Screen {
			return &claimManagementView{
				desk: workflow.NewClaimDesk(a.api),
				docs: workflow.NewClaimDocuments(a.api, a.session),
				app:  a,
			}
		},

		workflow.PathCustomerDashboard: func(router.Params) router.Screen {
			return &customerDashboardView{Profile: workflow.NewProfile(a.api, a.session), app: a}
		},
		workflow.PathChangePassword: func(router.Params) router.Screen {
			return &changePasswordView{ChangePassword: workflow.NewChangePassword(a.api, a.session), app: a}
		},
		workflow.PathPolicyView: func(router.Params) router.Screen {
			return &policyBrowserView{PolicyBrowser: workflow.NewPolicyBrowser(a.api), app: a}
		},
		workflow.PathVehicleManagement: func(p router.Params) router.Screen {
			return &purchaseView{productFlow: a.flowFor(p.Get("type")), app: a}
		},
		workflow.PathPurchase: func(p router.Params) router.Screen {
			return &checkoutView{
				Checkout: workflow.NewCheckout(a.session, a.confirmers(), p.Get("policyType"), p.Get("entityId")),
				app:      a,
			}
		},
		workflow.PathMyPurchases: func(router.Params) router.Screen {
			return &myPurchasesView{
				purchases: workflow.NewMyPurchases(a.api, a.session),
				instances: workflow.NewMyInstances(
					workflow.SourceOf[models.Vehicle](a.api.Bikes()),
					workflow.SourceOf[models.Vehicle](a.api.Cars()),
					workflow.SourceOf[models.Health](a.api.Health()),
					workflow.SourceOf[models.Life](a.api.Life()),
				),
				app: a,
			}
		},
		workflow.PathClaim: func(router.Params) router.Screen {
			return &claimView{
				claims: workflow.NewCustomerClaims(a.api, a.session),
				docs:   workflow.NewClaimDocuments(a.api, a.session),
				app:    a,
			}
		},
		workflow.PathNotifications: func(router.Params) router.Screen {
			return &notificationsView{Notifications: workflow.NewNotifications(a.api, a.session), app: a}
		},
	}
}

// flowFor picks the purchase flow of the type parameter; bikes when it is
// missing or unknown.
func (a *App) flowFor(typ string) productFlow {
	kind, err := models.ParseProductKind(typ)
	if err != nil {
		kind = models.KindBike
	}
	switch kind {
	case models.KindCar:
		return vehicleFlow(workflow.NewPurchase[models.Vehicle](a.api.Cars(), a.session))
	case models.KindHealth:
		return healthFlow(workflow.NewPurchase[models.Health](a.api.Health(), a.session))
	case models.KindLife:
		return lifeFlow(workflow.NewPurchase[models.Life](a.api.Life(), a.session))
	}
	return vehicleFlow(workflow.NewPurchase[models.Vehicle](a.api.Bikes(), a.session))
}

func (a *App) confirmers() map[models.ProductKind]workflow.ConfirmFunc {
	return map[models.ProductKind]workflow.ConfirmFunc{
		models.KindBike:   workflow.ConfirmerOf[models.Vehicle](a.api.Bikes()),
		models.KindCar:    workflow.ConfirmerOf[models.Vehicle](a.api.Cars()),
		models.KindHealth: workflow.ConfirmerOf[models.Health](a.api.Health()),
		models.KindLife:   workflow.ConfirmerOf[models.Life](a.api.Life()),
	}
}
