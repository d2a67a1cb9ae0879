package cli

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
)

type loginView struct {
	*workflow.Login
	app *App
}

func (v *loginView) Enter(context.Context) error { return nil }
func (v *loginView) title() string               { return "Login" }

func (v *loginView) commands() []command {
	return []command{
		{"login [admin|customer]", "sign in; the role defaults to customer"},
		{"register", "create an account"},
		{"forgot", "reset a forgotten password"},
	}
}

func (v *loginView) render(w io.Writer) {
	fmt.Fprintln(w, "Type 'login' to sign in or 'register' to create an account.")
}

func (v *loginView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		role := models.RoleCustomer
		if len(args) > 0 {
			r, err := models.ParseRole(args[0])
			if err != nil {
				return usagef("usage: login [admin|customer]")
			}
			role = r
		}
		email, err := v.app.text("Email")
		if err != nil {
			return err
		}
		password, err := v.app.secret("Password")
		if err != nil {
			return err
		}
		return v.Submit(ctx, workflow.Credentials{Role: role, Email: email, Password: password})
	case "register":
		return v.app.Go(workflow.PathRegister)
	case "forgot":
		return v.app.Go(workflow.PathForgotPassword)
	}
	return errUnknownCommand
}

type registerView struct {
	*workflow.Registration
	app *App
}

func (v *registerView) Enter(context.Context) error { return nil }
func (v *registerView) title() string               { return "Register" }

func (v *registerView) commands() []command {
	return []command{
		{"submit", "fill in and send the registration form"},
		{"back", "return to the login screen"},
	}
}

func (v *registerView) render(w io.Writer) {
	fmt.Fprintln(w, "Type 'submit' to fill in the registration form.")
}

func (v *registerView) run(ctx context.Context, cmd string, _ []string) error {
	switch cmd {
	case "submit":
		var (
			f    workflow.RegistrationForm
			role string
			err  error
		)
		if f.Name, err = v.app.text("Full name"); err != nil {
			return err
		}
		if f.Email, err = v.app.text("Email"); err != nil {
			return err
		}
		if f.Password, err = v.app.secret("Password"); err != nil {
			return err
		}
		if f.ConfirmPassword, err = v.app.secret("Confirm password"); err != nil {
			return err
		}
		if f.PANNumber, err = v.app.text("PAN number (ABCDE1234F)"); err != nil {
			return err
		}
		if role, err = v.app.textOr("Role (admin/customer)", "customer"); err != nil {
			return err
		}
		f.Role, _ = models.ParseRole(role)
		return v.Submit(ctx, f)
	case "back":
		return v.app.Go(workflow.PathLogin)
	}
	return errUnknownCommand
}

type forgotPasswordView struct {
	*workflow.ForgotPassword
	app *App
}

func (v *forgotPasswordView) Enter(context.Context) error { return nil }
func (v *forgotPasswordView) title() string               { return "Forgot password" }

func (v *forgotPasswordView) commands() []command {
	return []command{
		{"submit", "reset the password with your email and PAN"},
		{"back", "return to the login screen"},
	}
}

func (v *forgotPasswordView) render(w io.Writer) {
	fmt.Fprintln(w, "Type 'submit' to reset your password.")
}

func (v *forgotPasswordView) run(ctx context.Context, cmd string, _ []string) error {
	switch cmd {
	case "submit":
		var (
			f   workflow.ForgotPasswordForm
			err error
		)
		if f.Email, err = v.app.text("Email"); err != nil {
			return err
		}
		if f.PANNumber, err = v.app.text("PAN number"); err != nil {
			return err
		}
		if f.NewPassword, err = v.app.secret("New password"); err != nil {
			return err
		}
		return v.Submit(ctx, f)
	case "back":
		return v.app.Go(workflow.PathLogin)
	}
	return errUnknownCommand
}

type changePasswordView struct {
	*workflow.ChangePassword
	app *App
}

func (v *changePasswordView) Enter(context.Context) error { return nil }
func (v *changePasswordView) title() string               { return "Change password" }

func (v *changePasswordView) commands() []command {
	return []command{
		{"submit", "change your password"},
		{"back", "return to the dashboard"},
	}
}

func (v *changePasswordView) render(w io.Writer) {
	fmt.Fprintf(w, "Account: %s\n", v.Form().Email)
}

func (v *changePasswordView) run(ctx context.Context, cmd string, _ []string) error {
	switch cmd {
	case "submit":
		f := v.Form()
		var err error
		if f.OldPassword, err = v.app.secret("Current password"); err != nil {
			return err
		}
		if f.NewPassword, err = v.app.secret("New password"); err != nil {
			return err
		}
		if f.ConfirmPassword, err = v.app.secret("Confirm new password"); err != nil {
			return err
		}
		return v.Submit(ctx, f)
	case "back":
		return v.app.Go(v.Back())
	}
	return errUnknownCommand
}

// customerDashboardView is the customer landing screen: the profile and the
// way to every customer screen.
type customerDashboardView struct {
	*workflow.Profile
	app *App
}

func (v *customerDashboardView) Enter(ctx context.Context) error { return v.Load(ctx) }
func (v *customerDashboardView) title() string                   { return "Customer dashboard" }

func (v *customerDashboardView) commands() []command {
	return []command{
		{"profile", "reload your profile"},
		{"policies", "browse available policies"},
		{"buy [bike|car|health|life]", "calculate and buy coverage"},
		{"purchases", "your purchases and saved policies"},
		{"claims", "file and track claims"},
		{"notifications", "messages about your claims"},
		{"password", "change your password"},
	}
}

func (v *customerDashboardView) render(w io.Writer) {
	u := v.User()
	if u == nil {
		fmt.Fprintln(w, "Profile not loaded.")
		return
	}
	fields(w,
		"Name", u.Name,
		"Email", u.Email,
		"PAN", u.PANNumber,
		"Status", u.StatusText(),
	)
}

func (v *customerDashboardView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "profile":
		if err := v.Load(ctx); err != nil {
			return err
		}
		v.render(v.app.out)
		return nil
	case "policies":
		return v.app.Go(workflow.PathPolicyView)
	case "buy":
		target := workflow.PathVehicleManagement
		if len(args) > 0 {
			target += "?" + url.Values{"type": {args[0]}}.Encode()
		}
		return v.app.Go(target)
	case "purchases":
		return v.app.Go(workflow.PathMyPurchases)
	case "claims":
		return v.app.Go(workflow.PathClaim)
	case "notifications":
		return v.app.Go(workflow.PathNotifications)
	case "password":
		return v.app.Go(workflow.PathChangePassword)
	}
	return errUnknownCommand
}
