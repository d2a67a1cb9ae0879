package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
)

func userRows(users []models.User) [][]string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{idText(u.ID), u.Name, u.Email, string(u.Role), u.PANNumber, u.StatusText()})
	}
	return rows
}

var userHeader = []string{"ID", "NAME", "EMAIL", "ROLE", "PAN", "STATUS"}

func findUser(users []models.User, id int64) (models.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// adminDashboardView shows the admin's profile, how many accounts wait for
// approval and the user directory.
type adminDashboardView struct {
	focus
	approval  *workflow.Approval
	directory *workflow.Directory
	app       *App
}

func (v *adminDashboardView) Enter(ctx context.Context) error {
	v.last = v.approval
	if err := v.approval.LoadProfile(ctx); err != nil {
		return err
	}
	return v.approval.Load(ctx)
}

func (v *adminDashboardView) title() string { return "Admin dashboard" }

func (v *adminDashboardView) commands() []command {
	return []command{
		{"find email|id <value>", "look up a user"},
		{"activate", "activate the user found"},
		{"deactivate", "deactivate the user found"},
		{"clear", "forget the user found"},
		{"refresh", "reload profile and pending counts"},
		{"admins", "pending admin accounts"},
		{"customers", "pending customer accounts"},
		{"users", "all users"},
		{"policies", "manage policies"},
		{"claims", "review claims"},
	}
}

func (v *adminDashboardView) render(w io.Writer) {
	if p := v.approval.Profile(); p != nil {
		fields(w, "Admin", p.Name, "Email", p.Email, "Status", p.StatusText())
	}
	fmt.Fprintf(w, "Pending approval: %d admin(s), %d customer(s)\n",
		len(v.approval.PendingAdmins()), len(v.approval.PendingCustomers()))
	if u := v.directory.Found(); u != nil {
		fmt.Fprintln(w, "Found:")
		table(w, userHeader, userRows([]models.User{*u}))
	}
}

func (v *adminDashboardView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "find":
		if len(args) < 2 {
			return usagef("usage: find email|id <value>")
		}
		v.last = v.directory
		err := v.directory.Find(ctx, strings.ToLower(args[0]), strings.Join(args[1:], " "))
		v.render(v.app.out)
		return err
	case "activate", "deactivate":
		v.last = v.directory
		var err error
		if cmd == "activate" {
			err = v.directory.Activate(ctx)
		} else {
			err = v.directory.Deactivate(ctx)
		}
		if errors.Is(err, workflow.ErrNoUserSelected) {
			return usagef("find a user first: find email|id <value>")
		}
		if err == nil {
			v.render(v.app.out)
		}
		return err
	case "clear":
		v.directory.Clear()
		return nil
	case "refresh":
		if err := v.Enter(ctx); err != nil {
			return err
		}
		v.render(v.app.out)
		return nil
	case "admins":
		return v.app.Go(workflow.PathPendingAdmins)
	case "customers":
		return v.app.Go(workflow.PathPendingCustomers)
	case "users":
		return v.app.Go(workflow.PathAllUsers)
	case "policies":
		return v.app.Go(workflow.PathPolicyManagement)
	case "claims":
		return v.app.Go(workflow.PathClaimManagement)
	}
	return errUnknownCommand
}

// pendingView lists the admin or customer accounts awaiting activation.
type pendingView struct {
	*workflow.Approval
	admins bool
	app    *App
}

func (v *pendingView) Enter(ctx context.Context) error { return v.Load(ctx) }

func (v *pendingView) title() string {
	if v.admins {
		return "Pending admins"
	}
	return "Pending customers"
}

func (v *pendingView) users() []models.User {
	if v.admins {
		return v.PendingAdmins()
	}
	return v.PendingCustomers()
}

func (v *pendingView) commands() []command {
	return []command{
		{"list", "reload the list"},
		{"activate <id>", "activate an account"},
		{"deactivate <id>", "deactivate an account"},
		{"back", "return to the dashboard"},
	}
}

func (v *pendingView) render(w io.Writer) {
	table(w, userHeader, userRows(v.users()))
}

func (v *pendingView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		if err := v.Load(ctx); err != nil {
			return err
		}
	case "activate":
		id, err := argID(args, 0, "activate <id>")
		if err != nil {
			return err
		}
		u, ok := findUser(v.users(), id)
		if !ok {
			return usagef("no pending account with id %d", id)
		}
		if err := v.Activate(ctx, u); err != nil {
			return err
		}
	case "deactivate":
		id, err := argID(args, 0, "deactivate <id>")
		if err != nil {
			return err
		}
		if err := v.Deactivate(ctx, id); err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathAdminDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

type allUsersView struct {
	*workflow.UserList
	app *App
}

func (v *allUsersView) Enter(ctx context.Context) error { return v.Load(ctx) }
func (v *allUsersView) title() string                   { return "All users" }

func (v *allUsersView) commands() []command {
	return []command{
		{"list", "reload the list"},
		{"filter all|admin|customer", "filter by role"},
		{"activate <id>", "activate an account"},
		{"deactivate <id>", "deactivate an account"},
		{"back", "return to the dashboard"},
	}
}

func (v *allUsersView) render(w io.Writer) {
	fmt.Fprintf(w, "Role: %s\n", v.RoleFilter())
	table(w, userHeader, userRows(v.Filtered()))
}

func (v *allUsersView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		if err := v.Load(ctx); err != nil {
			return err
		}
	case "filter":
		role := ""
		if len(args) > 0 {
			role = args[0]
		}
		switch strings.ToUpper(role) {
		case "", "ALL", string(models.RoleAdmin), string(models.RoleCustomer):
		default:
			return usagef("usage: filter all|admin|customer")
		}
		v.SetRoleFilter(role)
	case "activate", "deactivate":
		id, err := argID(args, 0, cmd+" <id>")
		if err != nil {
			return err
		}
		u, ok := findUser(v.Filtered(), id)
		if !ok {
			return usagef("no listed user with id %d", id)
		}
		if cmd == "activate" {
			err = v.Activate(ctx, u)
		} else {
			err = v.Deactivate(ctx, u)
		}
		if err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathAdminDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

type policyManagementView struct {
	*workflow.PolicyCatalog
	app *App
}

func (v *policyManagementView) Enter(ctx context.Context) error { return v.Load(ctx) }
func (v *policyManagementView) title() string                   { return "Policy management" }

func (v *policyManagementView) commands() []command {
	return []command{
		{"list", "reload the catalogue"},
		{"filter [type] [active|all]", "filter by type and status; no arguments clears"},
		{"add", "create a policy"},
		{"edit <id>", "change a policy"},
		{"delete <id>", "remove a policy"},
		{"back", "return to the dashboard"},
	}
}

func policyRows(ps []models.Policy) [][]string {
	rows := make([][]string, 0, len(ps))
	for _, p := range ps {
		rows = append(rows, []string{idText(p.ID), p.Name, p.Type, money(p.Premium), num(p.Tenure), p.Coverage, yesNo(p.Active)})
	}
	return rows
}

var policyHeader = []string{"ID", "NAME", "TYPE", "PREMIUM", "TENURE", "COVERAGE", "ACTIVE"}

func (v *policyManagementView) render(w io.Writer) {
	table(w, policyHeader, policyRows(v.Policies()))
}

// parsePolicyFilter reads "[type] [active|all]" in any order.
func parsePolicyFilter(args []string) workflow.PolicyFilter {
	var f workflow.PolicyFilter
	for _, a := range args {
		switch strings.ToLower(a) {
		case "active":
			f.ActiveOnly = true
		case "all":
			f.ActiveOnly = false
		default:
			f.Type = a
		}
	}
	return f
}

func (v *policyManagementView) form(f workflow.PolicyForm) (workflow.PolicyForm, error) {
	var err error
	if f.Name, err = v.app.textOr("Policy name", f.Name); err != nil {
		return f, err
	}
	if f.Type, err = v.app.textOr("Type (Bike, Car, Health, Life)", f.Type); err != nil {
		return f, err
	}
	if f.Premium, err = v.app.number("Premium", f.Premium); err != nil {
		return f, err
	}
	if f.Tenure, err = v.app.integer("Tenure in months", f.Tenure); err != nil {
		return f, err
	}
	if f.Coverage, err = v.app.textOr("Coverage", f.Coverage); err != nil {
		return f, err
	}
	if f.Active, err = v.app.yes("Active", f.Active); err != nil {
		return f, err
	}
	return f, nil
}

func (v *policyManagementView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		if err := v.Load(ctx); err != nil {
			return err
		}
	case "filter":
		v.SetFilter(parsePolicyFilter(args))
		if err := v.Load(ctx); err != nil {
			return err
		}
	case "add":
		f, err := v.form(workflow.NewPolicyForm())
		if err != nil {
			return err
		}
		if err := v.Create(ctx, f); err != nil {
			return err
		}
	case "edit":
		id, err := argID(args, 0, "edit <id>")
		if err != nil {
			return err
		}
		p, ok := v.Find(id)
		if !ok {
			return usagef("no listed policy with id %d", id)
		}
		f, err := v.form(workflow.PolicyFormFrom(p))
		if err != nil {
			return err
		}
		if err := v.Update(ctx, id, f); err != nil {
			return err
		}
	case "delete":
		id, err := argID(args, 0, "delete <id>")
		if err != nil {
			return err
		}
		if err := v.Delete(ctx, id); err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathAdminDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

type claimManagementView struct {
	focus
	desk *workflow.ClaimDesk
	docs *workflow.ClaimDocuments
	app  *App
}

func (v *claimManagementView) Enter(ctx context.Context) error {
	v.last = v.desk
	return v.desk.Load(ctx)
}

func (v *claimManagementView) title() string { return "Claim management" }

func (v *claimManagementView) commands() []command {
	return []command{
		{"list", "reload the claims"},
		{"status all|pending|approved|rejected", "filter by status"},
		{"approve <id>", "approve a claim"},
		{"reject <id>", "reject a claim"},
		{"verify <document id>", "mark a claim document as verified"},
		{"back", "return to the dashboard"},
	}
}

func claimRows(cs []models.Claim) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{idText(c.ID), c.UserName, c.UserEmail, idText(c.PurchaseID), string(c.Status), date(c.UploadedAt)})
	}
	return rows
}

func (v *claimManagementView) render(w io.Writer) {
	status := v.desk.Status()
	if status == "" {
		status = "ALL"
	}
	fmt.Fprintf(w, "Status: %s\n", strings.ToUpper(status))
	table(w, []string{"ID", "CUSTOMER", "EMAIL", "PURCHASE", "STATUS", "UPLOADED"}, claimRows(v.desk.Filtered()))
}

func (v *claimManagementView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		v.last = v.desk
		if err := v.desk.Load(ctx); err != nil {
			return err
		}
	case "status":
		s := ""
		if len(args) > 0 {
			s = args[0]
		}
		v.desk.SetStatus(s)
	case "approve", "reject":
		v.last = v.desk
		id, err := argID(args, 0, cmd+" <id>")
		if err != nil {
			return err
		}
		if cmd == "approve" {
			err = v.desk.Approve(ctx, id)
		} else {
			err = v.desk.Reject(ctx, id)
		}
		if err != nil {
			return err
		}
	case "verify":
		v.last = v.docs
		id, err := argID(args, 0, "verify <document id>")
		if err != nil {
			return err
		}
		if err := v.docs.Verify(ctx, id); err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathAdminDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}
