package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
)

type policyBrowserView struct {
	*workflow.PolicyBrowser
	app *App
}

func (v *policyBrowserView) Enter(ctx context.Context) error { return v.Load(ctx) }
func (v *policyBrowserView) title() string                   { return "Available policies" }

func (v *policyBrowserView) commands() []command {
	return []command{
		{"list", "reload the policies"},
		{"type <type>|all", "filter by policy type"},
		{"active on|off", "show only active policies"},
		{"clear", "reset the filter"},
		{"select <id>", "buy the policy's type of coverage"},
		{"back", "return to the dashboard"},
	}
}

func (v *policyBrowserView) render(w io.Writer) {
	f := v.Filter()
	typ := f.Type
	if typ == "" {
		typ = "all"
	}
	fmt.Fprintf(w, "Type: %s, active only: %s\n", typ, yesNo(f.ActiveOnly))
	table(w, policyHeader, policyRows(v.Policies()))
}

func (v *policyBrowserView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
	case "type":
		if len(args) == 0 {
			return usagef("usage: type <type>|all")
		}
		f := v.Filter()
		f.Type = args[0]
		if strings.EqualFold(f.Type, "all") {
			f.Type = ""
		}
		v.SetFilter(f)
	case "active":
		if len(args) == 0 {
			return usagef("usage: active on|off")
		}
		on, err := parseBool(args[0])
		if err != nil {
			return usagef("usage: active on|off")
		}
		f := v.Filter()
		f.ActiveOnly = on
		v.SetFilter(f)
	case "clear":
		v.ClearFilter()
	case "select":
		id, err := argID(args, 0, "select <id>")
		if err != nil {
			return err
		}
		for _, p := range v.Policies() {
			if p.ID == id {
				v.Select(p)
				return nil
			}
		}
		return usagef("no listed policy with id %d", id)
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	default:
		return errUnknownCommand
	}
	if err := v.Load(ctx); err != nil {
		return err
	}
	v.render(v.app.out)
	return nil
}

// productFlow is a purchase flow of any product family.
type productFlow interface {
	flasher
	Kind() models.ProductKind
	State() workflow.PurchaseState
	EntityID() int64
	Quote() models.Quote
	Confirm(ctx context.Context) error
	Cancel(ctx context.Context) error
	calculate(ctx context.Context, a *App) error
}

type flow[T workflow.Instance] struct {
	*workflow.Purchase[T]
	prompt func(a *App) (workflow.Form[T], error)
}

func (f *flow[T]) calculate(ctx context.Context, a *App) error {
	form, err := f.prompt(a)
	if err != nil {
		return err
	}
	return f.Calculate(ctx, form)
}

// The flows below prefill every prompt with the previous answer.

func vehicleFlow(p *workflow.Purchase[models.Vehicle]) productFlow {
	var last workflow.VehicleForm
	return &flow[models.Vehicle]{Purchase: p, prompt: func(a *App) (workflow.Form[models.Vehicle], error) {
		f := last
		var err error
		if f.CC, err = a.integer("Engine capacity (cc)", f.CC); err != nil {
			return nil, err
		}
		if f.AgeInMonths, err = a.integer("Vehicle age in months", f.AgeInMonths); err != nil {
			return nil, err
		}
		if f.Manufacturer, err = a.textOr("Manufacturer", f.Manufacturer); err != nil {
			return nil, err
		}
		if f.RegistrationNumber, err = a.textOr("Registration number", f.RegistrationNumber); err != nil {
			return nil, err
		}
		last = f
		return f, nil
	}}
}

func healthFlow(p *workflow.Purchase[models.Health]) productFlow {
	last := workflow.HealthForm{Members: 1}
	return &flow[models.Health]{Purchase: p, prompt: func(a *App) (workflow.Form[models.Health], error) {
		f := last
		var err error
		if f.Age, err = a.integer("Age of the eldest member", f.Age); err != nil {
			return nil, err
		}
		if f.Members, err = a.integer("Number of members", f.Members); err != nil {
			return nil, err
		}
		if f.SumInsured, err = a.number("Sum insured", f.SumInsured); err != nil {
			return nil, err
		}
		if f.Smoker, err = a.yes("Smoker", f.Smoker); err != nil {
			return nil, err
		}
		if f.PreExisting, err = a.yes("Pre-existing conditions", f.PreExisting); err != nil {
			return nil, err
		}
		last = f
		return f, nil
	}}
}

func lifeFlow(p *workflow.Purchase[models.Life]) productFlow {
	last := workflow.NewLifeForm()
	return &flow[models.Life]{Purchase: p, prompt: func(a *App) (workflow.Form[models.Life], error) {
		f := last
		var err error
		if f.Age, err = a.integer("Age", f.Age); err != nil {
			return nil, err
		}
		if f.Gender, err = a.textOr("Gender", f.Gender); err != nil {
			return nil, err
		}
		if f.SumAssured, err = a.number("Sum assured", f.SumAssured); err != nil {
			return nil, err
		}
		if f.PolicyTerm, err = a.integer("Policy term in years", f.PolicyTerm); err != nil {
			return nil, err
		}
		if f.Smoker, err = a.yes("Smoker", f.Smoker); err != nil {
			return nil, err
		}
		if f.OccupationRisk, err = a.textOr("Occupation risk (low/medium/high)", f.OccupationRisk); err != nil {
			return nil, err
		}
		last = f
		return f, nil
	}}
}

// purchaseView rates, saves and confirms one instance of the product
// family named by the type parameter.
type purchaseView struct {
	productFlow
	app *App
}

func (v *purchaseView) Enter(context.Context) error { return nil }

func (v *purchaseView) title() string {
	if v.Kind().IsVehicle() {
		return "Buy " + v.Kind().Noun() + " insurance"
	}
	return "Buy " + v.Kind().Noun()
}

func (v *purchaseView) commands() []command {
	return []command{
		{"calc", "enter details, calculate the premium and save them as pending"},
		{"confirm", "buy the pending policy for one year"},
		{"checkout", "review the pending policy on the purchase screen"},
		{"cancel", "discard the pending details"},
		{"show", "show the current quote"},
		{"type bike|car|health|life", "switch product"},
		{"back", "return to the dashboard"},
	}
}

func (v *purchaseView) render(w io.Writer) {
	pairs := []string{"Product", string(v.Kind()), "State", string(v.State())}
	if id := v.EntityID(); id != 0 {
		pairs = append(pairs, "Saved as", idText(id))
	}
	q := v.Quote()
	if v.Kind().IsVehicle() {
		if q.IDV != 0 || q.ComprehensivePremium != 0 {
			pairs = append(pairs,
				"IDV", money(q.IDV),
				"Third-party premium", money(q.ThirdPartyPremium),
				"Comprehensive premium", money(q.ComprehensivePremium),
			)
		}
	} else if q.Premium != 0 {
		pairs = append(pairs, "Annual premium", money(q.Premium))
	}
	fields(w, pairs...)
}

func (v *purchaseView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "calc":
		if err := v.calculate(ctx, v.app); err != nil {
			return err
		}
	case "confirm":
		if err := v.Confirm(ctx); err != nil {
			return err
		}
	case "checkout":
		if v.EntityID() == 0 {
			return usagef("calculate first: calc")
		}
		q := url.Values{
			"policyType": {string(v.Kind())},
			"entityId":   {idText(v.EntityID())},
		}
		return v.app.Go(workflow.PathPurchase + "?" + q.Encode())
	case "cancel":
		if err := v.Cancel(ctx); err != nil {
			return err
		}
	case "show":
	case "type":
		if len(args) == 0 {
			return usagef("usage: type bike|car|health|life")
		}
		kind, err := models.ParseProductKind(args[0])
		if err != nil {
			return usagef("usage: type bike|car|health|life")
		}
		return v.app.Go(workflow.PathVehicleManagement + "?type=" + string(kind))
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

type checkoutView struct {
	*workflow.Checkout
	app *App
}

func (v *checkoutView) Enter(context.Context) error { return nil }
func (v *checkoutView) title() string               { return "Complete purchase" }

func (v *checkoutView) commands() []command {
	return []command{
		{"confirm", "buy the policy for one year from today"},
		{"back", "return to the dashboard"},
	}
}

func (v *checkoutView) render(w io.Writer) {
	start, end := models.OneYearFrom(now())
	fields(w,
		"Policy type", v.PolicyType(),
		"Saved details", v.EntityID(),
		"Valid", date(start)+" to "+date(end),
	)
	if v.Done() {
		fmt.Fprintln(w, "Purchased.")
	}
}

func (v *checkoutView) run(ctx context.Context, cmd string, _ []string) error {
	switch cmd {
	case "confirm":
		return v.Confirm(ctx)
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	}
	return errUnknownCommand
}

// myPurchasesView lists purchases and the saved policy instances behind
// them.
type myPurchasesView struct {
	focus
	purchases *workflow.MyPurchases
	instances *workflow.MyInstances
	app       *App
}

func (v *myPurchasesView) Enter(ctx context.Context) error {
	v.last = v.purchases
	err := v.purchases.Load(ctx)
	if ierr := v.instances.Load(ctx); ierr != nil && err == nil {
		v.last = v.instances
		err = ierr
	}
	return err
}

func (v *myPurchasesView) title() string { return "My purchases" }

func (v *myPurchasesView) commands() []command {
	return []command{
		{"list", "reload purchases and saved policies"},
		{"filter all|active|inactive", "filter purchases"},
		{"renew <id>", "extend an active purchase by one year"},
		{"cancel <id>", "cancel an active purchase"},
		{"delete <kind> <id>", "delete a saved policy"},
		{"revoke <kind> <id>", "cancel a confirmed saved policy"},
		{"back", "return to the dashboard"},
	}
}

func (v *myPurchasesView) render(w io.Writer) {
	t := now()
	rows := make([][]string, 0, len(v.purchases.Purchases()))
	for _, p := range v.purchases.Purchases() {
		var actions []string
		if p.CanRenew(t) {
			actions = append(actions, "renew")
		}
		if p.CanCancel(t) {
			actions = append(actions, "cancel")
		}
		rows = append(rows, []string{
			idText(p.ID), string(p.Kind), idText(p.InstanceID), date(p.PurchaseDate), date(p.ExpiryDate),
			string(p.EffectiveStatus(t)), strings.Join(actions, ","),
		})
	}
	fmt.Fprintf(w, "Purchases (%s):\n", v.purchases.Filter())
	table(w, []string{"ID", "TYPE", "DETAILS", "PURCHASED", "EXPIRES", "STATUS", "ACTIONS"}, rows)

	items := v.instances.Items()
	rows = make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{string(it.Kind), idText(it.ID), string(it.Status), money(it.Premium), it.Detail})
	}
	fmt.Fprintln(w, "Saved policies:")
	table(w, []string{"KIND", "ID", "STATUS", "PREMIUM", "DETAILS"}, rows)
}

func kindAndID(args []string, usage string) (models.ProductKind, int64, error) {
	if len(args) < 2 {
		return "", 0, usagef("usage: %s", usage)
	}
	kind, err := models.ParseProductKind(args[0])
	if err != nil {
		return "", 0, usagef("usage: %s", usage)
	}
	id, err := argID(args, 1, usage)
	return kind, id, err
}

func (v *myPurchasesView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		if err := v.Enter(ctx); err != nil {
			return err
		}
	case "filter":
		s := ""
		if len(args) > 0 {
			s = args[0]
		}
		f, err := workflow.ParsePurchaseFilter(s)
		if err != nil {
			return usagef("usage: filter all|active|inactive")
		}
		v.last = v.purchases
		if err := v.purchases.SetFilter(ctx, f); err != nil {
			return err
		}
	case "renew", "cancel":
		id, err := argID(args, 0, cmd+" <id>")
		if err != nil {
			return err
		}
		v.last = v.purchases
		if cmd == "renew" {
			err = v.purchases.Renew(ctx, id)
		} else {
			err = v.purchases.Cancel(ctx, id)
		}
		if err != nil {
			return err
		}
	case "delete", "revoke":
		kind, id, err := kindAndID(args, cmd+" <kind> <id>")
		if err != nil {
			return err
		}
		v.last = v.instances
		if cmd == "delete" {
			err = v.instances.Delete(ctx, kind, id)
		} else {
			err = v.instances.CancelConfirmed(ctx, kind, id)
		}
		if err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

type claimView struct {
	focus
	claims   *workflow.CustomerClaims
	docs     *workflow.ClaimDocuments
	showDocs bool
	app      *App
}

func (v *claimView) Enter(ctx context.Context) error {
	v.last = v.claims
	return v.claims.Load(ctx)
}

func (v *claimView) title() string { return "Claims" }

func (v *claimView) commands() []command {
	return []command{
		{"list", "reload claims and purchases"},
		{"submit <purchase id>", "file a claim against a purchase"},
		{"withdraw <id>", "withdraw a claim"},
		{"docs [claim id]", "documents of a claim, or all of yours"},
		{"upload <claim id>", "attach a file to a claim"},
		{"replace <document id>", "upload a new file for a document"},
		{"download <document id> [dir]", "save a document's file"},
		{"remove <document id>", "delete a document"},
		{"back", "return to the dashboard"},
	}
}

func (v *claimView) render(w io.Writer) {
	rows := make([][]string, 0)
	for _, p := range v.claims.Claimable() {
		rows = append(rows, []string{idText(p.ID), string(p.Kind), date(p.PurchaseDate), date(p.ExpiryDate), string(p.Status)})
	}
	fmt.Fprintln(w, "Purchases you can claim against:")
	table(w, []string{"ID", "TYPE", "PURCHASED", "EXPIRES", "STATUS"}, rows)

	rows = make([][]string, 0, len(v.claims.Claims()))
	for _, c := range v.claims.Claims() {
		rows = append(rows, []string{idText(c.ID), idText(c.PurchaseID), string(c.Status), date(c.UploadedAt)})
	}
	fmt.Fprintln(w, "Your claims:")
	table(w, []string{"ID", "PURCHASE", "STATUS", "FILED"}, rows)

	if !v.showDocs {
		return
	}
	if id := v.docs.ClaimID(); id > 0 {
		fmt.Fprintf(w, "Documents of claim %d:\n", id)
	} else {
		fmt.Fprintln(w, "Your documents:")
	}
	table(w, []string{"ID", "CLAIM", "TYPE", "FILE", "UPLOADED", "VERIFIED"}, documentRows(v.docs.Documents()))
}

func documentRows(ds []models.Document) [][]string {
	rows := make([][]string, 0, len(ds))
	for _, d := range ds {
		rows = append(rows, []string{idText(d.ID), idText(d.ClaimID), d.Type, d.FileName(), date(d.UploadedAt), yesNo(d.Verified)})
	}
	return rows
}

func (v *claimView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list", "submit", "withdraw":
		v.last = v.claims
		if err := v.runClaims(ctx, cmd, args); err != nil {
			return err
		}
	case "docs", "upload", "replace", "download", "remove":
		v.last = v.docs
		if err := v.runDocs(ctx, cmd, args); err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}

func (v *claimView) runClaims(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		return v.claims.Load(ctx)
	case "submit":
		var id int64
		if len(args) > 0 {
			var err error
			if id, err = argID(args, 0, "submit <purchase id>"); err != nil {
				return err
			}
		}
		if err := v.claims.Submit(ctx, id); err != nil && !errors.Is(err, workflow.ErrNoPurchaseSelected) {
			return err
		}
		return nil
	default:
		id, err := argID(args, 0, "withdraw <id>")
		if err != nil {
			return err
		}
		return v.claims.Withdraw(ctx, id)
	}
}

func (v *claimView) runDocs(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "docs":
		var claimID int64
		if len(args) > 0 {
			var err error
			if claimID, err = argID(args, 0, "docs [claim id]"); err != nil {
				return err
			}
		}
		if err := v.docs.Load(ctx, claimID); err != nil {
			return err
		}
		v.showDocs = true
	case "upload":
		claimID, err := argID(args, 0, "upload <claim id>")
		if err != nil {
			return err
		}
		docType, err := v.app.text("Document type")
		if err != nil {
			return err
		}
		path, err := v.app.text("File path")
		if err != nil {
			return err
		}
		name, content, err := readAttachment(path)
		if err != nil {
			return err
		}
		if !v.showDocs {
			if err := v.docs.Load(ctx, claimID); err != nil {
				return err
			}
			v.showDocs = true
		}
		form := workflow.DocumentForm{ClaimID: claimID, Type: docType, FileName: name, Content: content}
		if err := v.docs.Upload(ctx, form); err != nil {
			var verr *workflow.ValidationError
			if errors.As(err, &verr) {
				return nil
			}
			return err
		}
	case "replace":
		id, err := argID(args, 0, "replace <document id>")
		if err != nil {
			return err
		}
		path, err := v.app.text("File path")
		if err != nil {
			return err
		}
		name, content, err := readAttachment(path)
		if err != nil {
			return err
		}
		if err := v.docs.Replace(ctx, id, name, content); err != nil {
			var verr *workflow.ValidationError
			if errors.As(err, &verr) {
				return nil
			}
			return err
		}
	case "download":
		id, err := argID(args, 0, "download <document id> [dir]")
		if err != nil {
			return err
		}
		dir := v.app.config.DownloadDir
		if len(args) > 1 {
			dir = args[1]
		}
		name, content, err := v.docs.Download(ctx, id)
		if err != nil {
			return err
		}
		saved, err := saveDownload(dir, name, content)
		if err != nil {
			return usagef("cannot save %s: %v", name, err)
		}
		printlnFn("Saved to " + saved)
	case "remove":
		id, err := argID(args, 0, "remove <document id>")
		if err != nil {
			return err
		}
		return v.docs.Delete(ctx, id)
	}
	return nil
}

type notificationsView struct {
	*workflow.Notifications
	app *App
}

func (v *notificationsView) Enter(ctx context.Context) error { return v.Load(ctx) }
func (v *notificationsView) title() string                   { return "Notifications" }

func (v *notificationsView) commands() []command {
	return []command{
		{"list", "reload notifications"},
		{"read <id>", "mark a notification as read"},
		{"back", "return to the dashboard"},
	}
}

func (v *notificationsView) render(w io.Writer) {
	fmt.Fprintf(w, "%d unread\n", v.Unread())
	rows := make([][]string, 0, len(v.Items()))
	for _, n := range v.Items() {
		mark := ""
		if !n.Read {
			mark = "*"
		}
		rows = append(rows, []string{mark, idText(n.ID), date(n.CreatedAt), idText(n.ClaimID), n.Message})
	}
	table(w, []string{"", "ID", "DATE", "CLAIM", "MESSAGE"}, rows)
}

func (v *notificationsView) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "list":
		if err := v.Load(ctx); err != nil {
			return err
		}
	case "read":
		id, err := argID(args, 0, "read <id>")
		if err != nil {
			return err
		}
		if err := v.MarkRead(ctx, id); err != nil {
			return err
		}
	case "back":
		return v.app.Go(workflow.PathCustomerDashboard)
	default:
		return errUnknownCommand
	}
	v.render(v.app.out)
	return nil
}
