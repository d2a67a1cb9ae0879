package workflow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"golang.org/x/sync/errgroup"
)

const (
	userActionTTL = 3 * time.Second
	guardTTL      = 3 * time.Second
)

// Approval is the admin dashboard: the admin's own profile and the accounts
// waiting for activation. Every action refetches the pending lists.
type Approval struct {
	screen
	api UserAPI

	profile          *models.User
	pendingAdmins    []models.User
	pendingCustomers []models.User
}

func NewApproval(api UserAPI) *Approval {
	return &Approval{api: api}
}

func (a *Approval) Profile() *models.User           { return a.profile }
func (a *Approval) PendingAdmins() []models.User    { return a.pendingAdmins }
func (a *Approval) PendingCustomers() []models.User { return a.pendingCustomers }

// LoadProfile fetches the header shown above the lists.
func (a *Approval) LoadProfile(ctx context.Context) error {
	u, err := a.api.Profile(ctx, models.RoleAdmin)
	if err != nil {
		return a.failWith(err, "Failed to load profile")
	}
	a.profile = &u
	return nil
}

// Load fetches both pending lists concurrently. Each list is written only by
// its own fetch, so one failing does not hide the other.
func (a *Approval) Load(ctx context.Context) error {
	a.loading = true
	defer func() { a.loading = false }()

	var (
		g                 errgroup.Group
		admins, customers []models.User
	)
	g.Go(func() error {
		var err error
		admins, err = a.api.PendingAdmins(ctx)
		if err != nil {
			return fmt.Errorf("pending admins: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		customers, err = a.api.PendingCustomers(ctx)
		if err != nil {
			return fmt.Errorf("pending customers: %w", err)
		}
		return nil
	})
	err := g.Wait()

	if admins != nil {
		a.pendingAdmins = admins
	}
	if customers != nil {
		a.pendingCustomers = customers
	}
	if err != nil {
		return a.failWith(err, "Failed to load pending users")
	}
	return nil
}

// Activate activates u through the endpoint of its role and reloads.
func (a *Approval) Activate(ctx context.Context, u models.User) error {
	msg, err := activate(ctx, a.api, u)
	if err != nil {
		a.fail(fmt.Sprintf("Failed to activate %s: %s", roleWord(u.Role), describe(err, "Unknown error")))
		return err
	}
	a.succeed(orDefault(msg, "User activated."), userActionTTL)
	return a.Load(ctx)
}

func (a *Approval) Deactivate(ctx context.Context, id int64) error {
	msg, err := a.api.DeactivateUser(ctx, id)
	if err != nil {
		a.fail("Failed to deactivate user: " + describe(err, "Unknown error"))
		return err
	}
	a.succeed(orDefault(msg, "User deactivated."), userActionTTL)
	return a.Load(ctx)
}

func activate(ctx context.Context, api UserAPI, u models.User) (string, error) {
	if u.Role == models.RoleAdmin {
		return api.ActivateAdmin(ctx, u.ID)
	}
	return api.ActivateCustomer(ctx, u.ID)
}

func roleWord(r models.Role) string {
	if r == "" {
		return "user"
	}
	return strings.ToLower(string(r))
}

// UserList is the admin view of every account with a role filter.
type UserList struct {
	screen
	api   UserAPI
	users []models.User
	role  string
}

func NewUserList(api UserAPI) *UserList {
	return &UserList{api: api, role: filterAll}
}

const filterAll = "ALL"

func (l *UserList) Load(ctx context.Context) error {
	l.loading = true
	users, err := l.api.AllUsers(ctx)
	l.loading = false
	if err != nil {
		return l.failWith(err, "Failed to load users")
	}
	l.users = users
	return nil
}

// SetRoleFilter accepts ALL, ADMIN or CUSTOMER.
func (l *UserList) SetRoleFilter(role string) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "" {
		role = filterAll
	}
	l.role = role
}

func (l *UserList) RoleFilter() string { return l.role }

func (l *UserList) Filtered() []models.User {
	if l.role == filterAll {
		return l.users
	}
	out := make([]models.User, 0, len(l.users))
	for _, u := range l.users {
		if string(u.Role) == l.role {
			out = append(out, u)
		}
	}
	return out
}

func (l *UserList) Activate(ctx context.Context, u models.User) error {
	msg, err := activate(ctx, l.api, u)
	if err != nil {
		l.fail(fmt.Sprintf("Failed to activate %s: %s", roleWord(u.Role), describe(err, "Unknown error")))
		return err
	}
	l.succeed(orDefault(msg, "User activated."), userActionTTL)
	return l.Load(ctx)
}

func (l *UserList) Deactivate(ctx context.Context, u models.User) error {
	msg, err := l.api.DeactivateUser(ctx, u.ID)
	if err != nil {
		l.fail("Failed to deactivate user: " + describe(err, "Unknown error"))
		return err
	}
	l.succeed(orDefault(msg, "User deactivated."), userActionTTL)
	return l.Load(ctx)
}

var (
	ErrAlreadyActive   = errors.New("user already active")
	ErrAlreadyInactive = errors.New("user already inactive")
	ErrSelfAction      = errors.New("cannot change own account")
	ErrNoUserSelected  = errors.New("no user selected")
)

// Directory finds one account by email or id and lets an admin toggle it.
type Directory struct {
	screen
	api     UserAPI
	session Session
	found   *models.User
}

func NewDirectory(api UserAPI, s Session) *Directory {
	return &Directory{api: api, session: s}
}

func (d *Directory) Found() *models.User { return d.found }

// Find looks a user up. by is "email" or "id".
func (d *Directory) Find(ctx context.Context, by, value string) error {
	d.found = nil
	value = strings.TrimSpace(value)

	var c checker
	c.required(value, "searchValue")
	var id int64
	switch by {
	case "email":
	case "id":
		n, err := strconv.ParseInt(value, 10, 64)
		c.check(err == nil && n > 0, "searchValue", "must be a positive number")
		id = n
	default:
		c.add("searchType", "must be email or id")
	}
	if err := c.err(); err != nil {
		return d.failWith(err, "")
	}

	d.loading = true
	var (
		u   models.User
		err error
	)
	if by == "email" {
		u, err = d.api.FindUserByEmail(ctx, value)
	} else {
		u, err = d.api.FindUserByID(ctx, id)
	}
	d.loading = false
	if err != nil {
		return d.failWith(err, "User not found. Please check your search criteria.")
	}
	d.found = &u
	d.succeed("User found successfully!", userActionTTL)
	return nil
}

func (d *Directory) Clear() {
	d.found = nil
	d.flash = nil
}

func (d *Directory) isSelf(u *models.User) bool {
	me := d.session.Current()
	return me != nil && me.ID == u.ID
}

func (d *Directory) Activate(ctx context.Context) error {
	u := d.found
	if u == nil {
		return ErrNoUserSelected
	}
	if u.IsActive {
		d.failFor(fmt.Sprintf("This %s is already active!", roleWord(u.Role)), guardTTL)
		return ErrAlreadyActive
	}
	if d.isSelf(u) {
		d.failFor("You cannot activate your own account!", guardTTL)
		return ErrSelfAction
	}

	msg, err := activate(ctx, d.api, *u)
	if err != nil {
		d.fail(fmt.Sprintf("Failed to activate %s: %s", roleWord(u.Role), describe(err, "Unknown error occurred")))
		return err
	}
	d.succeed(orDefault(msg, "User activated."), userActionTTL)
	d.refresh(ctx)
	return nil
}

func (d *Directory) Deactivate(ctx context.Context) error {
	u := d.found
	if u == nil {
		return ErrNoUserSelected
	}
	if !u.IsActive {
		d.failFor(fmt.Sprintf("This %s is already inactive!", roleWord(u.Role)), guardTTL)
		return ErrAlreadyInactive
	}
	if d.isSelf(u) {
		d.failFor("You cannot deactivate your own account!", guardTTL)
		return ErrSelfAction
	}

	msg, err := d.api.DeactivateUser(ctx, u.ID)
	if err != nil {
		d.failFor("Failed to deactivate user: "+describe(err, "Unknown error occurred"), guardTTL)
		return err
	}
	d.succeed(orDefault(msg, "User deactivated."), userActionTTL)
	d.refresh(ctx)
	return nil
}

// refresh re-reads the found user; on failure the old copy stays.
func (d *Directory) refresh(ctx context.Context) {
	if d.found == nil {
		return
	}
	u, err := d.api.FindUserByID(ctx, d.found.ID)
	if err != nil {
		return
	}
	d.found = &u
}
