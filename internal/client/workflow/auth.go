package workflow

import (
	"context"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

const (
	registerRedirect       = 2 * time.Second
	forgotPasswordRedirect = 2 * time.Second
	changePasswordRedirect = 3 * time.Second
	accountTTL             = 3 * time.Second
)

// Login authenticates and stores the identity in the session.
type Login struct {
	screen
	api     AuthAPI
	session Session
}

func NewLogin(api AuthAPI, s Session) *Login {
	return &Login{api: api, session: s}
}

type Credentials struct {
	Role     models.Role
	Email    string
	Password string
}

func (c Credentials) Validate() error {
	var v checker
	v.check(c.Role == models.RoleAdmin || c.Role == models.RoleCustomer, "role", "must be ADMIN or CUSTOMER")
	v.email(c.Email, "email")
	v.password(c.Password, "password")
	return v.err()
}

// Submit logs in and sends the user to the dashboard of the role the server
// reports.
func (l *Login) Submit(ctx context.Context, c Credentials) error {
	if c.Role == "" {
		c.Role = models.RoleCustomer
	}
	if err := c.Validate(); err != nil {
		return l.failWith(err, "")
	}

	l.loading = true
	id, err := l.api.Login(ctx, c.Role, c.Email, c.Password)
	l.loading = false
	if err != nil {
		return l.failWith(err, "Login failed. Please try again.")
	}
	if id.Role == "" {
		id.Role = c.Role
	}
	if err := l.session.Set(ctx, id); err != nil {
		return l.failWith(err, "Login failed. Please try again.")
	}

	l.redirectTo(DashboardFor(id.IsAdmin()), 0)
	return nil
}

type RegistrationForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	PANNumber       string
	Role            models.Role
}

func (f RegistrationForm) Validate() error {
	var c checker
	c.required(f.Name, "name")
	c.check(len([]rune(f.Name)) >= 2, "name", "must be at least 2 characters")
	c.email(f.Email, "email")
	c.password(f.Password, "password")
	c.check(f.ConfirmPassword == f.Password, "confirmPassword", "passwords do not match")
	c.required(f.PANNumber, "panNumber")
	c.check(panPattern.MatchString(f.PANNumber), "panNumber", "must look like ABCDE1234F")
	c.check(f.Role == models.RoleAdmin || f.Role == models.RoleCustomer, "role", "must be ADMIN or CUSTOMER")
	return c.err()
}

type Registration struct {
	screen
	api AuthAPI
}

func NewRegistration(api AuthAPI) *Registration {
	return &Registration{api: api}
}

// Submit creates the account and sends the user to the login screen.
func (r *Registration) Submit(ctx context.Context, f RegistrationForm) error {
	if err := f.Validate(); err != nil {
		return r.failWith(err, "")
	}

	r.loading = true
	msg, err := r.api.Register(ctx, client.Registration{
		Name:      f.Name,
		Email:     f.Email,
		Password:  f.Password,
		PANNumber: f.PANNumber,
		Role:      string(f.Role),
	})
	r.loading = false
	if err != nil {
		return r.failWith(err, "Registration failed. Please try again.")
	}

	r.succeed(orDefault(msg, "Registration successful!"), accountTTL)
	r.redirectTo(PathLogin, registerRedirect)
	return nil
}

type ForgotPasswordForm struct {
	Email       string
	PANNumber   string
	NewPassword string
}

func (f ForgotPasswordForm) Validate() error {
	var c checker
	c.email(f.Email, "email")
	c.required(f.PANNumber, "panNumber")
	c.check(panPattern.MatchString(f.PANNumber), "panNumber", "must look like ABCDE1234F")
	c.password(f.NewPassword, "newPassword")
	return c.err()
}

type ForgotPassword struct {
	screen
	api AuthAPI
}

func NewForgotPassword(api AuthAPI) *ForgotPassword {
	return &ForgotPassword{api: api}
}

func (p *ForgotPassword) Submit(ctx context.Context, f ForgotPasswordForm) error {
	if err := f.Validate(); err != nil {
		return p.failWith(err, "")
	}

	msg, err := p.api.ForgotPassword(ctx, f.Email, f.PANNumber, f.NewPassword)
	if err != nil {
		return p.failWith(err, "Password reset failed. Please try again.")
	}

	p.succeed(orDefault(msg, "Password reset successful."), accountTTL)
	p.redirectTo(PathLogin, forgotPasswordRedirect)
	return nil
}

type ChangePasswordForm struct {
	Email           string
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

func (f ChangePasswordForm) Validate() error {
	var c checker
	c.email(f.Email, "email")
	c.required(f.OldPassword, "oldPassword")
	c.password(f.NewPassword, "newPassword")
	c.check(f.ConfirmPassword == f.NewPassword, "confirmPassword", "passwords do not match")
	return c.err()
}

type ChangePassword struct {
	screen
	api     AuthAPI
	session Session
}

func NewChangePassword(api AuthAPI, s Session) *ChangePassword {
	return &ChangePassword{api: api, session: s}
}

// Form returns an empty form with the email of the logged-in user.
func (p *ChangePassword) Form() ChangePasswordForm {
	var f ChangePasswordForm
	if id := p.session.Current(); id != nil {
		f.Email = id.Email
	}
	return f
}

// Back is the dashboard of the logged-in user, or the login screen.
func (p *ChangePassword) Back() string {
	id := p.session.Current()
	if id == nil {
		return PathLogin
	}
	return DashboardFor(id.IsAdmin())
}

func (p *ChangePassword) Submit(ctx context.Context, f ChangePasswordForm) error {
	if id := p.session.Current(); id != nil {
		f.Email = id.Email
	}
	if err := f.Validate(); err != nil {
		return p.failWith(err, "")
	}

	p.loading = true
	msg, err := p.api.ChangePassword(ctx, f.Email, f.OldPassword, f.NewPassword)
	p.loading = false
	if err != nil {
		return p.failWith(err, "Password change failed. Please try again.")
	}

	p.succeed(orDefault(msg, "Password changed successfully."), accountTTL)
	p.redirectTo(PathLogin, changePasswordRedirect)
	return nil
}

// Profile shows the logged-in user as the server reports it.
type Profile struct {
	screen
	api     AuthAPI
	session Session
	user    *models.User
}

func NewProfile(api AuthAPI, s Session) *Profile {
	return &Profile{api: api, session: s}
}

func (p *Profile) User() *models.User { return p.user }

func (p *Profile) Load(ctx context.Context) error {
	id, err := currentUser(p.session)
	if err != nil {
		return p.failWith(err, msgNotAuthenticated)
	}

	p.loading = true
	u, err := p.api.Profile(ctx, id.Role)
	p.loading = false
	if err != nil {
		return p.failWith(err, "Failed to load profile.")
	}
	p.user = &u
	return nil
}

// Logout forgets the session and returns to the login screen.
func (p *Profile) Logout(ctx context.Context) error {
	err := p.session.Clear(ctx)
	p.redirectTo(PathLogin, 0)
	return err
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
