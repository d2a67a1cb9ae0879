package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/access"
	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/config"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/client/router"
	"github.com/dmitrijs2005/brokerdesk/internal/client/session"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
)

// Session is the part of *session.Store the REPL uses.
type Session interface {
	workflow.Session
	TokenInfo() (session.TokenInfo, error)
	Subscribe() (<-chan *models.Identity, func())
}

var _ Session = (*session.Store)(nil)

// view is a screen as the REPL shows it.
type view interface {
	router.Screen
	Flash() *workflow.Flash
	TakeRedirect() *workflow.Redirect

	title() string
	commands() []command
	render(w io.Writer)
	// run handles a screen command; errUnknownCommand if it has none by
	// that name.
	run(ctx context.Context, cmd string, args []string) error
}

type command struct {
	name  string
	usage string
}

var errUnknownCommand = errors.New("unknown command")

type App struct {
	config  *config.Config
	api     client.Client
	session Session
	router  *router.Router
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer

	shown workflow.Flash
}

// NewApp wires the screens to api and s. ctx bounds every screen.
func NewApp(ctx context.Context, c *config.Config, api client.Client, s Session, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		config:  c,
		api:     api,
		session: s,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}
	a.router = router.New(ctx, s, log, workflow.PathLogin, router.Table(a.factories())...)
	return a
}

// Run shows the start screen and blocks in the REPL until the user exits or
// ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.router.Close()

	printlnFn("Welcome to brokerdesk (type 'help' for commands)")
	go a.StartSessionWatcher(ctx)

	start := workflow.PathLogin
	if id := a.session.Current(); id != nil {
		start = workflow.DashboardFor(id.IsAdmin())
	}
	a.show(a.router.Navigate(start))
	a.Settle()

	runREPL(ctx, a, a.status, a.reader)
}

// StartSessionWatcher logs every change of the logged-in identity until
// ctx is done.
func (a *App) StartSessionWatcher(ctx context.Context) {
	ch, stop := a.session.Subscribe()
	defer stop()

	first := true
	for {
		select {
		case id, ok := <-ch:
			if !ok {
				return
			}
			if first {
				first = false
				continue
			}
			if id == nil {
				a.log.Info(ctx, "session ended")
			} else {
				a.log.Info(ctx, "session started", "email", id.Email, "role", id.Role)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) status() string {
	var parts []string
	if id := a.session.Current(); id != nil {
		parts = append(parts, fmt.Sprintf("%s %s", id.Email, id.Role))
	}
	if cur := a.router.Current(); cur != nil {
		parts = append(parts, cur.Path)
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, " "))
}

func (a *App) current() view {
	cur := a.router.Current()
	if cur == nil {
		return nil
	}
	v, _ := cur.Screen.(view)
	return v
}

// show prints a freshly entered screen.
func (a *App) show(cur *router.Current, err error) {
	if err != nil {
		a.log.Debug(context.Background(), "enter screen", "error", err)
	}
	if cur == nil {
		if err != nil {
			printlnFn("error:", err)
		}
		return
	}
	v, ok := cur.Screen.(view)
	if !ok {
		return
	}
	printlnFn(fmt.Sprintf("== %s (%s) ==", v.title(), cur.Path))
	v.render(a.out)
}

// Settle prints a new flash of the current screen, follows its redirect
// and leaves screens the session no longer allows.
func (a *App) Settle() {
	for range 4 {
		v := a.current()
		if v == nil {
			return
		}
		if f := v.Flash(); f != nil && *f != a.shown {
			a.shown = *f
			printlnFn(flashLine(f))
		}

		if rd := v.TakeRedirect(); rd != nil {
			if rd.After > 0 {
				printlnFn(fmt.Sprintf("Redirecting to %s in %s...", rd.Path, rd.After.Round(100*time.Millisecond)))
			}
			a.show(a.router.Follow(rd))
			continue
		}

		cur, moved, err := a.router.Revalidate()
		if !moved {
			return
		}
		printlnFn("Your session has ended. Please log in again.")
		a.show(cur, err)
	}
}

func (a *App) Help() string {
	var b strings.Builder
	b.WriteString("Global commands: help, go <path>, home, screens, whoami, logout, exit\n")
	if v := a.current(); v != nil {
		b.WriteString(v.title() + " commands:\n")
		for _, c := range v.commands() {
			fmt.Fprintf(&b, "  %-28s %s\n", c.name, c.usage)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Go navigates to target, a screen path with an optional query.
func (a *App) Go(target string) error {
	cur, err := a.router.Navigate(target)
	a.show(cur, err)
	return err
}

// Home goes to the dashboard of the logged-in user, or to the login screen.
func (a *App) Home() error {
	id := a.session.Current()
	if id == nil {
		return a.Go(workflow.PathLogin)
	}
	return a.Go(workflow.DashboardFor(id.IsAdmin()))
}

// Screens lists the paths the current identity may enter.
func (a *App) Screens() {
	for _, p := range router.Paths() {
		if router.Allowed(p, a.session) {
			printlnFn("  " + p)
		}
	}
}

// WhoAmI prints the logged-in user and what the bearer token says about
// itself.
func (a *App) WhoAmI() error {
	if !access.Authenticated(a.session) {
		printlnFn("Not logged in.")
		return nil
	}
	id := a.session.Current()
	fields(a.out,
		"Name", id.Name,
		"Email", id.Email,
		"Role", string(id.Role),
		"Status", id.StatusText(),
	)

	info, err := a.session.TokenInfo()
	if err != nil {
		printlnFn("Token: opaque")
		return nil
	}
	exp := "never"
	if !info.ExpiresAt.IsZero() {
		exp = info.ExpiresAt.Local().Format(time.DateTime)
		if info.Expired(time.Now()) {
			exp += " (expired)"
		}
	}
	fields(a.out, "Token subject", info.Subject, "Token expires", exp)
	return nil
}

// Logout forgets the session and returns to the login screen.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		a.log.Warn(ctx, "clear session", "error", err)
	}
	printlnFn("Logged out.")
	return a.Go(workflow.PathLogin)
}

// Dispatch hands a command to the current screen.
func (a *App) Dispatch(ctx context.Context, cmd string, args []string) error {
	v := a.current()
	if v == nil {
		return errUnknownCommand
	}
	cur := a.router.Current()
	if cur != nil {
		ctx = cur.Context()
	}

	err := v.run(ctx, cmd, args)
	var usage usageError
	switch {
	case errors.As(err, &usage):
		printlnFn(usage.msg)
	case errors.Is(err, errUnknownCommand):
	case err != nil:
		a.log.Debug(ctx, "command failed", "cmd", cmd, "error", err)
	}
	return err
}

type flasher interface {
	Flash() *workflow.Flash
	TakeRedirect() *workflow.Redirect
}

// focus forwards banner and redirect of whichever controller acted last on
// screens that host more than one.
type focus struct {
	last flasher
}

func (f *focus) Flash() *workflow.Flash {
	if f.last == nil {
		return nil
	}
	return f.last.Flash()
}

func (f *focus) TakeRedirect() *workflow.Redirect {
	if f.last == nil {
		return nil
	}
	return f.last.TakeRedirect()
}
