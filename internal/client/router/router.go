// Package router maps screen paths to guarded screen factories and keeps
// track of the screen on display.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/access"
	"github.com/dmitrijs2005/brokerdesk/internal/client/workflow"
	"github.com/dmitrijs2005/brokerdesk/internal/logging"
)

// Screen is what a route builds. Enter runs once the screen is current; ctx
// is cancelled when the router leaves the screen.
type Screen interface {
	Enter(ctx context.Context) error
}

// Params are the query parameters of the navigated path.
type Params struct {
	url.Values
}

// Route binds a path to its guard and factory.
type Route struct {
	Path  string
	Guard access.Predicate
	Build func(p Params) Screen
}

// Current is the screen on display.
type Current struct {
	Path   string
	Params Params
	Screen Screen

	ctx context.Context
}

// Context lives as long as the screen stays current.
func (c *Current) Context() context.Context { return c.ctx }

var ErrNoScreen = errors.New("no screen")

// wait is a test seam for delayed redirects.
var wait = func(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type Router struct {
	base     context.Context
	identity access.IdentitySource
	log      logging.Logger
	fallback string

	mu      sync.Mutex
	routes  map[string]Route
	current *Current
	cancel  context.CancelFunc
}

// New returns a router whose screens derive their contexts from base.
// Unknown paths and refused guards land on fallback.
func New(base context.Context, identity access.IdentitySource, log logging.Logger, fallback string, routes ...Route) *Router {
	r := &Router{
		base:     base,
		identity: identity,
		log:      log,
		fallback: fallback,
		routes:   make(map[string]Route, len(routes)),
	}
	for _, rt := range routes {
		r.routes[normalize(rt.Path)] = rt
	}
	return r
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}

// Current returns the screen on display, nil before the first navigation.
func (r *Router) Current() *Current {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// resolve picks the route for target, falling back when the path is unknown
// or its guard refuses the current identity.
func (r *Router) resolve(target string) (Route, Params, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil {
		return Route{}, Params{}, fmt.Errorf("parse %q: %w", target, err)
	}
	path := normalize(u.Path)
	if path == "" {
		path = r.fallback
	}

	rt, ok := r.routes[path]
	switch {
	case !ok:
		r.log.Warn(r.base, "unknown path", "path", path)
	case rt.Guard != nil && !rt.Guard(r.identity):
		r.log.Info(r.base, "guard refused", "path", path)
		ok = false
	}
	if !ok {
		rt, ok = r.routes[r.fallback]
		if !ok {
			return Route{}, Params{}, fmt.Errorf("fallback %q: %w", r.fallback, ErrNoScreen)
		}
		return rt, Params{Values: url.Values{}}, nil
	}
	return rt, Params{Values: u.Query()}, nil
}

// Navigate leaves the current screen, cancelling its context, and enters
// the screen for target. The error of Enter is returned with the new
// screen; the screen is current either way.
func (r *Router) Navigate(target string) (*Current, error) {
	rt, params, err := r.resolve(target)
	if err != nil {
		return r.Current(), err
	}

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(r.base)
	cur := &Current{Path: normalize(rt.Path), Params: params, ctx: ctx}
	r.current, r.cancel = cur, cancel
	r.mu.Unlock()

	r.log.Debug(ctx, "enter screen", "path", cur.Path)
	cur.Screen = rt.Build(params)
	return cur, cur.Screen.Enter(ctx)
}

// Follow waits out a delayed redirect on the current screen's context and
// navigates. Leaving the screen first abandons the redirect.
func (r *Router) Follow(rd *workflow.Redirect) (*Current, error) {
	cur := r.Current()
	if rd == nil || cur == nil {
		return cur, nil
	}
	if err := wait(cur.ctx, rd.After); err != nil {
		return r.Current(), err
	}
	return r.Navigate(rd.Path)
}

// Revalidate re-runs the guard of the current screen and returns to the
// fallback if it no longer passes, e.g. after the session was cleared. It
// reports whether it navigated.
func (r *Router) Revalidate() (*Current, bool, error) {
	cur := r.Current()
	if cur == nil {
		return nil, false, nil
	}
	rt, ok := r.routes[cur.Path]
	if !ok || rt.Guard == nil || rt.Guard(r.identity) {
		return cur, false, nil
	}
	next, err := r.Navigate(r.fallback)
	return next, true, err
}

// Close cancels the current screen.
func (r *Router) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
