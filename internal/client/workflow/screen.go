package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/client"
	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// clock is a test seam for the current time.
var clock = time.Now

// Session is what controllers need from the session store.
type Session interface {
	Current() *models.Identity
	Set(ctx context.Context, id models.Identity) error
	Clear(ctx context.Context) error
}

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

const errorTTL = 5 * time.Second

// Flash is a banner that disappears on its own.
type Flash struct {
	Kind      FlashKind
	Text      string
	ExpiresAt time.Time
}

// Redirect asks the router to navigate once After has elapsed.
type Redirect struct {
	Path  string
	After time.Duration
}

// screen is the state every controller shares.
type screen struct {
	flash    *Flash
	redirect *Redirect
	loading  bool
}

// Flash returns the current banner, or nil once it expired.
func (s *screen) Flash() *Flash {
	if s.flash == nil || !clock().Before(s.flash.ExpiresAt) {
		return nil
	}
	f := *s.flash
	return &f
}

func (s *screen) Loading() bool { return s.loading }

// TakeRedirect returns the pending redirect and forgets it.
func (s *screen) TakeRedirect() *Redirect {
	r := s.redirect
	s.redirect = nil
	return r
}

func (s *screen) succeed(text string, ttl time.Duration) {
	s.flash = &Flash{Kind: FlashSuccess, Text: text, ExpiresAt: clock().Add(ttl)}
}

func (s *screen) fail(text string) {
	s.failFor(text, errorTTL)
}

func (s *screen) failFor(text string, ttl time.Duration) {
	s.flash = &Flash{Kind: FlashError, Text: text, ExpiresAt: clock().Add(ttl)}
}

// failWith flashes the message behind err and returns err.
func (s *screen) failWith(err error, fallback string) error {
	s.fail(describe(err, fallback))
	return err
}

func (s *screen) redirectTo(path string, after time.Duration) {
	s.redirect = &Redirect{Path: path, After: after}
}

// describe turns err into the one line a screen shows: validation details,
// else the server's own message, else fallback.
func describe(err error, fallback string) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// currentUser returns the id of the logged-in user or ErrNotLoggedIn.
func currentUser(s Session) (*models.Identity, error) {
	id := s.Current()
	if id == nil {
		return nil, ErrNotLoggedIn
	}
	return id, nil
}

var ErrNotLoggedIn = errors.New("not logged in")

const msgNotAuthenticated = "User not authenticated"
