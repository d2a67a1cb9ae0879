package common

import "errors"

var (
	// ErrInvalidToken is returned when a bearer token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")

	// ErrNoSession is returned by operations that need a logged-in user.
	ErrNoSession = errors.New("not logged in")
)
