// Package common contains constants and sentinel errors shared by the
// brokerdesk client packages.
package common

const (
	// AuthorizationHeader carries the bearer token on authenticated calls.
	AuthorizationHeader = "Authorization"
	// BearerPrefix precedes the token inside AuthorizationHeader.
	BearerPrefix = "Bearer "
	// RequestIDHeader tags each outbound request for log correlation.
	RequestIDHeader = "X-Request-ID"

	// ISODate is the wire layout of purchase and expiry dates.
	ISODate = "2006-01-02"
)
