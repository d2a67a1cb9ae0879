// Package access decides who may enter the guarded areas of the client.
package access

import "github.com/dmitrijs2005/brokerdesk/internal/client/models"

// IdentitySource yields the current identity or nil. *session.Store
// implements it.
type IdentitySource interface {
	Current() *models.Identity
}

// Predicate is evaluated before a guarded screen is built.
type Predicate func(IdentitySource) bool

// Authenticated: someone is logged in.
func Authenticated(s IdentitySource) bool {
	return s.Current() != nil
}

// Admin: logged in with the ADMIN role.
func Admin(s IdentitySource) bool {
	return s.Current().IsAdmin()
}

// Customer: logged in with the CUSTOMER role.
func Customer(s IdentitySource) bool {
	return s.Current().IsCustomer()
}

// Public lets everybody through.
func Public(IdentitySource) bool {
	return true
}
