// Package models defines the canonical client-side shapes of brokerage data.
// Wire payloads are normalised into these types by the client package; nothing
// here knows about JSON key variants.
package models

import (
	"errors"
	"strings"
)

// Role of an account.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleCustomer Role = "CUSTOMER"
)

var ErrUnknownRole = errors.New("unknown role")

// ParseRole accepts "admin"/"customer" in any case, with or without a
// ROLE_ prefix.
func ParseRole(s string) (Role, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "ROLE_")
	switch Role(v) {
	case RoleAdmin, RoleCustomer:
		return Role(v), nil
	}
	return "", ErrUnknownRole
}

// Path is the lower-case segment used in role-specific endpoints.
func (r Role) Path() string {
	return strings.ToLower(string(r))
}

// User is an account as reported by profile and user-management endpoints.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IsActive  bool   `json:"isActive"`
	PANNumber string `json:"panNumber,omitempty"`
}

// StatusText renders IsActive the way screens show it.
func (u User) StatusText() string {
	if u.IsActive {
		return "Active"
	}
	return "Inactive"
}

// Identity is the logged-in user plus the bearer token issued at login.
// IsActive is informational; the server decides what the user may do.
type Identity struct {
	User
	Token string `json:"token"`
}

func (i *Identity) IsAdmin() bool    { return i != nil && i.Role == RoleAdmin }
func (i *Identity) IsCustomer() bool { return i != nil && i.Role == RoleCustomer }

// Clone returns an independent copy, nil for nil.
func (i *Identity) Clone() *Identity {
	if i == nil {
		return nil
	}
	c := *i
	return &c
}
