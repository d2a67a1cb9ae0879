package models

import "time"

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "PENDING"
	PurchaseConfirmed PurchaseStatus = "CONFIRMED"
	PurchaseActive    PurchaseStatus = "ACTIVE"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
	PurchaseExpired   PurchaseStatus = "EXPIRED"
)

// Purchase binds a user to one confirmed policy instance.
type Purchase struct {
	ID           int64
	PurchaseDate time.Time
	ExpiryDate   time.Time
	Status       PurchaseStatus
	Kind         ProductKind
	InstanceID   int64
	UserID       int64
}

// EffectiveStatus is what screens display: CANCELLED wins, otherwise the
// purchase is ACTIVE until its expiry date passes and EXPIRED afterwards.
// It is never sent back to the server.
func (p Purchase) EffectiveStatus(now time.Time) PurchaseStatus {
	if p.Status == PurchaseCancelled {
		return PurchaseCancelled
	}
	if p.ExpiryDate.After(now) {
		return PurchaseActive
	}
	return PurchaseExpired
}

// Claimable reports whether a claim may be filed against the purchase.
func (p Purchase) Claimable() bool {
	return p.Status == PurchaseConfirmed || p.Status == PurchaseActive
}

func (p Purchase) CanRenew(now time.Time) bool {
	return p.EffectiveStatus(now) == PurchaseActive
}

func (p Purchase) CanCancel(now time.Time) bool {
	return p.EffectiveStatus(now) == PurchaseActive
}

// PurchaseRequest links an instance to a new purchase. Zero dates are left
// for the server to default.
type PurchaseRequest struct {
	UserID       int64
	Kind         ProductKind
	InstanceID   int64
	PurchaseDate time.Time
	ExpiryDate   time.Time
}

// OneYearFrom returns [day, day+1y] truncated to UTC calendar dates.
func OneYearFrom(now time.Time) (time.Time, time.Time) {
	u := now.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}
