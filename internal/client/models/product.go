package models

import (
	"fmt"
	"strings"
)

// ProductKind is one of the purchasable policy families.
type ProductKind string

const (
	KindBike   ProductKind = "bike"
	KindCar    ProductKind = "car"
	KindHealth ProductKind = "health"
	KindLife   ProductKind = "life"
)

var Kinds = []ProductKind{KindBike, KindCar, KindHealth, KindLife}

func ParseProductKind(s string) (ProductKind, error) {
	k := ProductKind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindBike, KindCar, KindHealth, KindLife:
		return k, nil
	}
	return "", fmt.Errorf("invalid policy type %q", s)
}

// IsVehicle reports whether the kind is rated with vehicle inputs.
func (k ProductKind) IsVehicle() bool {
	return k == KindBike || k == KindCar
}

// InstanceStatus is the lifecycle state of a rated policy instance.
type InstanceStatus string

const (
	InstancePending   InstanceStatus = "PENDING"
	InstanceConfirmed InstanceStatus = "CONFIRMED"
	InstanceCancelled InstanceStatus = "CANCELLED"
)

// Vehicle is a bike or car instance.
type Vehicle struct {
	ID                   int64
	CC                   int
	AgeInMonths          int
	IDV                  float64
	Manufacturer         string
	RegistrationNumber   string
	ThirdPartyPremium    float64
	ComprehensivePremium float64
	UserID               int64
	PurchaseID           int64
	Status               InstanceStatus
}

type Health struct {
	ID          int64
	Age         int
	Members     int
	SumInsured  float64
	Smoker      bool
	PreExisting bool
	Premium     float64
	UserID      int64
	Status      InstanceStatus
}

type Life struct {
	ID             int64
	Age            int
	Gender         string
	SumAssured     float64
	PolicyTerm     int
	Smoker         bool
	OccupationRisk string
	Premium        float64
	UserID         int64
	Status         InstanceStatus
}

// Quote is the outcome of a premium calculation. Vehicles fill IDV and the
// two premiums; health and life fill Premium only.
type Quote struct {
	IDV                  float64
	ThirdPartyPremium    float64
	ComprehensivePremium float64
	Premium              float64
}

// Apply copies the quoted figures onto a vehicle.
func (q Quote) Apply(v *Vehicle) {
	v.IDV = q.IDV
	v.ThirdPartyPremium = q.ThirdPartyPremium
	v.ComprehensivePremium = q.ComprehensivePremium
}

// InstanceID returns the server id of a saved instance, 0 before the first
// save.
func (v Vehicle) InstanceID() int64 { return v.ID }
func (h Health) InstanceID() int64  { return h.ID }
func (l Life) InstanceID() int64    { return l.ID }

// Label is how screens name the kind in messages, capitalised: "Bike
// details", "Health insurance".
func (k ProductKind) Label() string {
	switch k {
	case KindBike:
		return "Bike details"
	case KindCar:
		return "Car details"
	case KindHealth:
		return "Health insurance"
	case KindLife:
		return "Life insurance"
	}
	return string(k)
}

// Noun is the lower-case name used in failure messages.
func (k ProductKind) Noun() string {
	switch k {
	case KindHealth:
		return "health insurance"
	case KindLife:
		return "life insurance"
	}
	return string(k)
}
