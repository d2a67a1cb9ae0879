package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

type PurchaseState string

const (
	StateNew         PurchaseState = "NEW"
	StateCalculating PurchaseState = "CALCULATING"
	StatePending     PurchaseState = "PENDING"
	StateConfirmed   PurchaseState = "CONFIRMED"
	StateCancelled   PurchaseState = "CANCELLED"
)

var (
	ErrNothingToConfirm = errors.New("nothing to confirm")
	ErrPurchaseClosed   = errors.New("purchase already confirmed")
	errMissingID        = errors.New("server returned no id for the saved instance")
)

const msgNothingToConfirm = "Nothing to confirm. Please calculate and save first."

const (
	savedTTL        = 2500 * time.Millisecond
	updatedTTL      = 2 * time.Second
	confirmedTTL    = 2 * time.Second
	confirmRedirect = 800 * time.Millisecond
	cancelledTTL    = 2 * time.Second
)

// Instance is a saved policy instance of any family.
type Instance interface {
	InstanceID() int64
}

// Form is the rating form of one product family.
type Form[T any] interface {
	Validate() error
	// Rating is the instance sent for pricing: inputs only, figures zeroed.
	Rating(userID int64) T
	// Priced is the instance saved after pricing.
	Priced(userID int64, q models.Quote) T
}

// Purchase drives calculate → save pending → confirm for one instance.
// At most one pending instance is tracked: recalculating updates it.
type Purchase[T Instance] struct {
	screen
	gw      ProductGateway[T]
	session Session

	state    PurchaseState
	entityID int64
	quote    models.Quote
	saved    T
}

func NewPurchase[T Instance](gw ProductGateway[T], s Session) *Purchase[T] {
	return &Purchase[T]{gw: gw, session: s, state: StateNew}
}

func (p *Purchase[T]) Kind() models.ProductKind { return p.gw.Kind() }
func (p *Purchase[T]) State() PurchaseState     { return p.state }
func (p *Purchase[T]) EntityID() int64          { return p.entityID }
func (p *Purchase[T]) Quote() models.Quote      { return p.quote }
func (p *Purchase[T]) Saved() T                 { return p.saved }

// Calculate prices the form and saves the result as the tracked pending
// instance. An invalid form sends nothing and leaves the state alone.
func (p *Purchase[T]) Calculate(ctx context.Context, form Form[T]) error {
	if p.state == StateConfirmed {
		return p.failWith(ErrPurchaseClosed, "This purchase is already confirmed.")
	}
	if err := form.Validate(); err != nil {
		return p.failWith(err, "")
	}
	user, err := currentUser(p.session)
	if err != nil {
		return p.failWith(err, msgNotAuthenticated)
	}

	p.state = StateCalculating
	q, err := p.gw.Calculate(ctx, form.Rating(user.ID))
	if err != nil {
		p.settle()
		return p.failWith(err, "Failed to calculate premium.")
	}
	p.quote = q
	in := form.Priced(user.ID, q)
	kind := p.gw.Kind()

	if p.entityID == 0 {
		saved, err := p.gw.Add(ctx, in)
		if err == nil && saved.InstanceID() == 0 {
			err = errMissingID
		}
		if err != nil {
			p.settle()
			return p.failWith(err, fmt.Sprintf("Failed to save %s.", kind.Noun()))
		}
		p.entityID, p.saved = saved.InstanceID(), saved
		p.state = StatePending
		p.succeed(kind.Label()+" saved (Pending).", savedTTL)
		return nil
	}

	saved, err := p.gw.Update(ctx, p.entityID, in)
	if err != nil {
		p.settle()
		return p.failWith(err, fmt.Sprintf("Failed to update %s.", kind.Noun()))
	}
	if saved.InstanceID() == p.entityID {
		p.saved = saved
	}
	p.state = StatePending
	p.succeed(kind.Label()+" updated.", updatedTTL)
	return nil
}

// settle is where a failed calculation lands.
func (p *Purchase[T]) settle() {
	if p.entityID != 0 {
		p.state = StatePending
	} else {
		p.state = StateNew
	}
}

// Confirm links the pending instance to a purchase valid for one year from
// today.
func (p *Purchase[T]) Confirm(ctx context.Context) error {
	if p.state == StateConfirmed {
		return p.failWith(ErrPurchaseClosed, "This purchase is already confirmed.")
	}
	if p.entityID == 0 {
		return p.failWith(ErrNothingToConfirm, msgNothingToConfirm)
	}
	user, err := currentUser(p.session)
	if err != nil {
		return p.failWith(err, msgNotAuthenticated)
	}

	start, end := models.OneYearFrom(clock())
	_, err = p.gw.Confirm(ctx, p.entityID, models.PurchaseRequest{
		UserID:       user.ID,
		PurchaseDate: start,
		ExpiryDate:   end,
	})
	if err != nil {
		return p.failWith(err, "Failed to complete purchase.")
	}

	p.state = StateConfirmed
	p.succeed("Purchase confirmed!", confirmedTTL)
	p.redirectTo(PathMyPurchases, confirmRedirect)
	return nil
}

// Cancel discards the pending instance on the server and starts over.
func (p *Purchase[T]) Cancel(ctx context.Context) error {
	if p.state == StateConfirmed {
		return p.failWith(ErrPurchaseClosed, "This purchase is already confirmed.")
	}
	if p.entityID != 0 {
		if err := p.gw.CancelPending(ctx, p.entityID); err != nil {
			return p.failWith(err, "Failed to cancel pending details.")
		}
		p.state = StateCancelled
		p.succeed("Pending details cancelled.", cancelledTTL)
	}
	p.reset()
	return nil
}

func (p *Purchase[T]) reset() {
	var zero T
	p.entityID, p.quote, p.saved = 0, models.Quote{}, zero
	p.state = StateNew
}

// VehicleForm rates a bike or a car.
type VehicleForm struct {
	CC                 int
	AgeInMonths        int
	Manufacturer       string
	RegistrationNumber string
}

func (f VehicleForm) Validate() error {
	var c checker
	c.check(f.CC >= 1, "cc", "must be at least 1")
	c.check(f.AgeInMonths >= 0, "ageInMonths", "must not be negative")
	c.required(f.Manufacturer, "manufacturerName")
	c.required(f.RegistrationNumber, "registrationNumber")
	return c.err()
}

func (f VehicleForm) Rating(userID int64) models.Vehicle {
	return models.Vehicle{
		CC:                 f.CC,
		AgeInMonths:        f.AgeInMonths,
		Manufacturer:       f.Manufacturer,
		RegistrationNumber: f.RegistrationNumber,
		UserID:             userID,
	}
}

func (f VehicleForm) Priced(userID int64, q models.Quote) models.Vehicle {
	v := f.Rating(userID)
	q.Apply(&v)
	return v
}

type HealthForm struct {
	Age         int
	Members     int
	SumInsured  float64
	Smoker      bool
	PreExisting bool
}

func (f HealthForm) Validate() error {
	var c checker
	c.check(f.Age >= 1 && f.Age <= 100, "age", "must be between 1 and 100")
	c.check(f.Members >= 1, "numberOfMembers", "must be at least 1")
	c.check(f.SumInsured >= 10000, "sumInsured", "must be at least 10000")
	return c.err()
}

func (f HealthForm) Rating(userID int64) models.Health {
	return models.Health{
		Age:         f.Age,
		Members:     f.Members,
		SumInsured:  f.SumInsured,
		Smoker:      f.Smoker,
		PreExisting: f.PreExisting,
		UserID:      userID,
	}
}

func (f HealthForm) Priced(userID int64, q models.Quote) models.Health {
	h := f.Rating(userID)
	h.Premium = q.Premium
	return h
}

type LifeForm struct {
	Age            int
	Gender         string
	SumAssured     float64
	PolicyTerm     int
	Smoker         bool
	OccupationRisk string
}

// NewLifeForm returns a form with the default occupation risk.
func NewLifeForm() LifeForm {
	return LifeForm{OccupationRisk: "low"}
}

func (f LifeForm) Validate() error {
	var c checker
	c.check(f.Age >= 18 && f.Age <= 70, "age", "must be between 18 and 70")
	c.required(f.Gender, "gender")
	c.check(f.SumAssured >= 100000, "sumAssured", "must be at least 100000")
	c.check(f.PolicyTerm >= 1, "policyTerm", "must be at least 1")
	c.required(f.OccupationRisk, "occupationRisk")
	return c.err()
}

func (f LifeForm) Rating(userID int64) models.Life {
	return models.Life{
		Age:            f.Age,
		Gender:         f.Gender,
		SumAssured:     f.SumAssured,
		PolicyTerm:     f.PolicyTerm,
		Smoker:         f.Smoker,
		OccupationRisk: f.OccupationRisk,
		UserID:         userID,
	}
}

func (f LifeForm) Priced(userID int64, q models.Quote) models.Life {
	l := f.Rating(userID)
	l.Premium = q.Premium
	return l
}
