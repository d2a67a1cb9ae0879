package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
)

// Product is the sub-client of one policy family. All four families share
// the same lifecycle: calculate a premium, save a PENDING instance, confirm
// it into a purchase, or cancel it.
type Product[T any] struct {
	c          *HTTPClient
	kind       models.ProductKind
	base       string
	addPath    string
	updatePath string // printf format taking the id
	encode     func(T) any
	decode     func(json.RawMessage) (T, error)
	quote      func([]byte) (models.Quote, error)
}

func (p *Product[T]) Kind() models.ProductKind { return p.kind }

// Calculate asks the server to price in without saving anything.
func (p *Product[T]) Calculate(ctx context.Context, in T) (models.Quote, error) {
	body, err := p.c.do(ctx, request{method: http.MethodPost, path: p.base + "/calculate-premium", auth: true, body: p.encode(in)})
	if err != nil {
		return models.Quote{}, err
	}
	q, err := p.quote(body)
	if err != nil {
		return models.Quote{}, fmt.Errorf("decode %s quote: %w", p.kind, err)
	}
	return q, nil
}

// Add saves a new PENDING instance.
func (p *Product[T]) Add(ctx context.Context, in T) (T, error) {
	return p.one(ctx, request{method: http.MethodPost, path: p.base + p.addPath, auth: true, body: p.encode(in)})
}

// Update rewrites a saved instance in place.
func (p *Product[T]) Update(ctx context.Context, id int64, in T) (T, error) {
	return p.one(ctx, request{method: http.MethodPut, path: p.base + idPath(p.updatePath, id), auth: true, body: p.encode(in)})
}

// Confirm turns a PENDING instance into a purchase.
func (p *Product[T]) Confirm(ctx context.Context, id int64, r models.PurchaseRequest) (T, error) {
	r.Kind, r.InstanceID = p.kind, id
	return p.one(ctx, request{method: http.MethodPost, path: p.base + idPath("/confirm/%d", id), auth: true, body: purchaseRequestBody(r)})
}

// CancelPending discards an unconfirmed instance.
func (p *Product[T]) CancelPending(ctx context.Context, id int64) error {
	_, err := p.c.do(ctx, request{method: http.MethodDelete, path: p.base + idPath("/cancel/%d", id), auth: true})
	return err
}

// CancelConfirmed cancels an instance that was already purchased.
func (p *Product[T]) CancelConfirmed(ctx context.Context, id int64) error {
	_, err := p.c.do(ctx, request{method: http.MethodPut, path: p.base + idPath("/cancel/%d", id), auth: true})
	return err
}

// List returns the caller's instances of this family.
func (p *Product[T]) List(ctx context.Context) ([]T, error) {
	var raws []json.RawMessage
	if err := p.c.doJSON(ctx, request{method: http.MethodGet, path: p.base + "/get", auth: true}, &raws); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		v, err := p.decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", p.kind, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func (p *Product[T]) Delete(ctx context.Context, id int64) error {
	_, err := p.c.do(ctx, request{method: http.MethodDelete, path: p.base + idPath("/delete/%d", id), auth: true})
	return err
}

func (p *Product[T]) one(ctx context.Context, r request) (T, error) {
	var zero T
	body, err := p.c.do(ctx, r)
	if err != nil {
		return zero, err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return zero, nil
	}
	v, err := p.decode(body)
	if err != nil {
		return zero, fmt.Errorf("decode %s: %w", p.kind, err)
	}
	return v, nil
}

func (c *HTTPClient) Bikes() *Product[models.Vehicle] {
	return &Product[models.Vehicle]{
		c: c, kind: models.KindBike, base: "/api/customer/bike",
		addPath: "/addBike", updatePath: "/updateBike/%d",
		encode: func(v models.Vehicle) any { return vehicleBody(models.KindBike, v) },
		decode: decodeVehicle, quote: vehicleQuote,
	}
}

func (c *HTTPClient) Cars() *Product[models.Vehicle] {
	return &Product[models.Vehicle]{
		c: c, kind: models.KindCar, base: "/api/customer/car",
		addPath: "/addCar", updatePath: "/updateCar/%d",
		encode: func(v models.Vehicle) any { return vehicleBody(models.KindCar, v) },
		decode: decodeVehicle, quote: vehicleQuote,
	}
}

func (c *HTTPClient) Health() *Product[models.Health] {
	return &Product[models.Health]{
		c: c, kind: models.KindHealth, base: "/api/customer/health",
		addPath: "/addHealth", updatePath: "/update/%d",
		encode: func(h models.Health) any { return healthBody(h) },
		decode: decodeHealth, quote: annualQuote,
	}
}

func (c *HTTPClient) Life() *Product[models.Life] {
	return &Product[models.Life]{
		c: c, kind: models.KindLife, base: "/api/customer/life",
		addPath: "/addLife", updatePath: "/updateLife/%d",
		encode: func(l models.Life) any { return lifeBody(l) },
		decode: decodeLife, quote: annualQuote,
	}
}

// Bikes use vehicle_id, cars use id; both are accepted on the way in.
type vehicleWire struct {
	VehicleID            int64   `json:"vehicle_id,omitempty"`
	ID                   int64   `json:"id,omitempty"`
	CC                   int     `json:"cc"`
	AgeInMonths          int     `json:"ageinMonths"`
	IDV                  float64 `json:"idv"`
	Manufacturer         string  `json:"manufacturerName"`
	RegistrationNumber   string  `json:"registrationNumber"`
	ThirdPartyPremium    float64 `json:"thirdPartyPremium"`
	ComprehensivePremium float64 `json:"comprehensivePremium"`
	UserID               int64   `json:"userid,omitempty"`
	PurchaseID           int64   `json:"purchaseId,omitempty"`
	Status               string  `json:"status,omitempty"`
}

func vehicleBody(kind models.ProductKind, v models.Vehicle) vehicleWire {
	w := vehicleWire{
		CC:                   v.CC,
		AgeInMonths:          v.AgeInMonths,
		IDV:                  v.IDV,
		Manufacturer:         v.Manufacturer,
		RegistrationNumber:   v.RegistrationNumber,
		ThirdPartyPremium:    v.ThirdPartyPremium,
		ComprehensivePremium: v.ComprehensivePremium,
		UserID:               v.UserID,
		PurchaseID:           v.PurchaseID,
		Status:               string(v.Status),
	}
	if kind == models.KindBike {
		w.VehicleID = v.ID
	} else {
		w.ID = v.ID
	}
	return w
}

func decodeVehicle(raw json.RawMessage) (models.Vehicle, error) {
	var w vehicleWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Vehicle{}, err
	}
	id := w.VehicleID
	if id == 0 {
		id = w.ID
	}
	return models.Vehicle{
		ID:                   id,
		CC:                   w.CC,
		AgeInMonths:          w.AgeInMonths,
		IDV:                  w.IDV,
		Manufacturer:         w.Manufacturer,
		RegistrationNumber:   w.RegistrationNumber,
		ThirdPartyPremium:    w.ThirdPartyPremium,
		ComprehensivePremium: w.ComprehensivePremium,
		UserID:               w.UserID,
		PurchaseID:           w.PurchaseID,
		Status:               instanceStatus(w.Status),
	}, nil
}

type healthWire struct {
	ID          int64   `json:"id,omitempty"`
	Age         int     `json:"age"`
	Members     int     `json:"numberOfMembers"`
	SumInsured  float64 `json:"sumInsured"`
	Smoker      bool    `json:"smoker"`
	PreExisting bool    `json:"preExisting"`
	Premium     float64 `json:"premium"`
	UserID      int64   `json:"user_id,omitempty"`
	Status      string  `json:"status,omitempty"`
}

func healthBody(h models.Health) healthWire {
	return healthWire{
		ID: h.ID, Age: h.Age, Members: h.Members, SumInsured: h.SumInsured,
		Smoker: h.Smoker, PreExisting: h.PreExisting, Premium: h.Premium,
		UserID: h.UserID, Status: string(h.Status),
	}
}

func decodeHealth(raw json.RawMessage) (models.Health, error) {
	var w healthWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Health{}, err
	}
	return models.Health{
		ID: w.ID, Age: w.Age, Members: w.Members, SumInsured: w.SumInsured,
		Smoker: w.Smoker, PreExisting: w.PreExisting, Premium: w.Premium,
		UserID: w.UserID, Status: instanceStatus(w.Status),
	}, nil
}

type lifeWire struct {
	ID             int64   `json:"id,omitempty"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	SumAssured     float64 `json:"sumAssured"`
	PolicyTerm     int     `json:"policyTerm"`
	Smoker         bool    `json:"smoker"`
	OccupationRisk string  `json:"occupationRisk"`
	Premium        float64 `json:"premium"`
	UserID         int64   `json:"user_id,omitempty"`
	Status         string  `json:"status,omitempty"`
}

func lifeBody(l models.Life) lifeWire {
	return lifeWire{
		ID: l.ID, Age: l.Age, Gender: l.Gender, SumAssured: l.SumAssured,
		PolicyTerm: l.PolicyTerm, Smoker: l.Smoker, OccupationRisk: l.OccupationRisk,
		Premium: l.Premium, UserID: l.UserID, Status: string(l.Status),
	}
}

func decodeLife(raw json.RawMessage) (models.Life, error) {
	var w lifeWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return models.Life{}, err
	}
	return models.Life{
		ID: w.ID, Age: w.Age, Gender: w.Gender, SumAssured: w.SumAssured,
		PolicyTerm: w.PolicyTerm, Smoker: w.Smoker, OccupationRisk: w.OccupationRisk,
		Premium: w.Premium, UserID: w.UserID, Status: instanceStatus(w.Status),
	}, nil
}

// instanceStatus treats a missing status as PENDING, which is how the
// server creates instances.
func instanceStatus(s string) models.InstanceStatus {
	if s == "" {
		return models.InstancePending
	}
	return models.InstanceStatus(s)
}

func vehicleQuote(body []byte) (models.Quote, error) {
	var m map[string]float64
	if err := json.Unmarshal(body, &m); err != nil {
		return models.Quote{}, err
	}
	return models.Quote{
		IDV:                  m["idv"],
		ThirdPartyPremium:    m["thirdPartyPremium"],
		ComprehensivePremium: m["comprehensivePremium"],
	}, nil
}

// annualQuote accepts a bare number, a numeric string, or an object with
// annualPremium.
func annualQuote(body []byte) (models.Quote, error) {
	text := bytes.TrimSpace(body)

	var n float64
	if err := json.Unmarshal(text, &n); err == nil {
		return models.Quote{Premium: n}, nil
	}
	var obj struct {
		AnnualPremium *float64 `json:"annualPremium"`
		Premium       *float64 `json:"premium"`
	}
	if err := json.Unmarshal(text, &obj); err == nil {
		switch {
		case obj.AnnualPremium != nil:
			return models.Quote{Premium: *obj.AnnualPremium}, nil
		case obj.Premium != nil:
			return models.Quote{Premium: *obj.Premium}, nil
		}
	}
	n, err := strconv.ParseFloat(string(bytes.Trim(text, `"`)), 64)
	if err != nil {
		return models.Quote{}, fmt.Errorf("unexpected premium %q", text)
	}
	return models.Quote{Premium: n}, nil
}
