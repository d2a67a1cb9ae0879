package client

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/brokerdesk/internal/client/models"
	"github.com/dmitrijs2005/brokerdesk/internal/common"
)

// flag decodes one boolean-like field. ok is false when the field is absent,
// null, or not a recognisable boolean.
func flag(raw json.RawMessage) (value bool, ok bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, false
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return false, false
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0, true
	}
	return false, false
}

// firstFlag decodes the first field present in the payload. A present field
// that is null or unrecognisable reads as false; later fields are only
// consulted when earlier ones are absent.
func firstFlag(fields ...json.RawMessage) bool {
	for _, f := range fields {
		if len(bytes.TrimSpace(f)) == 0 {
			continue
		}
		v, _ := flag(f)
		return v
	}
	return false
}

// wireTime accepts ISO dates, ISO date-times with or without zone, and the
// [y, m, d, h, min, s] array form some serialisers emit.
type wireTime struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	common.ISODate,
}

func (t *wireTime) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '[' {
		var parts []int
		if err := json.Unmarshal(b, &parts); err != nil {
			return err
		}
		for len(parts) < 6 {
			parts = append(parts, 0)
		}
		if parts[1] == 0 {
			parts[1] = 1
		}
		if parts[2] == 0 {
			parts[2] = 1
		}
		t.Time = time.Date(parts[0], time.Month(parts[1]), parts[2], parts[3], parts[4], parts[5], 0, time.UTC)
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		t.Time = time.UnixMilli(ms).UTC()
		return nil
	}
	return &time.ParseError{Layout: common.ISODate, Value: s}
}

func role(s string) models.Role {
	if r, err := models.ParseRole(s); err == nil {
		return r
	}
	return models.Role(strings.ToUpper(strings.TrimSpace(s)))
}

type userWire struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      string          `json:"role"`
	PANNumber string          `json:"panNumber"`
	IsActive  json.RawMessage `json:"isActive"`
	Active    json.RawMessage `json:"active"`
}

func (w userWire) model() models.User {
	return models.User{
		ID:        w.ID,
		Name:      w.Name,
		Email:     w.Email,
		Role:      role(w.Role),
		IsActive:  firstFlag(w.IsActive, w.Active),
		PANNumber: w.PANNumber,
	}
}

func users(ws []userWire) []models.User {
	out := make([]models.User, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out
}

type loginWire struct {
	userWire
	Token string `json:"token"`
}

type policyWire struct {
	ID       int64           `json:"policy_id,omitempty"`
	Name     string          `json:"policyName"`
	Type     string          `json:"type"`
	Premium  float64         `json:"premium"`
	Tenure   int             `json:"tenure"`
	Coverage string          `json:"coverage"`
	Active   json.RawMessage `json:"active"`
}

func (w policyWire) model() models.Policy {
	return models.Policy{
		ID:       w.ID,
		Name:     w.Name,
		Type:     w.Type,
		Premium:  w.Premium,
		Tenure:   w.Tenure,
		Coverage: w.Coverage,
		Active:   firstFlag(w.Active),
	}
}

func policyBody(p models.Policy) policyWire {
	active := json.RawMessage("false")
	if p.Active {
		active = json.RawMessage("true")
	}
	return policyWire{
		Name:     p.Name,
		Type:     p.Type,
		Premium:  p.Premium,
		Tenure:   p.Tenure,
		Coverage: p.Coverage,
		Active:   active,
	}
}

// ref is a nested object reduced to the identifiers we care about.
type ref struct {
	ID         int64 `json:"id"`
	VehicleID  int64 `json:"vehicle_id"`
	PurchaseID int64 `json:"purchaseId"`
	ClaimID    int64 `json:"claimId"`
}

func (r *ref) instanceID() int64 {
	if r == nil {
		return 0
	}
	if r.VehicleID != 0 {
		return r.VehicleID
	}
	return r.ID
}

type purchaseWire struct {
	PurchaseID   int64    `json:"purchaseId"`
	PurchaseDate wireTime `json:"purchaseDate"`
	ExpiryDate   wireTime `json:"expiryDate"`
	Status       string   `json:"status"`
	UserID       int64    `json:"userId"`
	User         *ref     `json:"user"`
	BikePolicy   *ref     `json:"bikePolicy"`
	CarPolicy    *ref     `json:"carPolicy"`
	HealthPolicy *ref     `json:"healthPolicy"`
	LifePolicy   *ref     `json:"lifePolicy"`
}

func (w purchaseWire) model() models.Purchase {
	p := models.Purchase{
		ID:           w.PurchaseID,
		PurchaseDate: w.PurchaseDate.Time,
		ExpiryDate:   w.ExpiryDate.Time,
		Status:       models.PurchaseStatus(strings.ToUpper(strings.TrimSpace(w.Status))),
		UserID:       w.UserID,
	}
	if p.UserID == 0 && w.User != nil {
		p.UserID = w.User.ID
	}
	switch {
	case w.BikePolicy != nil:
		p.Kind, p.InstanceID = models.KindBike, w.BikePolicy.instanceID()
	case w.CarPolicy != nil:
		p.Kind, p.InstanceID = models.KindCar, w.CarPolicy.instanceID()
	case w.HealthPolicy != nil:
		p.Kind, p.InstanceID = models.KindHealth, w.HealthPolicy.instanceID()
	case w.LifePolicy != nil:
		p.Kind, p.InstanceID = models.KindLife, w.LifePolicy.instanceID()
	}
	return p
}

func purchases(ws []purchaseWire) []models.Purchase {
	out := make([]models.Purchase, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out
}

type purchaseRequestWire struct {
	UserID         int64  `json:"userId"`
	BikePolicyID   *int64 `json:"bikePolicyId,omitempty"`
	CarPolicyID    *int64 `json:"carPolicyId,omitempty"`
	HealthPolicyID *int64 `json:"healthPolicyId,omitempty"`
	LifePolicyID   *int64 `json:"lifePolicyId,omitempty"`
	PurchaseDate   string `json:"purchaseDate,omitempty"`
	ExpiryDate     string `json:"expiryDate,omitempty"`
}

func purchaseRequestBody(r models.PurchaseRequest) purchaseRequestWire {
	w := purchaseRequestWire{UserID: r.UserID}
	if !r.PurchaseDate.IsZero() {
		w.PurchaseDate = r.PurchaseDate.Format(common.ISODate)
	}
	if !r.ExpiryDate.IsZero() {
		w.ExpiryDate = r.ExpiryDate.Format(common.ISODate)
	}
	if r.InstanceID != 0 {
		id := r.InstanceID
		switch r.Kind {
		case models.KindBike:
			w.BikePolicyID = &id
		case models.KindCar:
			w.CarPolicyID = &id
		case models.KindHealth:
			w.HealthPolicyID = &id
		case models.KindLife:
			w.LifePolicyID = &id
		}
	}
	return w
}

type claimWire struct {
	ClaimID     int64    `json:"claimId"`
	ID          int64    `json:"id"`
	UserID      int64    `json:"userId"`
	PurchaseID  int64    `json:"purchaseId"`
	ClaimStatus string   `json:"claimStatus"`
	UploadedAt  wireTime `json:"uploadedAt"`
	UserName    string   `json:"userName"`
	UserEmail   string   `json:"userEmail"`
	User        *struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
	Purchase *ref `json:"purchase"`
}

func (w claimWire) model() models.Claim {
	c := models.Claim{
		ID:         w.ClaimID,
		UserID:     w.UserID,
		PurchaseID: w.PurchaseID,
		Status:     models.ClaimStatus(strings.ToUpper(strings.TrimSpace(w.ClaimStatus))),
		UploadedAt: w.UploadedAt.Time,
		UserName:   w.UserName,
		UserEmail:  w.UserEmail,
	}
	if c.ID == 0 {
		c.ID = w.ID
	}
	if w.User != nil {
		if c.UserID == 0 {
			c.UserID = w.User.ID
		}
		if c.UserName == "" {
			c.UserName = w.User.Name
		}
		if c.UserEmail == "" {
			c.UserEmail = w.User.Email
		}
	}
	if c.PurchaseID == 0 && w.Purchase != nil {
		c.PurchaseID = w.Purchase.PurchaseID
	}
	return c
}

func claims(ws []claimWire) []models.Claim {
	out := make([]models.Claim, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out
}

type claimBody struct {
	UserID      int64  `json:"userId"`
	PurchaseID  int64  `json:"purchaseId"`
	ClaimStatus string `json:"claimStatus"`
}

type documentWire struct {
	DocumentID   int64           `json:"documentId"`
	ID           int64           `json:"id"`
	UserID       int64           `json:"userId"`
	ClaimID      int64           `json:"claimId"`
	DocumentType string          `json:"documentType"`
	FileURL      string          `json:"fileUrl"`
	UploadedAt   wireTime        `json:"uploadedAt"`
	Verified     json.RawMessage `json:"verified"`
}

func (w documentWire) model() models.Document {
	d := models.Document{
		ID:         w.DocumentID,
		UserID:     w.UserID,
		ClaimID:    w.ClaimID,
		Type:       w.DocumentType,
		FileURL:    w.FileURL,
		UploadedAt: w.UploadedAt.Time,
		Verified:   firstFlag(w.Verified),
	}
	if d.ID == 0 {
		d.ID = w.ID
	}
	return d
}

func documents(ws []documentWire) []models.Document {
	out := make([]models.Document, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.model())
	}
	return out
}

type notificationWire struct {
	NotificationID int64           `json:"notificationId"`
	UserID         int64           `json:"userId"`
	ClaimID        int64           `json:"claimId"`
	User           *ref            `json:"user"`
	Claim          *ref            `json:"claim"`
	Message        string          `json:"message"`
	IsRead         json.RawMessage `json:"isRead"`
	Read           json.RawMessage `json:"read"`
	CreatedAt      wireTime        `json:"createdAt"`
}

func (w notificationWire) model() models.Notification {
	n := models.Notification{
		ID:        w.NotificationID,
		UserID:    w.UserID,
		ClaimID:   w.ClaimID,
		Message:   w.Message,
		Read:      firstFlag(w.IsRead, w.Read),
		CreatedAt: w.CreatedAt.Time,
	}
	if n.UserID == 0 && w.User != nil {
		n.UserID = w.User.ID
	}
	if n.ClaimID == 0 && w.Claim != nil {
		n.ClaimID = w.Claim.ClaimID
		if n.ClaimID == 0 {
			n.ClaimID = w.Claim.ID
		}
	}
	return n
}
