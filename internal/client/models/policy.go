package models

// Policy is a catalogue product managed by admins and browsed by customers.
// Type is free text; bike, car, health and life map onto purchasable kinds.
type Policy struct {
	ID       int64
	Name     string
	Type     string
	Premium  float64
	Tenure   int // months
	Coverage string
	Active   bool
}
