// ABOUTME: Body Measurement model and the plausible-range table for each field.
// ABOUTME: Ranges are checked at the input boundary only; storage accepts any value.
package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid marks input that fails boundary validation.
var ErrInvalid = errors.New("invalid input")

// ErrOutOfRange marks a measurement outside its plausible range.
var ErrOutOfRange = fmt.Errorf("%w: out of range", ErrInvalid)

// MeasurementField describes one numeric column of a Measurement.
type MeasurementField struct {
	Name    string  `json:"name"`
	Column  string  `json:"-"`
	Unit    string  `json:"unit"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Step    float64 `json:"step"`
}

// MeasurementFields lists the fields in chart order.
var MeasurementFields = []MeasurementField{
	{Name: "abdomen", Column: "abdomen", Unit: "cm", Min: 40, Max: 200, Default: 80, Step: 0.5},
	{Name: "waist", Column: "cintura", Unit: "cm", Min: 30, Max: 180, Default: 75, Step: 0.5},
	{Name: "chest", Column: "pecho", Unit: "cm", Min: 60, Max: 220, Default: 100, Step: 0.5},
	{Name: "arm", Column: "brazo", Unit: "cm", Min: 15, Max: 80, Default: 30, Step: 0.1},
	{Name: "leg", Column: "pierna", Unit: "cm", Min: 30, Max: 120, Default: 55, Step: 0.1},
	{Name: "weight", Column: "peso", Unit: "kg", Min: 30, Max: 300, Default: 70, Step: 0.1},
}

// Measurement is a dated set of body measurements.
type Measurement struct {
	ID      int64   `db:"id" json:"id" yaml:"id"`
	UserID  int64   `db:"usuario_id" json:"user_id" yaml:"user_id"`
	Date    Date    `db:"fecha" json:"date" yaml:"date"`
	Abdomen float64 `db:"abdomen" json:"abdomen" yaml:"abdomen"`
	Waist   float64 `db:"cintura" json:"waist" yaml:"waist"`
	Arm     float64 `db:"brazo" json:"arm" yaml:"arm"`
	Chest   float64 `db:"pecho" json:"chest" yaml:"chest"`
	Leg     float64 `db:"pierna" json:"leg" yaml:"leg"`
	Weight  float64 `db:"peso" json:"weight" yaml:"weight"`
	Notes   string  `db:"notas" json:"notes" yaml:"notes"`
}

// NewMeasurement returns a measurement pre-filled with each field's default.
func NewMeasurement(userID int64, date Date) *Measurement {
	m := &Measurement{UserID: userID, Date: date}
	for _, f := range MeasurementFields {
		m.Set(f.Name, f.Default)
	}
	return m
}

// WithNotes sets notes on the measurement.
func (m *Measurement) WithNotes(notes string) *Measurement {
	m.Notes = notes
	return m
}

// Get returns the value of the named field.
func (m *Measurement) Get(name string) (float64, bool) {
	switch name {
	case "abdomen":
		return m.Abdomen, true
	case "waist":
		return m.Waist, true
	case "chest":
		return m.Chest, true
	case "arm":
		return m.Arm, true
	case "leg":
		return m.Leg, true
	case "weight":
		return m.Weight, true
	}
	return 0, false
}

// Set assigns the named field. Unknown names are ignored and report false.
func (m *Measurement) Set(name string, v float64) bool {
	switch name {
	case "abdomen":
		m.Abdomen = v
	case "waist":
		m.Waist = v
	case "chest":
		m.Chest = v
	case "arm":
		m.Arm = v
	case "leg":
		m.Leg = v
	case "weight":
		m.Weight = v
	default:
		return false
	}
	return true
}

// Validate checks every field against its plausible range.
func (m *Measurement) Validate() error {
	if m.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalid)
	}
	for _, f := range MeasurementFields {
		v, _ := m.Get(f.Name)
		if math.IsNaN(v) || v < f.Min || v > f.Max {
			return fmt.Errorf("%w: %s %.1f%s not in [%g, %g]", ErrOutOfRange, f.Name, v, f.Unit, f.Min, f.Max)
		}
	}
	return nil
}
