package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// DateLayout is the canonical key format for daily records. The fixed-width,
// zero-padded form makes lexicographic range queries on the date key valid.
const DateLayout = "2006-01-02"

// MonthLayout keys monthly reports and snapshots.
const MonthLayout = "2006-01"

// Species is a milk-source category tracked with its own per-liter rate.
type Species string

// Shift is one of the two daily collection windows.
type Shift string

const (
	SpeciesCow     Species = "cow"
	SpeciesBuffalo Species = "buffalo"

	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// ShiftTally maps a customer account number to the liters they supplied in
// one shift, kept as the operator-entered string. Absent customers mean zero.
type ShiftTally map[string]string

// DailyShiftRecord is one document per (farm, calendar date). Each shift
// field is replaced wholesale when the operator saves that shift's entry
// screen; the other shifts on the same date are untouched.
type DailyShiftRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID         string             `bson:"farm_id" json:"farm_id"`
	Date           string             `bson:"date" json:"date"`
	CowMorning     ShiftTally         `bson:"cow_morning" json:"cow_morning"`
	CowEvening     ShiftTally         `bson:"cow_evening" json:"cow_evening"`
	BuffaloMorning ShiftTally         `bson:"buffalo_morning" json:"buffalo_morning"`
	BuffaloEvening ShiftTally         `bson:"buffalo_evening" json:"buffalo_evening"`
}

// ShiftField resolves a (species, shift) pair to its document field name.
// The same names are used as storage keys and API path segments.
func ShiftField(species Species, shift Shift) (string, bool) {
	switch {
	case species == SpeciesCow && shift == ShiftMorning:
		return "cow_morning", true
	case species == SpeciesCow && shift == ShiftEvening:
		return "cow_evening", true
	case species == SpeciesBuffalo && shift == ShiftMorning:
		return "buffalo_morning", true
	case species == SpeciesBuffalo && shift == ShiftEvening:
		return "buffalo_evening", true
	}
	return "", false
}

// Tally returns the shift mapping stored under the given field name.
func (r *DailyShiftRecord) Tally(field string) ShiftTally {
	switch field {
	case "cow_morning":
		return r.CowMorning
	case "cow_evening":
		return r.CowEvening
	case "buffalo_morning":
		return r.BuffaloMorning
	case "buffalo_evening":
		return r.BuffaloEvening
	}
	return nil
}

// SetTally replaces the shift mapping stored under the given field name.
func (r *DailyShiftRecord) SetTally(field string, tally ShiftTally) {
	switch field {
	case "cow_morning":
		r.CowMorning = tally
	case "cow_evening":
		r.CowEvening = tally
	case "buffalo_morning":
		r.BuffaloMorning = tally
	case "buffalo_evening":
		r.BuffaloEvening = tally
	}
}
