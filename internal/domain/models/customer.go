package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is a milk-buying customer of a farm. Customers are referenced from
// shift records by their account number, never by storage key, so historical
// records survive customer deletion. Rates and the standing debit are kept as
// the operator-entered strings; an empty value contributes zero.
type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID      string             `bson:"farm_id" json:"farm_id"`
	Number      string             `bson:"number" json:"number"`
	Name        string             `bson:"name" json:"name"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	CowRate     string             `bson:"cow_rate,omitempty" json:"cow_rate,omitempty"`
	BuffaloRate string             `bson:"buffalo_rate,omitempty" json:"buffalo_rate,omitempty"`
	DebitAmount string             `bson:"debit_amount,omitempty" json:"debit_amount,omitempty"`
}

// CustomerSummary is the derived per-customer billing view for a date range.
// It is computed, never persisted as-is; monthly snapshots store a flattened
// string form instead.
type CustomerSummary struct {
	Number         string          `json:"number"`
	Name           string          `json:"name"`
	CowMorning     decimal.Decimal `json:"cow_morning"`
	CowEvening     decimal.Decimal `json:"cow_evening"`
	BuffaloMorning decimal.Decimal `json:"buffalo_morning"`
	BuffaloEvening decimal.Decimal `json:"buffalo_evening"`
	CowTotal       decimal.Decimal `json:"cow_total"`
	BuffaloTotal   decimal.Decimal `json:"buffalo_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	Amount         decimal.Decimal `json:"amount"`
}

// CustomerStatement extends a summary with the settlement figures shown on
// the customer detail screen. FinalAmount may be negative when the standing
// debit exceeds the billed amount; a negative value is a credit owed to the
// customer and is displayed as-is.
type CustomerStatement struct {
	CustomerSummary
	DebitAmount decimal.Decimal `json:"debit_amount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}
