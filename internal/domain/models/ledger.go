package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cash entry kinds.
const (
	CashIn  = "in"
	CashOut = "out"
)

// CashEntry is one row of the farm's cash ledger.
type CashEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID    string             `bson:"farm_id" json:"farm_id"`
	Date      string             `bson:"date" json:"date"`
	Kind      string             `bson:"kind" json:"kind"`
	Amount    string             `bson:"amount" json:"amount"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// ExpenseEntry is one row of the expense ledger.
type ExpenseEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID    string             `bson:"farm_id" json:"farm_id"`
	Date      string             `bson:"date" json:"date"`
	Category  string             `bson:"category" json:"category"`
	Amount    string             `bson:"amount" json:"amount"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// LedgerTotals summarizes a ledger over a date range.
type LedgerTotals struct {
	CashIn   string `json:"cash_in"`
	CashOut  string `json:"cash_out"`
	Expenses string `json:"expenses"`
}
