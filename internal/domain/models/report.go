package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SnapshotRow is the flattened, string-valued form of a customer summary as
// stored inside a monthly snapshot document.
type SnapshotRow struct {
	Number       string `bson:"number" json:"number"`
	Name         string `bson:"name" json:"name"`
	CowTotal     string `bson:"cow_total" json:"cow_total"`
	BuffaloTotal string `bson:"buffalo_total" json:"buffalo_total"`
	GrandTotal   string `bson:"grand_total" json:"grand_total"`
	Amount       string `bson:"amount" json:"amount"`
}

// MonthlySnapshot persists a computed monthly report so past months survive
// later rate or customer edits.
type MonthlySnapshot struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID      string             `bson:"farm_id" json:"farm_id"`
	Month       string             `bson:"month" json:"month"`
	Rows        []SnapshotRow      `bson:"rows" json:"rows"`
	TotalLiters string             `bson:"total_liters" json:"total_liters"`
	TotalAmount string             `bson:"total_amount" json:"total_amount"`
	CashIn      string             `bson:"cash_in" json:"cash_in"`
	CashOut     string             `bson:"cash_out" json:"cash_out"`
	Expenses    string             `bson:"expenses" json:"expenses"`
	ComputedAt  time.Time          `bson:"computed_at" json:"computed_at"`
}

// MonthlyReport is the assembled view served to clients and exporters.
type MonthlyReport struct {
	Month     string            `json:"month"`
	Summaries []CustomerSummary `json:"summaries"`
	Ledger    LedgerTotals      `json:"ledger"`
}
