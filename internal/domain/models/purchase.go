package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Purchase order statuses. Transitions are recomputed from the full item set
// on every receiving event, never incremented.
const (
	OrderStatusPending   = "Pending"
	OrderStatusPartially = "Partially Received"
	OrderStatusReceived  = "Received"
)

// LineItem is one row of a purchase order. Quantity and price are kept as
// entered; malformed values degrade to zero during computation.
type LineItem struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Qty   string `bson:"qty" json:"qty"`
	Unit  string `bson:"unit" json:"unit"`
	Price string `bson:"price" json:"price"`
}

// PurchaseOrder is an order placed with a vendor. Receiving events transition
// the status but never mutate the ordered line items.
type PurchaseOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID      string             `bson:"farm_id" json:"farm_id"`
	Number      string             `bson:"number" json:"number"`
	Vendor      string             `bson:"vendor" json:"vendor"`
	OrderedAt   time.Time          `bson:"ordered_at" json:"ordered_at"`
	Items       []LineItem         `bson:"items" json:"items"`
	TotalAmount string             `bson:"total_amount" json:"total_amount"`
	Status      string             `bson:"status" json:"status"`
}

// ReceivedItem is a line-item snapshot inside a receiving record: the
// original fields plus the quantity received in that event.
type ReceivedItem struct {
	LineItem    `bson:",inline"`
	ReceivedQty string `bson:"received_qty" json:"received_qty"`
}

// ReceivingRecord captures one receiving event against an order. Records are
// append-only; each partial delivery produces a new one.
type ReceivingRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID      string             `bson:"farm_id" json:"farm_id"`
	OrderID     string             `bson:"order_id" json:"order_id"`
	OrderNumber string             `bson:"order_number" json:"order_number"`
	Vendor      string             `bson:"vendor" json:"vendor"`
	Items       []ReceivedItem     `bson:"items" json:"items"`
	Status      string             `bson:"status" json:"status"`
	ReceivedAt  time.Time          `bson:"received_at" json:"received_at"`
}
