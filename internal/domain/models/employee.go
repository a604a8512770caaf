package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee payment kinds.
const (
	PaymentSalary  = "salary"
	PaymentAdvance = "advance"
)

// EmployeePayment is one wage or advance payment made to a farm worker.
type EmployeePayment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID    string             `bson:"farm_id" json:"farm_id"`
	Employee  string             `bson:"employee" json:"employee"`
	Date      string             `bson:"date" json:"date"`
	Kind      string             `bson:"kind" json:"kind"`
	Amount    string             `bson:"amount" json:"amount"`
	Note      string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
