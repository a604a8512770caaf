package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a farm account. The account's hex ObjectID doubles as the farm id
// scoping every other collection. The passkey hash backs the confirmation
// check required before destructive actions; the 4-digit secret itself is
// never stored.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email        string             `bson:"email" json:"email"`
	FarmName     string             `bson:"farm_name" json:"farm_name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	PasskeyHash  string             `bson:"passkey_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}
