package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Animal is one head of livestock in the farm inventory.
type Animal struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID    string             `bson:"farm_id" json:"farm_id"`
	Tag       string             `bson:"tag" json:"tag"`
	Species   Species            `bson:"species" json:"species"`
	Breed     string             `bson:"breed,omitempty" json:"breed,omitempty"`
	BornOn    string             `bson:"born_on,omitempty" json:"born_on,omitempty"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// MedicalRecord is one treatment entry against an animal.
type MedicalRecord struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FarmID    string             `bson:"farm_id" json:"farm_id"`
	AnimalID  string             `bson:"animal_id" json:"animal_id"`
	Date      string             `bson:"date" json:"date"`
	Ailment   string             `bson:"ailment" json:"ailment"`
	Medicine  string             `bson:"medicine,omitempty" json:"medicine,omitempty"`
	Cost      string             `bson:"cost,omitempty" json:"cost,omitempty"`
	Vet       string             `bson:"vet,omitempty" json:"vet,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
