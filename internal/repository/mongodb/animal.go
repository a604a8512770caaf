package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// AnimalRepository stores the livestock inventory and medical history.
type AnimalRepository interface {
	CreateAnimal(ctx context.Context, animal models.Animal) (*models.Animal, error)
	UpdateAnimal(ctx context.Context, animal models.Animal) error
	DeleteAnimal(ctx context.Context, farmID, id string) error
	GetAnimal(ctx context.Context, farmID, id string) (*models.Animal, error)
	ListAnimals(ctx context.Context, farmID string) ([]models.Animal, error)
	CreateMedicalRecord(ctx context.Context, record models.MedicalRecord) (*models.MedicalRecord, error)
	ListMedicalRecords(ctx context.Context, farmID, animalID string) ([]models.MedicalRecord, error)
}

// CreateAnimal inserts a new animal.
func (s *Store) CreateAnimal(ctx context.Context, animal models.Animal) (*models.Animal, error) {
	animal.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collAnimals).InsertOne(ctx, animal); err != nil {
		return nil, fmt.Errorf("failed to insert animal: %w", err)
	}

	return &animal, nil
}

// UpdateAnimal replaces the editable fields of an animal.
func (s *Store) UpdateAnimal(ctx context.Context, animal models.Animal) error {
	res, err := s.db.Collection(collAnimals).UpdateOne(ctx,
		bson.M{"_id": animal.ID, "farm_id": animal.FarmID},
		bson.M{"$set": bson.M{
			"tag":     animal.Tag,
			"species": animal.Species,
			"breed":   animal.Breed,
			"born_on": animal.BornOn,
			"status":  animal.Status,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update animal: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAnimal removes an animal from the inventory.
func (s *Store) DeleteAnimal(ctx context.Context, farmID, id string) error {
	return s.deleteByID(ctx, collAnimals, farmID, id)
}

// GetAnimal fetches one animal.
func (s *Store) GetAnimal(ctx context.Context, farmID, id string) (*models.Animal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var animal models.Animal
	err = s.db.Collection(collAnimals).
		FindOne(ctx, bson.M{"_id": oid, "farm_id": farmID}).
		Decode(&animal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load animal: %w", err)
	}

	return &animal, nil
}

// ListAnimals returns the farm's animal inventory.
func (s *Store) ListAnimals(ctx context.Context, farmID string) ([]models.Animal, error) {
	cursor, err := s.db.Collection(collAnimals).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return nil, fmt.Errorf("failed to query animals: %w", err)
	}

	var animals []models.Animal
	if err := cursor.All(ctx, &animals); err != nil {
		return nil, fmt.Errorf("failed to decode animals: %w", err)
	}

	return animals, nil
}

// CreateMedicalRecord appends a treatment entry to an animal's history.
func (s *Store) CreateMedicalRecord(ctx context.Context, record models.MedicalRecord) (*models.MedicalRecord, error) {
	record.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collMedical).InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert medical record: %w", err)
	}

	return &record, nil
}

// ListMedicalRecords returns an animal's treatment history, oldest first.
func (s *Store) ListMedicalRecords(ctx context.Context, farmID, animalID string) ([]models.MedicalRecord, error) {
	cursor, err := s.db.Collection(collMedical).Find(ctx,
		bson.M{"farm_id": farmID, "animal_id": animalID},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query medical records: %w", err)
	}

	var records []models.MedicalRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode medical records: %w", err)
	}

	return records, nil
}
