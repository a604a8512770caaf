package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// ErrDuplicateNumber is returned when a customer account number is already
// taken on the farm.
var ErrDuplicateNumber = errors.New("customer number already in use")

// CustomerRepository stores the farm's customer book.
type CustomerRepository interface {
	CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, customer models.Customer) error
	DeleteCustomer(ctx context.Context, farmID, id string) error
	GetCustomer(ctx context.Context, farmID, id string) (*models.Customer, error)
	GetCustomerByNumber(ctx context.Context, farmID, number string) (*models.Customer, error)
	ListCustomers(ctx context.Context, farmID string) ([]models.Customer, error)
}

// CreateCustomer inserts a new customer.
func (s *Store) CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	customer.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collCustomers).InsertOne(ctx, customer); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("failed to insert customer: %w", err)
	}

	return &customer, nil
}

// UpdateCustomer replaces the editable fields of an existing customer. The
// account number is stable and never changes after creation.
func (s *Store) UpdateCustomer(ctx context.Context, customer models.Customer) error {
	res, err := s.db.Collection(collCustomers).UpdateOne(ctx,
		bson.M{"_id": customer.ID, "farm_id": customer.FarmID},
		bson.M{"$set": bson.M{
			"name":         customer.Name,
			"phone":        customer.Phone,
			"cow_rate":     customer.CowRate,
			"buffalo_rate": customer.BuffaloRate,
			"debit_amount": customer.DebitAmount,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteCustomer removes a customer. Historical shift records keep referring
// to the deleted account number; aggregation drops those entries.
func (s *Store) DeleteCustomer(ctx context.Context, farmID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection(collCustomers).DeleteOne(ctx, bson.M{"_id": oid, "farm_id": farmID})
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// GetCustomer fetches a customer by storage id.
func (s *Store) GetCustomer(ctx context.Context, farmID, id string) (*models.Customer, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var customer models.Customer
	err = s.db.Collection(collCustomers).
		FindOne(ctx, bson.M{"_id": oid, "farm_id": farmID}).
		Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}

	return &customer, nil
}

// GetCustomerByNumber fetches a customer by account number.
func (s *Store) GetCustomerByNumber(ctx context.Context, farmID, number string) (*models.Customer, error) {
	var customer models.Customer

	err := s.db.Collection(collCustomers).
		FindOne(ctx, bson.M{"farm_id": farmID, "number": number}).
		Decode(&customer)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %s: %w", number, err)
	}

	return &customer, nil
}

// ListCustomers returns the full customer book for a farm.
func (s *Store) ListCustomers(ctx context.Context, farmID string) ([]models.Customer, error) {
	cursor, err := s.db.Collection(collCustomers).Find(ctx, bson.M{"farm_id": farmID})
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	var customers []models.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("failed to decode customers: %w", err)
	}

	return customers, nil
}
