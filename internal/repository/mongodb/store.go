// Package mongodb is the document-store adapter. Every collection is scoped
// by farm_id; the store only ever hands out point-in-time snapshots, and all
// merge-on-write behavior lives in the update operators used here, never in
// the services consuming the data.
package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// Collection names.
const (
	collUsers      = "users"
	collCustomers  = "customers"
	collMilkDays   = "milk_days"
	collOrders     = "purchase_orders"
	collReceivings = "receiving_records"
	collCash       = "cash_entries"
	collExpenses   = "expense_entries"
	collAnimals    = "animals"
	collMedical    = "medical_records"
	collPayments   = "employee_payments"
	collNotes      = "notes"
	collSnapshots  = "monthly_snapshots"
	collCounters   = "counters"
)

// Store implements every repository interface against a single MongoDB
// database.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to MongoDB and verifies the connection.
func NewStore(ctx context.Context, uri string, dbName string) (*Store, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Store{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

// EnsureIndexes creates the unique and range indexes the queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string]mongo.IndexModel{
		collUsers: {
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: unique,
		},
		collCustomers: {
			Keys:    bson.D{{Key: "farm_id", Value: 1}, {Key: "number", Value: 1}},
			Options: unique,
		},
		collMilkDays: {
			Keys:    bson.D{{Key: "farm_id", Value: 1}, {Key: "date", Value: 1}},
			Options: unique,
		},
		collOrders: {
			Keys: bson.D{{Key: "farm_id", Value: 1}, {Key: "ordered_at", Value: -1}},
		},
		collReceivings: {
			Keys: bson.D{{Key: "order_id", Value: 1}, {Key: "received_at", Value: 1}},
		},
		collSnapshots: {
			Keys:    bson.D{{Key: "farm_id", Value: 1}, {Key: "month", Value: 1}},
			Options: unique,
		},
	}

	for name, model := range indexes {
		if _, err := s.db.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", name, err)
		}
	}

	return nil
}

// Close closes the MongoDB connection.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// nextSequence atomically increments a named counter and returns its value.
func (s *Store) nextSequence(ctx context.Context, key string) (int64, error) {
	var doc struct {
		Value int64 `bson:"value"`
	}

	err := s.db.Collection(collCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": key},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", key, err)
	}

	return doc.Value, nil
}
