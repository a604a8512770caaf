package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// PaymentRepository stores employee payment history.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.EmployeePayment) (*models.EmployeePayment, error)
	DeletePayment(ctx context.Context, farmID, id string) error
	ListPayments(ctx context.Context, farmID, start, end string) ([]models.EmployeePayment, error)
}

// NoteRepository stores free-form notes.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (*models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) error
	DeleteNote(ctx context.Context, farmID, id string) error
	ListNotes(ctx context.Context, farmID string) ([]models.Note, error)
}

// CreatePayment inserts an employee payment row.
func (s *Store) CreatePayment(ctx context.Context, payment models.EmployeePayment) (*models.EmployeePayment, error) {
	payment.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collPayments).InsertOne(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	return &payment, nil
}

// DeletePayment removes an employee payment row.
func (s *Store) DeletePayment(ctx context.Context, farmID, id string) error {
	return s.deleteByID(ctx, collPayments, farmID, id)
}

// ListPayments returns payments with dates in [start, end].
func (s *Store) ListPayments(ctx context.Context, farmID, start, end string) ([]models.EmployeePayment, error) {
	cursor, err := s.db.Collection(collPayments).Find(ctx,
		dateRangeFilter(farmID, start, end),
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}

	var payments []models.EmployeePayment
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("failed to decode payments: %w", err)
	}

	return payments, nil
}

// CreateNote inserts a note.
func (s *Store) CreateNote(ctx context.Context, note models.Note) (*models.Note, error) {
	note.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collNotes).InsertOne(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to insert note: %w", err)
	}

	return &note, nil
}

// UpdateNote replaces a note's title and body.
func (s *Store) UpdateNote(ctx context.Context, note models.Note) error {
	res, err := s.db.Collection(collNotes).UpdateOne(ctx,
		bson.M{"_id": note.ID, "farm_id": note.FarmID},
		bson.M{"$set": bson.M{
			"title":      note.Title,
			"body":       note.Body,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteNote removes a note.
func (s *Store) DeleteNote(ctx context.Context, farmID, id string) error {
	return s.deleteByID(ctx, collNotes, farmID, id)
}

// ListNotes returns the farm's notes, newest first.
func (s *Store) ListNotes(ctx context.Context, farmID string) ([]models.Note, error) {
	cursor, err := s.db.Collection(collNotes).Find(ctx,
		bson.M{"farm_id": farmID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}

	var notes []models.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}

	return notes, nil
}
