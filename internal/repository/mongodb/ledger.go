package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// LedgerRepository stores the cash and expense ledgers.
type LedgerRepository interface {
	CreateCashEntry(ctx context.Context, entry models.CashEntry) (*models.CashEntry, error)
	DeleteCashEntry(ctx context.Context, farmID, id string) error
	ListCashEntries(ctx context.Context, farmID, start, end string) ([]models.CashEntry, error)
	CreateExpenseEntry(ctx context.Context, entry models.ExpenseEntry) (*models.ExpenseEntry, error)
	DeleteExpenseEntry(ctx context.Context, farmID, id string) error
	ListExpenseEntries(ctx context.Context, farmID, start, end string) ([]models.ExpenseEntry, error)
}

// CreateCashEntry inserts a cash ledger row.
func (s *Store) CreateCashEntry(ctx context.Context, entry models.CashEntry) (*models.CashEntry, error) {
	entry.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collCash).InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert cash entry: %w", err)
	}

	return &entry, nil
}

// DeleteCashEntry removes a cash ledger row.
func (s *Store) DeleteCashEntry(ctx context.Context, farmID, id string) error {
	return s.deleteByID(ctx, collCash, farmID, id)
}

// ListCashEntries returns cash rows with dates in [start, end].
func (s *Store) ListCashEntries(ctx context.Context, farmID, start, end string) ([]models.CashEntry, error) {
	cursor, err := s.db.Collection(collCash).Find(ctx,
		dateRangeFilter(farmID, start, end),
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash entries: %w", err)
	}

	var entries []models.CashEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode cash entries: %w", err)
	}

	return entries, nil
}

// CreateExpenseEntry inserts an expense ledger row.
func (s *Store) CreateExpenseEntry(ctx context.Context, entry models.ExpenseEntry) (*models.ExpenseEntry, error) {
	entry.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collExpenses).InsertOne(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert expense entry: %w", err)
	}

	return &entry, nil
}

// DeleteExpenseEntry removes an expense ledger row.
func (s *Store) DeleteExpenseEntry(ctx context.Context, farmID, id string) error {
	return s.deleteByID(ctx, collExpenses, farmID, id)
}

// ListExpenseEntries returns expense rows with dates in [start, end].
func (s *Store) ListExpenseEntries(ctx context.Context, farmID, start, end string) ([]models.ExpenseEntry, error) {
	cursor, err := s.db.Collection(collExpenses).Find(ctx,
		dateRangeFilter(farmID, start, end),
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query expense entries: %w", err)
	}

	var entries []models.ExpenseEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode expense entries: %w", err)
	}

	return entries, nil
}

func dateRangeFilter(farmID, start, end string) bson.M {
	return bson.M{
		"farm_id": farmID,
		"date":    bson.M{"$gte": start, "$lte": end},
	}
}

func (s *Store) deleteByID(ctx context.Context, coll, farmID, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": oid, "farm_id": farmID})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", coll, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	return nil
}
