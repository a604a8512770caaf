package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

// SnapshotRepository stores computed monthly reports.
type SnapshotRepository interface {
	UpsertSnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error
	GetSnapshot(ctx context.Context, farmID, month string) (*models.MonthlySnapshot, error)
}

// UpsertSnapshot writes the snapshot for (farm, month), replacing any earlier
// run for the same month.
func (s *Store) UpsertSnapshot(ctx context.Context, snapshot models.MonthlySnapshot) error {
	_, err := s.db.Collection(collSnapshots).UpdateOne(ctx,
		bson.M{"farm_id": snapshot.FarmID, "month": snapshot.Month},
		bson.M{"$set": bson.M{
			"rows":         snapshot.Rows,
			"total_liters": snapshot.TotalLiters,
			"total_amount": snapshot.TotalAmount,
			"cash_in":      snapshot.CashIn,
			"cash_out":     snapshot.CashOut,
			"expenses":     snapshot.Expenses,
			"computed_at":  snapshot.ComputedAt,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot %s: %w", snapshot.Month, err)
	}

	return nil
}

// GetSnapshot fetches the stored snapshot for (farm, month).
func (s *Store) GetSnapshot(ctx context.Context, farmID, month string) (*models.MonthlySnapshot, error) {
	var snapshot models.MonthlySnapshot

	err := s.db.Collection(collSnapshots).
		FindOne(ctx, bson.M{"farm_id": farmID, "month": month}).
		Decode(&snapshot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", month, err)
	}

	return &snapshot, nil
}
