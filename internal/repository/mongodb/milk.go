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

// MilkRepository stores the per-day shift records.
type MilkRepository interface {
	ReplaceShift(ctx context.Context, farmID, date, field string, tally models.ShiftTally) error
	GetDay(ctx context.Context, farmID, date string) (*models.DailyShiftRecord, error)
	ListRange(ctx context.Context, farmID, start, end string) ([]models.DailyShiftRecord, error)
}

// ReplaceShift sets one shift mapping wholesale on the (farm, date) document,
// creating the document if needed. Sibling shift fields on the same date are
// left untouched, matching the save semantics of the shift entry screen.
func (s *Store) ReplaceShift(ctx context.Context, farmID, date, field string, tally models.ShiftTally) error {
	if tally == nil {
		tally = models.ShiftTally{}
	}

	_, err := s.db.Collection(collMilkDays).UpdateOne(ctx,
		bson.M{"farm_id": farmID, "date": date},
		bson.M{"$set": bson.M{field: tally}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to replace shift %s on %s: %w", field, date, err)
	}

	return nil
}

// GetDay fetches the record for one calendar date.
func (s *Store) GetDay(ctx context.Context, farmID, date string) (*models.DailyShiftRecord, error) {
	var record models.DailyShiftRecord

	err := s.db.Collection(collMilkDays).
		FindOne(ctx, bson.M{"farm_id": farmID, "date": date}).
		Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load day %s: %w", date, err)
	}

	return &record, nil
}

// ListRange fetches all records whose date key lies in [start, end]. The date
// format is fixed-width and zero-padded, so the lexicographic comparison the
// index performs is a correct date comparison.
func (s *Store) ListRange(ctx context.Context, farmID, start, end string) ([]models.DailyShiftRecord, error) {
	cursor, err := s.db.Collection(collMilkDays).Find(ctx,
		bson.M{
			"farm_id": farmID,
			"date":    bson.M{"$gte": start, "$lte": end},
		},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query range %s..%s: %w", start, end, err)
	}

	var records []models.DailyShiftRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode range %s..%s: %w", start, end, err)
	}

	return records, nil
}
