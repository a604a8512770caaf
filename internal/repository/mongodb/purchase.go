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

// PurchaseRepository stores purchase orders and their receiving history.
type PurchaseRepository interface {
	NextOrderNumber(ctx context.Context, farmID string) (string, error)
	CreateOrder(ctx context.Context, order models.PurchaseOrder) (*models.PurchaseOrder, error)
	UpdateOrder(ctx context.Context, order models.PurchaseOrder) error
	GetOrder(ctx context.Context, farmID, id string) (*models.PurchaseOrder, error)
	ListOrders(ctx context.Context, farmID string) ([]models.PurchaseOrder, error)
	SetOrderStatus(ctx context.Context, farmID, id, status string) error
	AppendReceiving(ctx context.Context, record models.ReceivingRecord) (*models.ReceivingRecord, error)
	ListReceivings(ctx context.Context, farmID, orderID string) ([]models.ReceivingRecord, error)
}

// NextOrderNumber allocates the next system-generated order number for the
// farm.
func (s *Store) NextOrderNumber(ctx context.Context, farmID string) (string, error) {
	seq, err := s.nextSequence(ctx, "orders:"+farmID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("PO-%04d", seq), nil
}

// CreateOrder inserts a new purchase order.
func (s *Store) CreateOrder(ctx context.Context, order models.PurchaseOrder) (*models.PurchaseOrder, error) {
	order.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collOrders).InsertOne(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return &order, nil
}

// UpdateOrder replaces the vendor, line items, and total of an order.
func (s *Store) UpdateOrder(ctx context.Context, order models.PurchaseOrder) error {
	res, err := s.db.Collection(collOrders).UpdateOne(ctx,
		bson.M{"_id": order.ID, "farm_id": order.FarmID},
		bson.M{"$set": bson.M{
			"vendor":       order.Vendor,
			"items":        order.Items,
			"total_amount": order.TotalAmount,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// GetOrder fetches one purchase order.
func (s *Store) GetOrder(ctx context.Context, farmID, id string) (*models.PurchaseOrder, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var order models.PurchaseOrder
	err = s.db.Collection(collOrders).
		FindOne(ctx, bson.M{"_id": oid, "farm_id": farmID}).
		Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	return &order, nil
}

// ListOrders returns the farm's orders, newest first.
func (s *Store) ListOrders(ctx context.Context, farmID string) ([]models.PurchaseOrder, error) {
	cursor, err := s.db.Collection(collOrders).Find(ctx,
		bson.M{"farm_id": farmID},
		options.Find().SetSort(bson.D{{Key: "ordered_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	var orders []models.PurchaseOrder
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}

	return orders, nil
}

// SetOrderStatus persists a newly computed status.
func (s *Store) SetOrderStatus(ctx context.Context, farmID, id, status string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection(collOrders).UpdateOne(ctx,
		bson.M{"_id": oid, "farm_id": farmID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return fmt.Errorf("failed to set order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}

	return nil
}

// AppendReceiving inserts a receiving record. Records are append-only and
// never updated afterwards.
func (s *Store) AppendReceiving(ctx context.Context, record models.ReceivingRecord) (*models.ReceivingRecord, error) {
	record.ID = primitive.NewObjectID()

	if _, err := s.db.Collection(collReceivings).InsertOne(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to insert receiving record: %w", err)
	}

	return &record, nil
}

// ListReceivings returns an order's receiving history in event order.
func (s *Store) ListReceivings(ctx context.Context, farmID, orderID string) ([]models.ReceivingRecord, error) {
	cursor, err := s.db.Collection(collReceivings).Find(ctx,
		bson.M{"farm_id": farmID, "order_id": orderID},
		options.Find().SetSort(bson.D{{Key: "received_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query receiving records: %w", err)
	}

	var records []models.ReceivingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode receiving records: %w", err)
	}

	return records, nil
}
