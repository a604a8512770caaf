package purchasing

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
)

// ErrOrderClosed is returned when editing an order that has been fully
// received.
var ErrOrderClosed = errors.New("order already fully received")

// LineItemInput is an order-builder row as entered by the operator.
type LineItemInput struct {
	Name  string `json:"name" binding:"required"`
	Qty   string `json:"qty" binding:"required"`
	Unit  string `json:"unit"`
	Price string `json:"price" binding:"required"`
}

// OrderRequest carries a new or edited order.
type OrderRequest struct {
	Vendor string          `json:"vendor" binding:"required"`
	Items  []LineItemInput `json:"items" binding:"required,min=1"`
}

// Service persists orders and receiving events around the pure computations
// in this package.
type Service struct {
	repo   mongodb.PurchaseRepository
	logger *zap.Logger
}

// NewService wires a new purchasing service instance.
func NewService(repo mongodb.PurchaseRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateOrder allocates an order number and stores the order as Pending with
// a freshly computed total.
func (s *Service) CreateOrder(ctx context.Context, farmID string, req OrderRequest) (*models.PurchaseOrder, error) {
	number, err := s.repo.NextOrderNumber(ctx, farmID)
	if err != nil {
		return nil, err
	}

	items := buildItems(req.Items)
	order := models.PurchaseOrder{
		FarmID:      farmID,
		Number:      number,
		Vendor:      req.Vendor,
		OrderedAt:   time.Now(),
		Items:       items,
		TotalAmount: RecomputeTotal(items).String(),
		Status:      models.OrderStatusPending,
	}

	created, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase order created",
		zap.String("number", created.Number),
		zap.String("vendor", created.Vendor),
		zap.Int("items", len(created.Items)))

	return created, nil
}

// EditOrder replaces vendor and items and recomputes the total from scratch.
// Fully received orders can no longer be edited.
func (s *Service) EditOrder(ctx context.Context, farmID, id string, req OrderRequest) (*models.PurchaseOrder, error) {
	order, err := s.repo.GetOrder(ctx, farmID, id)
	if err != nil {
		return nil, err
	}
	if order.Status == models.OrderStatusReceived {
		return nil, ErrOrderClosed
	}

	order.Vendor = req.Vendor
	order.Items = buildItems(req.Items)
	order.TotalAmount = RecomputeTotal(order.Items).String()

	if err := s.repo.UpdateOrder(ctx, *order); err != nil {
		return nil, err
	}

	return order, nil
}

// ReceiveOrder records a receiving event: computes the new status from this
// event's quantities, persists it, and appends the immutable record.
func (s *Service) ReceiveOrder(ctx context.Context, farmID, id string, received map[string]string) (*models.ReceivingRecord, error) {
	order, err := s.repo.GetOrder(ctx, farmID, id)
	if err != nil {
		return nil, err
	}

	status, record := Receive(*order, received, time.Now())

	if err := s.repo.SetOrderStatus(ctx, farmID, id, status); err != nil {
		return nil, err
	}

	stored, err := s.repo.AppendReceiving(ctx, record)
	if err != nil {
		return nil, err
	}

	s.logger.Info("receiving recorded",
		zap.String("order", order.Number),
		zap.String("status", status))

	return stored, nil
}

// Order fetches one order.
func (s *Service) Order(ctx context.Context, farmID, id string) (*models.PurchaseOrder, error) {
	return s.repo.GetOrder(ctx, farmID, id)
}

// Orders lists the farm's orders, newest first.
func (s *Service) Orders(ctx context.Context, farmID string) ([]models.PurchaseOrder, error) {
	return s.repo.ListOrders(ctx, farmID)
}

// Receivings lists an order's receiving history.
func (s *Service) Receivings(ctx context.Context, farmID, orderID string) ([]models.ReceivingRecord, error) {
	return s.repo.ListReceivings(ctx, farmID, orderID)
}

func buildItems(inputs []LineItemInput) []models.LineItem {
	items := make([]models.LineItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.LineItem{
			ID:    uuid.NewString(),
			Name:  in.Name,
			Qty:   in.Qty,
			Unit:  in.Unit,
			Price: in.Price,
		})
	}
	return items
}
