package purchasing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/repository/mongodb"
)

type fakeOrders struct {
	seq        int64
	orders     map[string]*models.PurchaseOrder
	receivings []models.ReceivingRecord
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{orders: map[string]*models.PurchaseOrder{}}
}

func (f *fakeOrders) NextOrderNumber(context.Context, string) (string, error) {
	f.seq++
	return fmt.Sprintf("PO-%04d", f.seq), nil
}

func (f *fakeOrders) CreateOrder(_ context.Context, order models.PurchaseOrder) (*models.PurchaseOrder, error) {
	order.ID = primitive.NewObjectID()
	f.orders[order.ID.Hex()] = &order
	return &order, nil
}

func (f *fakeOrders) UpdateOrder(_ context.Context, order models.PurchaseOrder) error {
	stored, ok := f.orders[order.ID.Hex()]
	if !ok {
		return mongodb.ErrNotFound
	}
	stored.Vendor = order.Vendor
	stored.Items = order.Items
	stored.TotalAmount = order.TotalAmount
	return nil
}

func (f *fakeOrders) GetOrder(_ context.Context, _ string, id string) (*models.PurchaseOrder, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, mongodb.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrders) ListOrders(context.Context, string) ([]models.PurchaseOrder, error) {
	var out []models.PurchaseOrder
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrders) SetOrderStatus(_ context.Context, _ string, id string, status string) error {
	order, ok := f.orders[id]
	if !ok {
		return mongodb.ErrNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeOrders) AppendReceiving(_ context.Context, record models.ReceivingRecord) (*models.ReceivingRecord, error) {
	record.ID = primitive.NewObjectID()
	f.receivings = append(f.receivings, record)
	return &record, nil
}

func (f *fakeOrders) ListReceivings(_ context.Context, _ string, orderID string) ([]models.ReceivingRecord, error) {
	var out []models.ReceivingRecord
	for _, r := range f.receivings {
		if r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func sampleRequest() OrderRequest {
	return OrderRequest{
		Vendor: "Agro Traders",
		Items: []LineItemInput{
			{Name: "Cattle feed", Qty: "3", Unit: "bag", Price: "100"},
			{Name: "Mineral mix", Qty: "2", Unit: "kg", Price: "50"},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc := NewService(newFakeOrders(), nil)

	order, err := svc.CreateOrder(context.Background(), "farm-1", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "PO-0001", order.Number)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "400", order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.NotEmpty(t, order.Items[0].ID)
	assert.NotEqual(t, order.Items[0].ID, order.Items[1].ID)

	second, err := svc.CreateOrder(context.Background(), "farm-1", sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "PO-0002", second.Number)
}

func TestEditOrderRecomputesTotal(t *testing.T) {
	svc := NewService(newFakeOrders(), nil)
	order, err := svc.CreateOrder(context.Background(), "farm-1", sampleRequest())
	require.NoError(t, err)

	edited, err := svc.EditOrder(context.Background(), "farm-1", order.ID.Hex(), OrderRequest{
		Vendor: "New Vendor",
		Items:  []LineItemInput{{Name: "Cattle feed", Qty: "10", Price: "90"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "900", edited.TotalAmount)
	assert.Equal(t, "New Vendor", edited.Vendor)
}

func TestEditOrderRejectedOnceReceived(t *testing.T) {
	svc := NewService(newFakeOrders(), nil)
	order, err := svc.CreateOrder(context.Background(), "farm-1", sampleRequest())
	require.NoError(t, err)

	received := map[string]string{
		order.Items[0].ID: "3",
		order.Items[1].ID: "2",
	}
	_, err = svc.ReceiveOrder(context.Background(), "farm-1", order.ID.Hex(), received)
	require.NoError(t, err)

	_, err = svc.EditOrder(context.Background(), "farm-1", order.ID.Hex(), sampleRequest())
	assert.ErrorIs(t, err, ErrOrderClosed)
}

func TestReceiveOrderPersistsStatusAndHistory(t *testing.T) {
	repo := newFakeOrders()
	svc := NewService(repo, nil)
	order, err := svc.CreateOrder(context.Background(), "farm-1", sampleRequest())
	require.NoError(t, err)

	record, err := svc.ReceiveOrder(context.Background(), "farm-1", order.ID.Hex(),
		map[string]string{order.Items[0].ID: "3"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPartially, record.Status)

	stored, err := svc.Order(context.Background(), "farm-1", order.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPartially, stored.Status)
	assert.Equal(t, sampleRequest().Items[0].Qty, stored.Items[0].Qty, "ordered quantities never mutate")

	// A later session that completes the other item only sees its own
	// quantities: the first full item must be re-entered or the order drops
	// back toward Pending. Receiving sessions are independent by design.
	record, err = svc.ReceiveOrder(context.Background(), "farm-1", order.ID.Hex(),
		map[string]string{order.Items[1].ID: "2"})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPartially, record.Status)

	history, err := svc.Receivings(context.Background(), "farm-1", order.ID.Hex())
	require.NoError(t, err)
	require.Len(t, history, 2, "each receiving event appends its own record")
	assert.Equal(t, order.Number, history[0].OrderNumber)
}
