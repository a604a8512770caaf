package purchasing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairybook/internal/domain/models"
)

func twoItemOrder() models.PurchaseOrder {
	return models.PurchaseOrder{
		Number: "PO-1007",
		Vendor: "Agro Traders",
		Items: []models.LineItem{
			{ID: "a", Name: "Cattle feed", Qty: "10", Unit: "bag", Price: "1200"},
			{ID: "b", Name: "Mineral mix", Qty: "5", Unit: "kg", Price: "300"},
		},
		Status: models.OrderStatusPending,
	}
}

func TestReceiveStatusBoundaries(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name     string
		received map[string]string
		want     string
	}{
		{"all items full", map[string]string{"a": "10", "b": "5"}, models.OrderStatusReceived},
		{"one item full", map[string]string{"a": "10", "b": "0"}, models.OrderStatusPartially},
		{"nothing received", map[string]string{"a": "0", "b": "0"}, models.OrderStatusPending},
		{"untouched session", map[string]string{}, models.OrderStatusPending},
		{"short delivery counts for nothing", map[string]string{"a": "9", "b": "4"}, models.OrderStatusPending},
		{"one full flips even with others untouched", map[string]string{"b": "5"}, models.OrderStatusPartially},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, record := Receive(twoItemOrder(), tc.received, now)
			assert.Equal(t, tc.want, status)
			assert.Equal(t, tc.want, record.Status)
		})
	}
}

func TestReceiveOverReceiptAccepted(t *testing.T) {
	status, record := Receive(twoItemOrder(), map[string]string{"a": "25", "b": "5"}, time.Now())

	assert.Equal(t, models.OrderStatusReceived, status)
	assert.Equal(t, "25", record.Items[0].ReceivedQty, "over-receipt is stored as entered, not clamped")
}

func TestReceiveSnapshotsEveryItem(t *testing.T) {
	order := twoItemOrder()
	status, record := Receive(order, map[string]string{"a": "10"}, time.Now())

	assert.Equal(t, models.OrderStatusPartially, status)
	require.Len(t, record.Items, len(order.Items), "record covers all items, not just touched ones")
	assert.Equal(t, "10", record.Items[0].ReceivedQty)
	assert.Equal(t, "0", record.Items[1].ReceivedQty)
	assert.Equal(t, order.Number, record.OrderNumber)
	assert.Equal(t, order.Vendor, record.Vendor)

	// The ordered quantities on the snapshot mirror the original line items.
	assert.Equal(t, "10", record.Items[0].Qty)
	assert.Equal(t, "5", record.Items[1].Qty)
}

func TestReceiveIsIdempotentInShape(t *testing.T) {
	received := map[string]string{"a": "10", "b": "2"}

	first, _ := Receive(twoItemOrder(), received, time.Now())
	second, _ := Receive(twoItemOrder(), received, time.Now())

	assert.Equal(t, first, second)
}

func TestReceiveDoesNotMutateOrder(t *testing.T) {
	order := twoItemOrder()
	_, _ = Receive(order, map[string]string{"a": "10", "b": "5"}, time.Now())

	assert.Equal(t, "10", order.Items[0].Qty)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestReceiveEmptyOrderStaysPending(t *testing.T) {
	status, record := Receive(models.PurchaseOrder{}, map[string]string{}, time.Now())

	assert.Equal(t, models.OrderStatusPending, status)
	assert.Empty(t, record.Items)
}

func TestRecomputeTotal(t *testing.T) {
	items := []models.LineItem{
		{ID: "a", Qty: "3", Price: "100"},
		{ID: "b", Qty: "2", Price: "50"},
	}

	total := RecomputeTotal(items)
	assert.True(t, total.Equal(decimal.NewFromInt(400)), "total = %s", total)
}

func TestRecomputeTotalMalformedDegradesToZero(t *testing.T) {
	items := []models.LineItem{
		{ID: "a", Qty: "x", Price: "100"},
		{ID: "b", Qty: "2", Price: ""},
		{ID: "c", Qty: "1.5", Price: "40"},
	}

	total := RecomputeTotal(items)
	assert.True(t, total.Equal(decimal.NewFromInt(60)), "total = %s", total)
}
