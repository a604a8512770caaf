// Package purchasing computes purchase-order totals and receiving state.
// Like billing, these are pure functions over snapshots; the caller persists
// the resulting status and record.
package purchasing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/dairybook/internal/domain/models"
	"github.com/mamadbah2/dairybook/internal/domain/numeric"
)

// Receive computes an order's new status from the quantities received in
// this event and snapshots the event as an append-only receiving record.
//
// Only items received at or above their ordered quantity count toward the
// status rule: every item full means Received, at least one full means
// Partially Received, none full leaves the order Pending. An item delivered
// short counts for nothing even though goods arrived, and over-receipt is
// accepted without complaint. Quantities are per event, not cumulative across
// prior events.
func Receive(order models.PurchaseOrder, received map[string]string, at time.Time) (string, models.ReceivingRecord) {
	fullyReceived := 0
	items := make([]models.ReceivedItem, 0, len(order.Items))

	for _, item := range order.Items {
		qty, ok := received[item.ID]
		if !ok || qty == "" {
			qty = "0"
		}

		if numeric.Parse(qty).GreaterThanOrEqual(numeric.Parse(item.Qty)) {
			fullyReceived++
		}

		items = append(items, models.ReceivedItem{LineItem: item, ReceivedQty: qty})
	}

	status := models.OrderStatusPending
	switch {
	case len(order.Items) > 0 && fullyReceived == len(order.Items):
		status = models.OrderStatusReceived
	case fullyReceived > 0:
		status = models.OrderStatusPartially
	}

	record := models.ReceivingRecord{
		FarmID:      order.FarmID,
		OrderID:     order.ID.Hex(),
		OrderNumber: order.Number,
		Vendor:      order.Vendor,
		Items:       items,
		Status:      status,
		ReceivedAt:  at,
	}

	return status, record
}

// RecomputeTotal sums qty*price over all line items. It is recomputed from
// scratch on every edit so partial edits cannot drift the stored total.
func RecomputeTotal(items []models.LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(numeric.Parse(item.Qty).Mul(numeric.Parse(item.Price)))
	}
	return total
}
