package order_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fcsolar/pos/internal/activity"
	activityStore "github.com/fcsolar/pos/internal/activity/store"
	"github.com/fcsolar/pos/internal/identifier"
	"github.com/fcsolar/pos/internal/order"
	orderStore "github.com/fcsolar/pos/internal/order/store"
	"github.com/fcsolar/pos/internal/sale"
	saleStore "github.com/fcsolar/pos/internal/sale/store"
	"github.com/fcsolar/pos/internal/storage"
)

// Wires real stores over an in-memory blob and walks an order through its
// lifecycle end to end.
func TestOrderLifecycle_CompletionYieldsExactlyOneSale(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemStore()
	ids := identifier.New()

	activities := activity.NewService(activityStore.New(ctx, blob))
	sales := sale.NewService(saleStore.New(ctx, blob), ids, activities, "FC SOLAR")
	orders := order.NewService(orderStore.New(ctx, blob), sales, activities, ids)

	created, err := orders.Create(ctx, order.CreateParams{
		CustomerName:   "Jean",
		Items:          []order.Item{{ProductID: "P1", Quantity: 2, Price: 500}},
		TotalAmount:    1000,
		FinalAmount:    950,
		Discount:       50,
		AdvancePayment: 200,
		CreatedBy:      "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, order.StatusPending, created.Status)

	status := order.StatusCompleted
	completedBy := "u1"
	completed, err := orders.Update(ctx, created.ID, order.UpdateParams{
		Status:      &status,
		CompletedBy: &completedBy,
	})
	require.NoError(t, err)
	require.NotEmpty(t, completed.SaleID)

	linked, err := sales.Get(ctx, completed.SaleID)
	require.NoError(t, err)
	assert.Equal(t, int64(950), linked.Total)
	assert.Equal(t, int64(50), linked.Discount)
	assert.Equal(t, int64(200), linked.PaymentReceived)
	assert.Equal(t, created.ID, linked.OrderID)
	assert.Equal(t, sale.TypeOrder, linked.Type)

	// A duplicate completion event must not produce a second sale.
	again, err := orders.Update(ctx, created.ID, order.UpdateParams{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, completed.SaleID, again.SaleID)

	userSales, err := sales.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, userSales, 1)
}

func TestOrderLifecycle_DeleteLeavesSalesUntouched(t *testing.T) {
	ctx := context.Background()
	blob := storage.NewMemStore()
	ids := identifier.New()

	activities := activity.NewService(activityStore.New(ctx, blob))
	sales := sale.NewService(saleStore.New(ctx, blob), ids, activities, "FC SOLAR")
	orders := order.NewService(orderStore.New(ctx, blob), sales, activities, ids)

	created, err := orders.Create(ctx, order.CreateParams{CustomerName: "Jean", CreatedBy: "u1"})
	require.NoError(t, err)

	unrelated, err := sales.Add(ctx, sale.CreateParams{Cashier: "u1", Total: 500})
	require.NoError(t, err)

	require.NoError(t, orders.Delete(ctx, created.ID))

	_, err = orders.Get(ctx, created.ID)
	assert.ErrorIs(t, err, order.ErrNotFound)

	still, err := sales.Get(ctx, unrelated.ID)
	require.NoError(t, err)
	assert.Equal(t, unrelated.ID, still.ID)

	recs, err := activities.ListByUser(ctx, "u1")
	require.NoError(t, err)

	var actions []activity.Action
	for _, rec := range recs {
		actions = append(actions, rec.Action)
	}
	assert.Contains(t, actions, activity.ActionOrderDeleted)
}
