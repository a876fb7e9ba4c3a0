package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	delivered := placeOrder(t, f)
	_, err := f.orders.Confirm(ctx, delivered.ID)
	require.NoError(t, err)
	_, err = f.orders.Deliver(ctx, delivered.ID)
	require.NoError(t, err)
	placeOrder(t, f)

	hidden := f.product(t, "5", 1, 1)
	_, err = f.products.SetActive(ctx, hidden.ID, false)
	require.NoError(t, err)

	sum, err := services.NewDashboardService(f.db).Admin(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(2), sum.TotalOrders)
	assert.Equal(t, int64(2), sum.OrdersToday)
	assert.Equal(t, int64(1), sum.Orders[models.StatusDelivered])
	assert.Equal(t, int64(1), sum.Orders[models.StatusPending])
	assert.Equal(t, int64(0), sum.Orders[models.StatusCancelled])
	assert.True(t, sum.Revenue.Equal(decimal.NewFromInt(10)), sum.Revenue.String())
	assert.Equal(t, int64(2), sum.ActiveProducts)
	assert.Equal(t, int64(1), sum.InactiveProducts)
}

func TestManagerSummary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	low := f.product(t, "10", 3, 3)
	f.product(t, "10", 50, 3)

	_, err := f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items:     []services.CheckoutItem{{ProductID: low.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)

	sum, err := services.NewDashboardService(f.db).Manager(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), sum.Categories)
	assert.Equal(t, int64(1), sum.Brands)
	assert.Equal(t, int64(2), sum.Products)
	require.Len(t, sum.LowStock, 1)
	assert.Equal(t, low.ID, sum.LowStock[0].ID)
	assert.Equal(t, 1, sum.LowStock[0].Quantity)
	require.Len(t, sum.TopSold, 1)
	assert.Equal(t, 2, sum.TopSold[0].Sold)

	admin, err := services.NewDashboardService(f.db).Admin(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), admin.UnitsSold)
}
