package services_test

import (
	"context"
	"testing"

	"github.com/shashiranjanraj/souq/app/models"
	"github.com/shashiranjanraj/souq/app/repositories"
	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMovesStockToSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "12.50", 5, 3)

	order, err := f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items:     []services.CheckoutItem{{ProductID: p.ID, Quantity: 2, SelectedAttributes: []string{"Red"}}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.OrderType)
	assert.Equal(t, models.PendingDeliveryType, order.DeliveryTypeName)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(25)), order.TotalPrice.String())

	stored := f.reload(t, p.ID)
	assert.Equal(t, 3, stored.Quantity)
	assert.Equal(t, 2, stored.Sold)

	got, err := f.orders.Find(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, p.ID, got.Items[0].ProductID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, models.StringList{"Red"}, got.Items[0].SelectedAttributes)
	require.NotNil(t, got.WebUserID)
	assert.Equal(t, "guest-1", *got.WebUserID)

	ok, err := repositories.NewDeliveryTypeRepository(f.db).ExistsByName(ctx, models.PendingDeliveryType)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckoutRollsBackWhenALineFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	plenty := f.product(t, "10", 10, 5)
	scarce := f.product(t, "10", 1, 5)

	_, err := f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items: []services.CheckoutItem{
			{ProductID: plenty.ID, Quantity: 2},
			{ProductID: scarce.ID, Quantity: 2},
		},
	}, nil)
	assert.ErrorIs(t, err, services.ErrInsufficientStock)

	assert.Zero(t, f.count(t, &models.Order{}))
	assert.Zero(t, f.count(t, &models.OrderItem{}))
	assert.Equal(t, 10, f.reload(t, plenty.ID).Quantity)
	assert.Zero(t, f.reload(t, plenty.ID).Sold)
	assert.Equal(t, 1, f.reload(t, scarce.ID).Quantity)
}

func TestCheckoutEnforcesPerUserLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "10", 10, 2)

	// two lines of the same product add up past the limit
	_, err := f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items: []services.CheckoutItem{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: p.ID, Quantity: 2},
		},
	}, nil)
	assert.ErrorIs(t, err, services.ErrQuantityLimit)
	assert.Equal(t, 10, f.reload(t, p.ID).Quantity)
	assert.Zero(t, f.count(t, &models.Order{}))
}

func TestCheckoutRejectsInactiveProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "10", 10, 2)
	_, err := f.products.SetActive(ctx, p.ID, false)
	require.NoError(t, err)

	_, err = f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items:     []services.CheckoutItem{{ProductID: p.ID, Quantity: 1}},
	}, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPlaceOrderLeavesInventoryAlone(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	p := f.product(t, "40", 5, 3)
	userID := uint(7)

	order, err := f.orders.Place(ctx, services.PlaceOrderInput{
		Contact:            contact(),
		ProductID:          p.ID,
		Quantity:           3,
		SelectedAttributes: []string{"Blue", "XL"},
	}, &userID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, order.OrderType)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, order.UserID)
	assert.Equal(t, userID, *order.UserID)
	assert.Nil(t, order.WebUserID)

	stored := f.reload(t, p.ID)
	assert.Equal(t, 5, stored.Quantity)
	assert.Zero(t, stored.Sold)

	got, err := f.orders.Find(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"Blue", "XL"}, got.SelectedAttributes)
	assert.Empty(t, got.Items)

	_, err = f.orders.Place(ctx, services.PlaceOrderInput{Contact: contact(), ProductID: 999, Quantity: 1}, nil)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestPlaceOrderEnforcesPerUserLimit(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "40", 10, 2)

	_, err := f.orders.Place(context.Background(), services.PlaceOrderInput{Contact: contact(), ProductID: p.ID, Quantity: 3}, nil)
	assert.ErrorIs(t, err, services.ErrQuantityLimit)
	assert.Zero(t, f.count(t, &models.Order{}))
}

func placeOrder(t *testing.T, f *fixture) models.Order {
	t.Helper()
	p := f.product(t, "10", 5, 1)
	o, err := f.orders.Place(context.Background(), services.PlaceOrderInput{Contact: contact(), ProductID: p.ID, Quantity: 1}, nil)
	require.NoError(t, err)
	return o
}

func TestTransitionsFollowTheStatusTable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := placeOrder(t, f)

	_, err := f.orders.Deliver(ctx, o.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	confirmed, err := f.orders.Confirm(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, confirmed.OrderType)

	again, err := f.orders.Confirm(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, again.OrderType)

	delivered, err := f.orders.Deliver(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, delivered.OrderType)

	_, err = f.orders.Cancel(ctx, o.ID)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)

	got, err := f.orders.Find(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, got.OrderType)
}

func TestTransitionOnMissingOrderChangesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := placeOrder(t, f)

	for _, fn := range []func(context.Context, uint) (models.Order, error){f.orders.Confirm, f.orders.Cancel, f.orders.Deliver} {
		_, err := fn(ctx, o.ID+100)
		assert.ErrorIs(t, err, services.ErrNotFound)
	}

	got, err := f.orders.Find(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.OrderType)
}

func TestAssignDeliveryType(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	o := placeOrder(t, f)

	_, err := f.orders.AssignDeliveryType(ctx, o.ID, "express")
	assert.ErrorIs(t, err, services.ErrDeliveryTypeNotFound)

	_, err = services.NewDeliveryTypeService(f.db).Create(ctx, services.DeliveryTypeInput{Name: "express", EnName: "Express", ArName: "سريع"})
	require.NoError(t, err)

	_, err = f.orders.AssignDeliveryType(ctx, o.ID+100, "express")
	assert.ErrorIs(t, err, services.ErrNotFound)

	got, err := f.orders.AssignDeliveryType(ctx, o.ID, "express")
	require.NoError(t, err)
	assert.Equal(t, "express", got.DeliveryTypeName)
	assert.Equal(t, models.StatusPending, got.OrderType)
}

func TestOrderListingByStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	first := placeOrder(t, f)
	second := placeOrder(t, f)
	_, err := f.orders.Cancel(ctx, first.ID)
	require.NoError(t, err)

	all, err := f.orders.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	cancelled, err := f.orders.List(ctx, models.StatusCancelled)
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)
}

func TestDeliveryTypeNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	svc := services.NewDeliveryTypeService(newFixture(t).db)

	_, err := svc.Create(ctx, services.DeliveryTypeInput{Name: "express"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, services.DeliveryTypeInput{Name: "express"})
	assert.ErrorIs(t, err, services.ErrDuplicate)
	assert.ErrorIs(t, svc.Delete(ctx, 999), services.ErrNotFound)
}
