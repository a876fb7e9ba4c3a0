package services_test

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/souq/app/services"
	"github.com/shashiranjanraj/souq/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counting registers a listener on each event and returns how many times
// any of them ran.
func counting(events ...string) *atomic.Int64 {
	var n atomic.Int64
	for _, e := range events {
		event.Listen(e, func(interface{}) { n.Add(1) })
	}
	return &n
}

func TestStorefrontEventsRunBeforeWritesReturn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	product := counting(services.EventProductChanged)
	catalog := counting(services.EventCatalogChanged)
	stock := counting(services.EventStockChanged)

	p := f.product(t, "10", 5, 5)
	assert.Equal(t, int64(1), product.Load())

	_, err := f.products.SetActive(ctx, p.ID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), product.Load())

	_, err = services.NewCatalogService(f.db).CreateAttribute(ctx, services.AttributeInput{EnAttributeName: "Size", ArAttributeName: "المقاس"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), catalog.Load())

	_, err = f.products.SetActive(ctx, p.ID, true)
	require.NoError(t, err)
	_, err = f.orders.Checkout(ctx, services.CheckoutInput{
		Contact:   contact(),
		WebUserID: "guest-1",
		Items:     []services.CheckoutItem{{ProductID: p.ID, Quantity: 2}},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stock.Load())
}
