package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/souq/pkg/cache"
	"github.com/shashiranjanraj/souq/pkg/event"
	"github.com/shashiranjanraj/souq/pkg/logger"
)

// Publisher receives order events for the live admin feed.
type Publisher interface {
	Publish(v interface{})
}

// RegisterListeners wires domain events to storefront cache invalidation
// and, when feed is non-nil, to the live order feed. Product, catalogue and
// stock events are fired synchronously after commit, so the cache is clear
// before the write is acknowledged.
func RegisterListeners(feed Publisher) {
	invalidate := func(interface{}) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := cache.DelPrefix(ctx, StorefrontCachePrefix); err != nil {
			logger.Warn("storefront cache invalidation failed", "error", err)
		}
	}
	event.Listen(EventProductChanged, invalidate)
	event.Listen(EventCatalogChanged, invalidate)
	event.Listen(EventStockChanged, invalidate)

	if feed == nil {
		return
	}
	publish := func(payload interface{}) { feed.Publish(payload) }
	event.Listen(EventOrderCreated, publish)
	event.Listen(EventOrderStatusChanged, publish)
}
