// Package event is an in-process dispatcher for domain events such as
// "order.created" and "product.changed".
package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/shashiranjanraj/souq/pkg/logger"
	"github.com/shashiranjanraj/souq/pkg/workerpool"
)

// Handler is a function that receives an event payload.
type Handler func(payload interface{})

var (
	mu       sync.RWMutex
	handlers = map[string][]Handler{}
	inflight sync.WaitGroup
	pool     *workerpool.Pool
)

// UsePool runs FireAsync listeners on p instead of one goroutine each.
// Pass nil to go back to plain goroutines.
func UsePool(p *workerpool.Pool) {
	mu.Lock()
	defer mu.Unlock()
	pool = p
}

// Listen registers a handler for the given event name.
func Listen(event string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	handlers[event] = append(handlers[event], handler)
}

func listeners(event string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	return append([]Handler(nil), handlers[event]...)
}

// Fire dispatches an event synchronously to all listeners. A panicking
// listener is logged and does not stop the others.
func Fire(event string, payload interface{}) {
	for _, h := range listeners(event) {
		call(event, h, payload)
	}
}

// FireAsync dispatches the event to every listener off the caller's
// goroutine, on the pool when one is installed. A closed pool falls back to
// a goroutine so late events are not lost during shutdown.
func FireAsync(event string, payload interface{}) {
	mu.RLock()
	p := pool
	mu.RUnlock()

	for _, h := range listeners(event) {
		inflight.Add(1)
		task := func() {
			defer inflight.Done()
			call(event, h, payload)
		}
		if p != nil && p.Submit(context.Background(), task) == nil {
			continue
		}
		go task()
	}
}

// Wait blocks until every FireAsync listener has returned. Used on shutdown
// and in tests.
func Wait() { inflight.Wait() }

func call(event string, h Handler, payload interface{}) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event: listener panicked", "event", event, "error", fmt.Sprint(r))
		}
	}()
	h(payload)
}

// Flush removes all listeners (useful in tests).
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	handlers = map[string][]Handler{}
}
