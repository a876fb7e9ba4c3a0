package event

import (
	"sync/atomic"
	"testing"

	"github.com/shashiranjanraj/souq/pkg/workerpool"
	"github.com/stretchr/testify/assert"
)

func TestFireReachesEveryListener(t *testing.T) {
	Flush()
	defer Flush()

	var got []interface{}
	Listen("order.created", func(p interface{}) { panic("boom") })
	Listen("order.created", func(p interface{}) { got = append(got, p) })

	Fire("order.created", 12)
	Fire("product.changed", 99)

	assert.Equal(t, []interface{}{12}, got)
}

func TestFireAsyncWait(t *testing.T) {
	Flush()
	defer Flush()

	var n int32
	for i := 0; i < 3; i++ {
		Listen("product.changed", func(interface{}) { atomic.AddInt32(&n, 1) })
	}
	FireAsync("product.changed", nil)
	Wait()

	assert.EqualValues(t, 3, atomic.LoadInt32(&n))
}

func TestFireAsyncOnPool(t *testing.T) {
	Flush()
	p := workerpool.New(2)
	UsePool(p)
	defer func() {
		UsePool(nil)
		p.Shutdown()
		Flush()
	}()

	var n int32
	Listen("order.created", func(interface{}) { atomic.AddInt32(&n, 1) })
	for i := 0; i < 10; i++ {
		FireAsync("order.created", i)
	}
	Wait()
	assert.EqualValues(t, 10, atomic.LoadInt32(&n))

	p.Shutdown()
	FireAsync("order.created", 11)
	Wait()
	assert.EqualValues(t, 11, atomic.LoadInt32(&n))
}
