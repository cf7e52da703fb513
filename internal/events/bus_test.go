package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInSubscriptionOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(func(ev AuthExpired) { got = append(got, "first:"+ev.Path) })
	bus.Subscribe(func(ev AuthExpired) { got = append(got, "second:"+ev.Path) })

	bus.Publish(AuthExpired{Deployment: "training", Path: "/employee/scores", Source: SourceHTTP})

	assert.Equal(t, []string{"first:/employee/scores", "second:/employee/scores"}, got)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()
	calls := 0

	unsubscribe := bus.Subscribe(func(AuthExpired) { calls++ })
	assert.Equal(t, 1, bus.Len())

	unsubscribe()
	unsubscribe() // idempotent
	bus.Publish(AuthExpired{})

	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, bus.Len())
}

func TestBus_UnsubscribeKeepsOthers(t *testing.T) {
	bus := NewBus()
	var got []int

	bus.Subscribe(func(AuthExpired) { got = append(got, 1) })
	unsubscribe := bus.Subscribe(func(AuthExpired) { got = append(got, 2) })
	bus.Subscribe(func(AuthExpired) { got = append(got, 3) })

	unsubscribe()
	bus.Publish(AuthExpired{})

	assert.Equal(t, []int{1, 3}, got)
}

func TestBus_NilPublishIsNoop(t *testing.T) {
	var bus *Bus
	assert.NotPanics(t, func() { bus.Publish(AuthExpired{}) })
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()
	var mu sync.Mutex
	count := 0
	bus.Subscribe(func(AuthExpired) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(AuthExpired{Source: SourceEnvelope})
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, count)
}
