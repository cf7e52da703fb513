// Package events carries the "authentication expired" signal from the API client
// to whoever owns navigation, so the HTTP layer never depends on the router.
package events

import (
	"sync"
	"time"
)

// Sources of an authentication expiry
const (
	SourceEnvelope = "envelope" // 2xx response whose envelope code is 401
	SourceHTTP     = "http"     // HTTP 401 status
)

// AuthExpired is published once per response that signalled an authentication failure,
// after the stored credential and profile have been cleared.
type AuthExpired struct {
	Deployment string
	Method     string
	Path       string
	Source     string
	At         time.Time
}

// Bus fans AuthExpired events out to subscribers synchronously, in subscription order.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription
}

type subscription struct {
	id int
	fn func(AuthExpired)
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it
func (b *Bus) Subscribe(fn func(AuthExpired)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, s := range b.subs {
				if s.id == id {
					b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish delivers ev to every current subscriber. A nil bus drops the event.
func (b *Bus) Publish(ev AuthExpired) {
	if b == nil {
		return
	}
	b.mu.RLock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(ev)
	}
}

// Len reports the number of subscribers
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
