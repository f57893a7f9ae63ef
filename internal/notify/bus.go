// Package notify is a small in-process publish/subscribe bus for transient
// user notifications ("trip ready", "found 7 places"). Subscribers register
// explicitly and receive an unsubscribe func; nothing is buffered or
// persisted.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Kind classifies a notice for presentation.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Notice is one notification. UserID is uuid.Nil for broadcast notices.
type Notice struct {
	Kind    Kind
	Message string
	UserID  uuid.UUID
}

// Bus fans notices out to subscribers. The zero value is not usable; call New.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(Notice)
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[uint64]func(Notice))}
}

// Subscribe registers fn and returns a func that removes it. Calling the
// returned func more than once is harmless.
func (b *Bus) Subscribe(fn func(Notice)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish delivers n synchronously to every current subscriber. Subscribers
// must not call Subscribe or unsubscribe from inside the callback.
func (b *Bus) Publish(n Notice) {
	b.mu.RLock()
	fns := make([]func(Notice), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(n)
	}
}

// Len reports the number of active subscribers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
