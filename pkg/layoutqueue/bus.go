// Package layoutqueue carries layout changes from the monitor to the sinks.
//
// Every sink subscribes under its own name and receives every published
// value into a private bounded inbox, so sinks draining at different rates
// never steal values from each other. A full inbox drops its oldest value;
// Publish never blocks.
package layoutqueue

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// DefaultCapacity is used when Subscribe is given a non-positive capacity.
const DefaultCapacity = 16

var (
	ErrQueueClosed      = errors.New("queue closed")
	ErrSubscriberExists = errors.New("subscriber already exists")
)

type Bus struct {
	mu        sync.RWMutex
	inboxes   map[string]*Inbox
	published uint64
	closed    bool
}

func New() *Bus {
	return &Bus{
		inboxes: make(map[string]*Inbox),
	}
}

// Subscribe registers a sink. Values published before the call are not
// replayed.
func (b *Bus) Subscribe(name string, capacity int) (*Inbox, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrQueueClosed
	}

	if _, exists := b.inboxes[name]; exists {
		return nil, fmt.Errorf("subscribe %q: %w", name, ErrSubscriberExists)
	}

	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	inbox := newInbox(name, capacity)
	b.inboxes[name] = inbox

	return inbox, nil
}

// Publish appends code to every inbox. It is safe to call from any
// goroutine and is a no-op once the bus is closed.
func (b *Bus) Publish(code layouts.LayoutCode) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	atomic.AddUint64(&b.published, 1)

	for _, inbox := range b.inboxes {
		inbox.push(code)
	}
}

func (b *Bus) Published() uint64 {
	return atomic.LoadUint64(&b.published)
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	for _, inbox := range b.inboxes {
		inbox.close()
	}
}
