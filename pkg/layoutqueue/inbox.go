package layoutqueue

import (
	"codeberg.org/miketth/langflash/pkg/layouts"
	"sync"
)

// Stats counts what happened to values published to one inbox.
type Stats struct {
	Delivered uint64
	Dropped   uint64
}

// Inbox is a bounded FIFO owned by one sink. When it is full the oldest
// value is dropped to make room.
type Inbox struct {
	name string

	mu     sync.Mutex
	buf    []layouts.LayoutCode
	head   int
	count  int
	stats  Stats
	closed bool
}

func newInbox(name string, capacity int) *Inbox {
	return &Inbox{
		name: name,
		buf:  make([]layouts.LayoutCode, capacity),
	}
}

func (i *Inbox) Name() string {
	return i.name
}

func (i *Inbox) push(code layouts.LayoutCode) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return
	}

	if i.count == len(i.buf) {
		i.head = (i.head + 1) % len(i.buf)
		i.count--
		i.stats.Dropped++
	}

	i.buf[(i.head+i.count)%len(i.buf)] = code
	i.count++
	i.stats.Delivered++
}

// Drain removes and returns everything queued, oldest first. It never
// blocks and returns nil when the inbox is empty.
func (i *Inbox) Drain() []layouts.LayoutCode {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.count == 0 {
		return nil
	}

	out := make([]layouts.LayoutCode, 0, i.count)
	for n := 0; n < i.count; n++ {
		out = append(out, i.buf[(i.head+n)%len(i.buf)])
	}
	i.head, i.count = 0, 0

	return out
}

// Latest drains the inbox and reports only the newest value.
func (i *Inbox) Latest() (layouts.LayoutCode, bool) {
	codes := i.Drain()
	if len(codes) == 0 {
		return layouts.LayoutCode{}, false
	}
	return codes[len(codes)-1], true
}

func (i *Inbox) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.count
}

func (i *Inbox) Stats() Stats {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.stats
}

func (i *Inbox) close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.closed = true
}
