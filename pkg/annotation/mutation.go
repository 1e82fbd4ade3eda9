package annotation

import (
	"sort"
	"sync"

	"github.com/Dicklesworthstone/friendly_charts/pkg/model"
)

// MutationType tells what happened to an annotated node
type MutationType int

const (
	MutationAttribute MutationType = iota
	MutationRemoved
	MutationMoved
)

func (t MutationType) String() string {
	switch t {
	case MutationAttribute:
		return "attribute"
	case MutationRemoved:
		return "removed"
	case MutationMoved:
		return "moved"
	}
	return "unknown"
}

// Mutation is a single structural change to an annotated node
type Mutation struct {
	Type    MutationType
	NodeID  string
	OldKind model.Kind
	NewKind model.Kind
}

// Touches reports whether the mutation concerns the given kind before or after
func (m Mutation) Touches(kind model.Kind) bool {
	return m.OldKind == kind || m.NewKind == kind
}

// Batch is every mutation recorded between two commits
type Batch []Mutation

// Subscription receives committed batches. Delivery never blocks the
// writer: batches queue up until the subscriber drains them.
type Subscription struct {
	mu     sync.Mutex
	queue  []Batch
	ready  chan struct{}
	closed bool
	cancel func()
}

// Ready is signalled whenever at least one batch is queued
func (s *Subscription) Ready() <-chan struct{} {
	return s.ready
}

// Drain returns and clears all queued batches in commit order
func (s *Subscription) Drain() []Batch {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.queue
	s.queue = nil
	return out
}

// Close unsubscribes. Queued batches are dropped. Safe to call more than once.
func (s *Subscription) Close() {
	s.cancel()
	s.mu.Lock()
	s.closed = true
	s.queue = nil
	s.mu.Unlock()
}

func (s *Subscription) push(b Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.queue = append(s.queue, b)
	select {
	case s.ready <- struct{}{}:
	default:
	}
}

// Subscribe registers a receiver for committed batches
func (d *Document) Subscribe() *Subscription {
	s := &Subscription{ready: make(chan struct{}, 1)}

	d.mu.Lock()
	id := d.nextSub
	d.nextSub++
	d.subs[id] = s
	d.mu.Unlock()

	s.cancel = func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
	return s
}

// Pending returns the number of uncommitted mutations
func (d *Document) Pending() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.pending)
}

// Commit publishes all pending mutations as a single batch. Many writes
// followed by one Commit produce exactly one batch. Returns false when
// nothing was pending.
func (d *Document) Commit() bool {
	d.mu.Lock()
	if len(d.pending) == 0 {
		d.mu.Unlock()
		return false
	}
	batch := d.pending
	d.pending = nil
	ids := make([]int, 0, len(d.subs))
	for id := range d.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]*Subscription, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, d.subs[id])
	}
	d.mu.Unlock()

	for _, s := range subs {
		s.push(batch)
	}
	return true
}

// Discard drops pending mutations without publishing them
func (d *Document) Discard() {
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}
