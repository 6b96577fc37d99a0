package wirely

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventKind classifies a progress event.
type EventKind string

// Event kinds emitted by the agent and the dispatcher.
const (
	KindStatus   EventKind = "status"
	KindThink    EventKind = "think"
	KindProgress EventKind = "progress"
	KindError    EventKind = "error"
	KindSuccess  EventKind = "success"
	KindWarn     EventKind = "warn"
)

// Event is a typed, timestamped notification describing agent or tool
// activity, delivered to observers. Progress is a 0..1 fraction, set for
// KindProgress events; Detail carries extra text for KindError events.
type Event struct {
	ID        string
	Kind      EventKind
	Text      string
	Timestamp time.Time
	Progress  float64
	Detail    string
}

// EmitOption attaches optional fields to an emitted event.
type EmitOption func(*Event)

// WithProgressFraction sets the 0..1 completion fraction of a progress event.
func WithProgressFraction(f float64) EmitOption {
	return func(ev *Event) {
		ev.Progress = f
	}
}

// WithErrorDetail attaches machine-oriented detail text to an error event.
func WithErrorDetail(detail string) EmitOption {
	return func(ev *Event) {
		ev.Detail = detail
	}
}

// NotifierOption configures a Notifier.
type NotifierOption func(*Notifier)

// WithDeliveryDelay sets the fixed pause before each delivery (default
// 10ms). The delay throttles slow observers; it does not affect ordering.
func WithDeliveryDelay(d time.Duration) NotifierOption {
	return func(n *Notifier) {
		if d >= 0 {
			n.delay = d
		}
	}
}

// Notifier is an asynchronous pub/sub channel for progress events with an
// explicit retention policy on the undelivered set:
//
//   - a new status event replaces any pending status event;
//   - a new progress event replaces any pending progress event;
//   - success and error events replace the entire pending set (the loop's
//     terminal message supersedes all in-flight chatter);
//   - think and warn events accumulate.
//
// The policy is preserved exactly as the product behaves: latest wins for
// chatter, terminal clears all. Delivery runs on a single drain loop guarded
// by a boolean flag, so emitting during a delivery never starts a second
// drain.
type Notifier struct {
	mu       sync.Mutex
	idle     *sync.Cond
	pending  []Event
	draining bool
	subs     map[int]func(Event)
	nextSub  int
	delay    time.Duration // immutable after NewNotifier
}

// NewNotifier creates a Notifier.
func NewNotifier(opts ...NotifierOption) *Notifier {
	n := &Notifier{
		subs:  make(map[int]func(Event)),
		delay: 10 * time.Millisecond,
	}
	n.idle = sync.NewCond(&n.mu)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Subscribe registers an observer and returns its unsubscribe function.
// Observers are invoked from the drain goroutine and must not block for
// long; the per-delivery delay is the only pacing applied.
func (n *Notifier) Subscribe(fn func(Event)) (unsubscribe func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextSub
	n.nextSub++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Emit queues an event, applying the retention policy to the pending set,
// and starts the drain loop if one is not already running.
func (n *Notifier) Emit(kind EventKind, text string, opts ...EmitOption) {
	ev := Event{
		ID:        uuid.NewString(),
		Kind:      kind,
		Text:      text,
		Timestamp: time.Now(),
	}
	for _, opt := range opts {
		opt(&ev)
	}

	n.mu.Lock()
	n.pending = collapse(n.pending, ev)
	if n.draining {
		n.mu.Unlock()
		return
	}
	n.draining = true
	n.mu.Unlock()
	go n.drain()
}

// Flush blocks until every pending event has been delivered and the drain
// loop has stopped.
func (n *Notifier) Flush() {
	n.mu.Lock()
	for n.draining || len(n.pending) > 0 {
		n.idle.Wait()
	}
	n.mu.Unlock()
}

// drain delivers pending events one at a time, pausing before each delivery
// so collapsing can happen while the queue is hot.
func (n *Notifier) drain() {
	for {
		if n.delay > 0 {
			time.Sleep(n.delay)
		}
		n.mu.Lock()
		if len(n.pending) == 0 {
			n.draining = false
			n.idle.Broadcast()
			n.mu.Unlock()
			return
		}
		ev := n.pending[0]
		n.pending = n.pending[1:]
		subs := make([]func(Event), 0, len(n.subs))
		for _, fn := range n.subs {
			subs = append(subs, fn)
		}
		n.mu.Unlock()
		for _, fn := range subs {
			fn(ev)
		}
	}
}

// collapse applies the retention policy to the pending (undelivered) set.
func collapse(pending []Event, ev Event) []Event {
	switch ev.Kind {
	case KindSuccess, KindError:
		return []Event{ev}
	case KindStatus, KindProgress:
		out := make([]Event, 0, len(pending)+1)
		for _, p := range pending {
			if p.Kind != ev.Kind {
				out = append(out, p)
			}
		}
		return append(out, ev)
	default:
		return append(pending, ev)
	}
}
