// Package feedback holds the transient message shown after a user action.
//
// At most one message is visible. Showing a message stops the expiry timer of
// the previous one, so a stale timer never clears a newer message. Every change
// is broadcast to subscribers.
package feedback

import (
	"sync"
	"time"
)

// DefaultDuration is how long a message stays visible.
const DefaultDuration = 3 * time.Second

// Severity classifies a message.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
)

// Message is a visible notification.
type Message struct {
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// Update is sent to subscribers on every change. Message is nil once the
// notification has been cleared.
type Update struct {
	Seq     uint64   `json:"seq"`
	Message *Message `json:"message"`
}

// Timer is the part of *time.Timer the notifier needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it once wrapped.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Notifier.
type Option func(*Notifier)

// WithAfterFunc replaces the timer source, mainly for tests.
func WithAfterFunc(af AfterFunc) Option {
	return func(n *Notifier) {
		n.afterFunc = af
	}
}

// Notifier owns the current message and its expiry timer.
type Notifier struct {
	mu        sync.Mutex
	duration  time.Duration
	afterFunc AfterFunc
	current   *Message
	seq       uint64
	timer     Timer
	subs      map[chan Update]struct{}
	closed    bool
}

// New creates a notifier whose messages expire after d.
func New(d time.Duration, opts ...Option) *Notifier {
	if d <= 0 {
		d = DefaultDuration
	}
	n := &Notifier{
		duration: d,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		subs: make(map[chan Update]struct{}),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Show replaces the current message and schedules its expiry.
func (n *Notifier) Show(text string, sev Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}

	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &Message{Text: text, Severity: sev}
	n.timer = n.afterFunc(n.duration, func() { n.expire(seq) })
	n.broadcast()
}

// expire clears the message only if it is still the one scheduled as seq.
func (n *Notifier) expire(seq uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.seq != seq || n.current == nil {
		return
	}
	n.seq++
	n.current = nil
	n.timer = nil
	n.broadcast()
}

// Clear removes the current message immediately.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || n.current == nil {
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	n.current = nil
	n.broadcast()
}

// Current returns the visible message, if any.
func (n *Notifier) Current() (Message, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Message{}, false
	}
	return *n.current, true
}

// Subscribe returns a channel of updates and a function that ends the
// subscription. The current state is delivered first. Updates are dropped
// for a subscriber whose buffer is full.
func (n *Notifier) Subscribe() (<-chan Update, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(chan Update, 8)
	if n.closed {
		close(ch)
		return ch, func() {}
	}
	ch <- n.snapshot()
	n.subs[ch] = struct{}{}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			if _, ok := n.subs[ch]; ok {
				delete(n.subs, ch)
				close(ch)
			}
		})
	}
	return ch, cancel
}

// Close stops the pending timer and ends all subscriptions.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return
	}
	n.closed = true
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	for ch := range n.subs {
		close(ch)
	}
	n.subs = nil
}

func (n *Notifier) snapshot() Update {
	u := Update{Seq: n.seq}
	if n.current != nil {
		m := *n.current
		u.Message = &m
	}
	return u
}

// broadcast must be called with n.mu held.
func (n *Notifier) broadcast() {
	u := n.snapshot()
	for ch := range n.subs {
		select {
		case ch <- u:
		default:
		}
	}
}
