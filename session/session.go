// Package session keeps the state of each open page in memory.
//
// A session is created for every page load and holds the tool workspace, the
// modal and article state, and the last finished download until the browser
// fetches it. Sessions that stay idle longer than the store TTL are dropped
// by a janitor goroutine.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	galaxypdf "github.com/lvillar/galaxypdf"
	"github.com/lvillar/galaxypdf/feedback"
	"github.com/lvillar/galaxypdf/modal"
	"github.com/lvillar/galaxypdf/seo"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is the state of one page load.
type Session struct {
	ID        string
	Workspace *galaxypdf.Workspace
	Modal     *modal.Controller
	Article   *seo.Article

	notifier *feedback.Notifier

	mu         sync.Mutex
	download   *galaxypdf.Download
	lastAccess time.Time
}

// Save keeps d as the pending download, replacing any earlier one.
func (s *Session) Save(d galaxypdf.Download) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.download = &d
	return nil
}

// Download returns the pending download.
func (s *Session) Download() (galaxypdf.Download, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.download == nil {
		return galaxypdf.Download{}, false
	}
	return *s.download, true
}

// Feedback returns the notifier shared by the workspace and the event stream.
func (s *Session) Feedback() *feedback.Notifier {
	return s.notifier
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) close() {
	s.notifier.Close()
}

// Store is an in-memory set of sessions. It is safe for concurrent use.
type Store struct {
	processor        galaxypdf.Processor
	feedbackDuration time.Duration
	ttl              time.Duration
	log              logrus.FieldLogger
	now              func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithTTL sets how long an idle session is kept.
func WithTTL(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithFeedbackDuration sets how long feedback messages stay visible.
func WithFeedbackDuration(d time.Duration) StoreOption {
	return func(s *Store) {
		s.feedbackDuration = d
	}
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l logrus.FieldLogger) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock sets the time source used for idle tracking.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store whose workspaces use p.
func NewStore(p galaxypdf.Processor, opts ...StoreOption) *Store {
	s := &Store{
		processor:        p,
		feedbackDuration: feedback.DefaultDuration,
		ttl:              DefaultTTL,
		log:              logrus.StandardLogger(),
		now:              time.Now,
		sessions:         make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with an empty workspace.
func (st *Store) Create() *Session {
	s := &Session{
		ID:         uuid.NewString(),
		Modal:      &modal.Controller{},
		Article:    &seo.Article{},
		notifier:   feedback.New(st.feedbackDuration),
		lastAccess: st.now(),
	}
	s.Workspace = galaxypdf.New(
		galaxypdf.WithProcessor(st.processor),
		galaxypdf.WithSaver(s),
		galaxypdf.WithNotifier(s.notifier),
		galaxypdf.WithClock(st.now),
	)

	st.mu.Lock()
	st.sessions[s.ID] = s
	n := len(st.sessions)
	st.mu.Unlock()

	st.log.WithFields(logrus.Fields{"session": s.ID, "open": n}).Debug("session created")
	return s
}

// Get returns the session with the given id and marks it as used.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	s.touch(st.now())
	return s, true
}

// Delete closes and removes a session. It is a no-op for unknown ids.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()
	if ok {
		s.close()
	}
}

// Len returns the number of open sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes the sessions idle for longer than the TTL and returns how
// many were removed.
func (st *Store) Sweep() int {
	cutoff := st.now().Add(-st.ttl)

	var expired []*Session
	st.mu.Lock()
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		st.log.WithField("expired", len(expired)).Info("swept idle sessions")
	}
	return len(expired)
}

// Run sweeps the store every interval until ctx is cancelled, then closes
// all remaining sessions.
func (st *Store) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			st.closeAll()
			return
		case <-t.C:
			st.Sweep()
		}
	}
}

func (st *Store) closeAll() {
	st.mu.Lock()
	all := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()
	for _, s := range all {
		s.close()
	}
}
