// Package alarm keeps a fired-but-unacknowledged reminder re-alerting until
// the user acknowledges it, snoozes it, or a hard ceiling elapses.
//
// Each process (the API server and the background worker) runs its own
// manager over its own in-memory registry; the two coordinate through the
// durable store and acknowledgment broadcasts, never shared memory.
package alarm

import (
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Session is the in-memory state of one alarming reminder: the repeating
// timer control plus the rendering context needed to re-render the alert.
type Session struct {
	ReminderID    string
	Title         string
	Body          string
	MinutesBefore int
	VoiceEnabled  bool
	StartedAt     time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

func NewSession(reminderID, title, body string, minutesBefore int, voiceEnabled bool) *Session {
	return &Session{
		ReminderID:    reminderID,
		Title:         title,
		Body:          body,
		MinutesBefore: minutesBefore,
		VoiceEnabled:  voiceEnabled,
		StartedAt:     time.Now(),
		stop:          make(chan struct{}),
	}
}

// Done is closed once the session is cancelled, on every exit path.
func (s *Session) Done() <-chan struct{} {
	return s.stop
}

func (s *Session) cancel() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

// Registry tracks active alarm sessions keyed by reminder id. At most one
// session may exist per reminder id.
type Registry struct {
	mu       sync.Mutex
	sessions *orderedmap.OrderedMap[string, *Session]
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: orderedmap.New[string, *Session](),
	}
}

// Add registers a session. Returns false (and leaves the existing session
// untouched) when the reminder id already has one.
func (r *Registry) Add(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions.Get(s.ReminderID); ok {
		return false
	}

	r.sessions.Set(s.ReminderID, s)

	return true
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(id)

	return s, ok
}

// Cancel removes the session and releases its timer. Returns false when no
// session existed for the id.
func (r *Registry) Cancel(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions.Get(id)

	if !ok {
		return false
	}

	r.sessions.Delete(id)
	s.cancel()

	return true
}

// Active returns the ids of all live sessions in start order.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, 0, r.sessions.Len())

	for pair := r.sessions.Oldest(); pair != nil; pair = pair.Next() {
		ids = append(ids, pair.Key)
	}

	return ids
}
