package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout is how long a session survives without activity.
	DefaultTimeout = 30 * time.Minute

	// DefaultHistoryLimit caps remembered exchanges per session; older
	// entries are evicted first.
	DefaultHistoryLimit = 10
)

// entry wraps a session with its own mutex so one in-flight turn blocks
// concurrent turns for the same token without holding the store lock.
type entry struct {
	mu   sync.Mutex
	sess *Session
}

// Store is an in-memory session map. Sessions are process-local and
// volatile; a restart forgets everything.
type Store struct {
	mu           sync.RWMutex
	sessions     map[string]*entry
	timeout      time.Duration
	historyLimit int
	now          func() time.Time
}

func NewStore(timeout time.Duration, historyLimit int) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		sessions:     make(map[string]*entry),
		timeout:      timeout,
		historyLimit: historyLimit,
		now:          time.Now,
	}
}

// Acquire returns the session for the given token, creating a fresh one when
// the token is empty or unknown, and locks it for the duration of the turn.
// The caller must invoke release once the turn is committed.
func (s *Store) Acquire(token string) (string, *Session, func()) {
	s.mu.Lock()
	e, ok := s.sessions[token]
	if !ok {
		if token == "" {
			token = uuid.NewString()
		}
		e = &entry{sess: &Session{ID: token, LastActivity: s.now()}}
		s.sessions[token] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	return token, e.sess, e.mu.Unlock
}

// Commit records a finished exchange on the session. The caller must still
// hold the lock obtained from Acquire.
func (s *Store) Commit(sess *Session, ex Exchange, detectedProduct string) {
	ex.Timestamp = s.now()
	sess.History = append(sess.History, ex)
	if over := len(sess.History) - s.historyLimit; over > 0 {
		sess.History = sess.History[over:]
	}
	if detectedProduct != "" {
		sess.LastProduct = detectedProduct
	}
	sess.LastActivity = ex.Timestamp
}

// Sweep drops every session idle past the timeout, measured against the
// given instant, and returns how many were removed. Sessions currently
// locked by an in-flight turn are skipped and picked up on a later sweep.
func (s *Store) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		expired := now.Sub(e.sess.LastActivity) > s.timeout
		e.mu.Unlock()
		if expired {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
