package session

import "time"

// Exchange is one completed chat turn as remembered by the session.
type Exchange struct {
	Query          string    `json:"query"`
	EffectiveQuery string    `json:"effective_query"`
	Answer         string    `json:"answer"`
	Category       string    `json:"category"`
	RoutedTo       string    `json:"routed_to"`
	Timestamp      time.Time `json:"timestamp"`
}

// Session is the volatile conversational state for one chat token.
// Access must go through Store.Acquire so concurrent turns on the same
// token serialize.
type Session struct {
	ID           string
	History      []Exchange
	LastProduct  string
	LastActivity time.Time
}

// HasHistory reports whether at least one turn has completed.
func (s *Session) HasHistory() bool {
	return len(s.History) > 0
}

// LastExchange returns the most recent turn, or nil when the session is new.
func (s *Session) LastExchange() *Exchange {
	if len(s.History) == 0 {
		return nil
	}
	return &s.History[len(s.History)-1]
}
