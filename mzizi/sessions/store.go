// mzizi/sessions/store.go
package sessions

import "sync"

// Store holds one profile's session collection in memory. Every mutation
// replaces whole values (sessions are copied in and out), so a reader never
// observes a half-applied change. After each mutation the change hook fires
// with a snapshot of the collection; the lifecycle controller uses it for
// the best-effort write-through to the persistence adapter.
type Store struct {
	mu       sync.RWMutex
	sessions []Session // head = most recently created
	onChange func([]Session)
}

func NewStore() *Store {
	return &Store{}
}

// SetOnChange registers the write-through hook. The hook runs outside the
// store lock and must not call back into the store.
func (s *Store) SetOnChange(fn func([]Session)) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Create allocates a fresh session seeded with exactly the given messages
// and inserts it at the head of the collection. The seed messages are kept
// as-is: ids and timestamps are not regenerated, which is what lets the
// branch engine preserve a cloned prefix.
func (s *Store) Create(initial []Message, title string) Session {
	now := NowMillis()
	sess := Session{
		ID:           NextID(),
		Title:        title,
		Messages:     cloneMessages(initial),
		CreatedAt:    now,
		LastModified: now,
	}

	s.mu.Lock()
	next := make([]Session, 0, len(s.sessions)+1)
	next = append(next, sess)
	next = append(next, s.sessions...)
	s.sessions = next
	hook, snap := s.onChange, cloneSessions(next)
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
	return sess.Clone()
}

// Get returns a copy of the session, or ok=false when the id does not resolve.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.ID == id {
			return sess.Clone(), true
		}
	}
	return Session{}, false
}

// List returns a copy of the collection in its in-memory order.
func (s *Store) List() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSessions(s.sessions)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// MostRecent returns the session with the largest LastModified.
func (s *Store) MostRecent() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	best := -1
	for i, sess := range s.sessions {
		if best == -1 || sess.LastModified > s.sessions[best].LastModified {
			best = i
		}
	}
	if best == -1 {
		return Session{}, false
	}
	return s.sessions[best].Clone(), true
}

// UpdateMessages replaces the session's messages with transform(current) and
// bumps LastModified. An unresolvable id is a quiet no-op: the session may
// have been deleted while a reply was in flight, and that result is simply
// discarded.
func (s *Store) UpdateMessages(id string, transform func([]Message) []Message) {
	s.mu.Lock()
	hit := false
	next := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		if sess.ID == id {
			updated := sess.Clone()
			updated.Messages = transform(cloneMessages(sess.Messages))
			updated.LastModified = NowMillis()
			next[i] = updated
			hit = true
		} else {
			next[i] = sess
		}
	}
	if !hit {
		s.mu.Unlock()
		return
	}
	s.sessions = next
	hook, snap := s.onChange, cloneSessions(next)
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

// SetTitle updates the title only. It does not bump LastModified; the message
// update that triggered the rename already did.
func (s *Store) SetTitle(id, title string) {
	s.mu.Lock()
	hit := false
	next := make([]Session, len(s.sessions))
	for i, sess := range s.sessions {
		if sess.ID == id {
			updated := sess.Clone()
			updated.Title = title
			next[i] = updated
			hit = true
		} else {
			next[i] = sess
		}
	}
	if !hit {
		s.mu.Unlock()
		return
	}
	s.sessions = next
	hook, snap := s.onChange, cloneSessions(next)
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

// Delete removes the session. Deleting the active session is the caller's
// problem: the lifecycle controller re-resolves afterwards.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	next := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.ID != id {
			next = append(next, sess)
		}
	}
	if len(next) == len(s.sessions) {
		s.mu.Unlock()
		return
	}
	s.sessions = next
	hook, snap := s.onChange, cloneSessions(next)
	s.mu.Unlock()

	if hook != nil {
		hook(snap)
	}
}

// DeleteMessage removes one message from the timeline.
func (s *Store) DeleteMessage(sessionID, messageID string) {
	s.UpdateMessages(sessionID, func(msgs []Message) []Message {
		out := make([]Message, 0, len(msgs))
		for _, m := range msgs {
			if m.ID != messageID {
				out = append(out, m)
			}
		}
		return out
	})
}

// EditMessage rewrites the text of one message in place. Nothing downstream
// is deleted or regenerated: editing a user message leaves the model's prior
// reply in the same timeline untouched.
func (s *Store) EditMessage(sessionID, messageID, newText string) {
	s.UpdateMessages(sessionID, func(msgs []Message) []Message {
		for i := range msgs {
			if msgs[i].ID == messageID {
				msgs[i].Text = newText
			}
		}
		return msgs
	})
}

// Replace swaps in a collection loaded from persistence.
// It does not fire the change hook: hydration is not a mutation.
func (s *Store) Replace(list []Session) {
	s.mu.Lock()
	s.sessions = cloneSessions(list)
	s.mu.Unlock()
}
