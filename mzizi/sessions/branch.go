// mzizi/sessions/branch.go
package sessions

// BranchMarkerText is the synthetic message appended at the fork point of a
// branched session.
const BranchMarkerText = "--- Conversation branched from previous chat ---"

// Branch forks a new session from the source timeline's prefix up to and
// including messageID. The prefix is carried over verbatim (ids and
// timestamps preserved), one marker message is appended, and the new session
// becomes active. The source session is left untouched. An unresolvable
// session or message id is a no-op.
func (c *Controller) Branch(sessionID, messageID string) (Session, bool) {
	src, ok := c.store.Get(sessionID)
	if !ok {
		return Session{}, false
	}
	idx := -1
	for i, m := range src.Messages {
		if m.ID == messageID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Session{}, false
	}

	prefix := cloneMessages(src.Messages[:idx+1])
	branched := c.store.Create(prefix, "Branch: "+src.Title)
	c.store.UpdateMessages(branched.ID, func(msgs []Message) []Message {
		return append(msgs, NewModelMessage(BranchMarkerText))
	})

	c.mu.Lock()
	c.activeID = branched.ID
	c.activeContext = ""
	c.state = StateActive
	c.mu.Unlock()

	out, _ := c.store.Get(branched.ID)
	return out, true
}
