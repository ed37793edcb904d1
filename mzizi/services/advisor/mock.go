// mzizi/services/advisor/mock.go
package advisor

import (
	"context"
	"fmt"
	"sync"

	"mzizi/mzizi/sessions"
	"mzizi/mzizi/types"
)

// Recorded captures one request the mock saw.
type Recorded struct {
	Prompt  string
	Profile types.BusinessProfile
	History []sessions.Turn
}

// Mock is a scripted advisor for tests and offline CLI runs. It replays its
// Replies in order (repeating the last one), or fails every call when Err is
// set.
type Mock struct {
	mu       sync.Mutex
	Replies  []sessions.Reply
	Err      error
	Requests []Recorded
	calls    int
}

var _ sessions.Advisor = (*Mock)(nil)

func (m *Mock) Generate(_ context.Context, prompt string, profile types.BusinessProfile, history []sessions.Turn) (sessions.Reply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Requests = append(m.Requests, Recorded{Prompt: prompt, Profile: profile, History: history})
	if m.Err != nil {
		return sessions.Reply{}, m.Err
	}
	idx := m.calls
	m.calls++
	if len(m.Replies) == 0 {
		return sessions.Reply{Text: fmt.Sprintf("Here is my advice about: %s", prompt)}, nil
	}
	if idx >= len(m.Replies) {
		idx = len(m.Replies) - 1
	}
	return m.Replies[idx], nil
}
