// mzizi/sessions/session.go
package sessions

import "sort"

// Session is one independent conversation timeline belonging to a profile.
// Messages stay in creation order; that order is the canonical timeline.
type Session struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Messages     []Message `json:"messages"`
	CreatedAt    int64     `json:"createdAt"`
	LastModified int64     `json:"lastModified"`
}

// Clone returns a copy whose Messages slice is independent of the receiver's.
func (s Session) Clone() Session {
	out := s
	out.Messages = cloneMessages(s.Messages)
	return out
}

func cloneSessions(list []Session) []Session {
	out := make([]Session, len(list))
	for i, s := range list {
		out[i] = s.Clone()
	}
	return out
}

// SortByLastModified orders sessions most-recently-modified first.
// This is the persisted order; the in-memory order may differ.
func SortByLastModified(list []Session) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].LastModified > list[j].LastModified
	})
}
