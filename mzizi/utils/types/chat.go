// mzizi/utils/types/chat.go
package types

// SendRequest submits one user message to a session.
type SendRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// NewChatRequest opens a session; Context selects a tool persona when set.
type NewChatRequest struct {
	Context string `json:"context,omitempty"`
}

// QuickAskRequest delivers a prefilled dashboard prompt. Token identifies
// the delivery; replaying the same token is a no-op.
type QuickAskRequest struct {
	Token  string `json:"token"`
	Prompt string `json:"prompt"`
}

// BranchRequest forks a session at one of its messages.
type BranchRequest struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id"`
}

// EditMessageRequest rewrites one message's text in place.
type EditMessageRequest struct {
	Text string `json:"text"`
}

// WSExchange is the first frame a websocket client sends: a token plus the
// exchange to run.
type WSExchange struct {
	Token string      `json:"token"`
	Send  SendRequest `json:"send"`
}
