// mzizi/controllers/chat.go
package controllers

import (
	"context"
	"sync"

	"mzizi/mzizi/catalog"
	"mzizi/mzizi/sessions"
	"mzizi/mzizi/sources/psql/dao"
	"mzizi/mzizi/utils/logging"

	"go.uber.org/zap"
)

// Suggestions are the quick prompt chips offered while a session is still
// near-empty.
var Suggestions = []string{
	"How do I price my product?",
	"Ways to get more customers?",
	"Explain cash flow to me",
}

// ChatState is the full conversational state handed to a calling surface.
type ChatState struct {
	State           sessions.State     `json:"state"`
	ActiveSessionID string             `json:"active_session_id,omitempty"`
	PendingInput    string             `json:"pending_input,omitempty"`
	Sessions        []sessions.Session `json:"sessions"`
	Suggestions     []string           `json:"suggestions"`
	Tools           []catalog.Tool     `json:"tools"`
}

// ChatController owns one lifecycle controller per profile, created lazily
// on first touch and hydrated from the persistence adapter.
type ChatController struct {
	mu      sync.Mutex
	adapter *sessions.Adapter
	dao     *dao.ProfileDAO
	tools   *catalog.Catalog
	advisor sessions.Advisor
	ctrls   map[string]*sessions.Controller
}

func NewChatController(adapter *sessions.Adapter, profileDAO *dao.ProfileDAO, tools *catalog.Catalog, advisor sessions.Advisor) *ChatController {
	return &ChatController{
		adapter: adapter,
		dao:     profileDAO,
		tools:   tools,
		advisor: advisor,
		ctrls:   make(map[string]*sessions.Controller),
	}
}

func (c *ChatController) controllerFor(ctx context.Context, profileID string) (*sessions.Controller, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctrl, ok := c.ctrls[profileID]; ok {
		return ctrl, nil
	}
	profile, err := c.dao.GetProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	ctrl := sessions.NewController(c.adapter, c.tools, c.advisor)
	ctrl.SetProfile(ctx, profile)
	c.ctrls[profileID] = ctrl
	logging.AppLogger.Info("chat controller hydrated",
		zap.String("profile_id", profileID), zap.Int("sessions", len(ctrl.Sessions())))
	return ctrl, nil
}

// State reports the profile's current conversational state.
func (c *ChatController) State(ctx context.Context, profileID string) (ChatState, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return ChatState{}, err
	}
	st := ChatState{
		State:        ctrl.State(),
		PendingInput: ctrl.PendingInput(),
		Sessions:     ctrl.Sessions(),
		Suggestions:  Suggestions,
		Tools:        c.tools.Tools(),
	}
	if active, ok := ctrl.Active(); ok {
		st.ActiveSessionID = active.ID
	}
	return st, nil
}

// NewChat opens a session: a tool-context one when toolID is set, otherwise
// a plain greeting session.
func (c *ChatController) NewChat(ctx context.Context, profileID, toolID string) (sessions.Session, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return sessions.Session{}, err
	}
	if toolID != "" {
		return ctrl.ToolContext(toolID), nil
	}
	return ctrl.NewChat(), nil
}

// QuickAsk stages a delivered prompt in a fresh session. fired=false means
// the delivery token was already handled.
func (c *ChatController) QuickAsk(ctx context.Context, profileID string, qa sessions.QuickAsk) (sessions.Session, bool, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return sessions.Session{}, false, err
	}
	sess, fired := ctrl.HandleQuickAsk(qa)
	return sess, fired, nil
}

// Send runs one advisor exchange. ok=false means the session id did not
// resolve.
func (c *ChatController) Send(ctx context.Context, profileID, sessionID, text string) (sessions.Message, bool, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return sessions.Message{}, false, err
	}
	msg, ok := ctrl.Send(ctx, sessionID, text)
	return msg, ok, nil
}

// Branch forks a session at a message. ok=false when either id is unknown.
func (c *ChatController) Branch(ctx context.Context, profileID, sessionID, messageID string) (sessions.Session, bool, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return sessions.Session{}, false, err
	}
	sess, ok := ctrl.Branch(sessionID, messageID)
	return sess, ok, nil
}

// Select makes an existing session the active one.
func (c *ChatController) Select(ctx context.Context, profileID, sessionID string) (bool, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return false, err
	}
	return ctrl.Select(sessionID), nil
}

// Sessions lists the profile's sessions.
func (c *ChatController) Sessions(ctx context.Context, profileID string) ([]sessions.Session, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return ctrl.Sessions(), nil
}

// Messages returns one session's timeline. ok=false when the id is unknown.
func (c *ChatController) Messages(ctx context.Context, profileID, sessionID string) ([]sessions.Message, bool, error) {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return nil, false, err
	}
	for _, s := range ctrl.Sessions() {
		if s.ID == sessionID {
			return s.Messages, true, nil
		}
	}
	return nil, false, nil
}

// DeleteSession removes a session; the lifecycle controller re-resolves the
// active one.
func (c *ChatController) DeleteSession(ctx context.Context, profileID, sessionID string) error {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return err
	}
	ctrl.DeleteSession(sessionID)
	return nil
}

// EditMessage rewrites one message's text in place.
func (c *ChatController) EditMessage(ctx context.Context, profileID, sessionID, messageID, text string) error {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return err
	}
	ctrl.EditMessage(sessionID, messageID, text)
	return nil
}

// DeleteMessage removes one message from a timeline.
func (c *ChatController) DeleteMessage(ctx context.Context, profileID, sessionID, messageID string) error {
	ctrl, err := c.controllerFor(ctx, profileID)
	if err != nil {
		return err
	}
	ctrl.DeleteMessage(sessionID, messageID)
	return nil
}
