// mzizi/sessions/lifecycle.go
package sessions

import (
	"context"
	"fmt"
	"sync"

	"mzizi/mzizi/catalog"
	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/logging"

	"go.uber.org/zap"
)

// State names the lifecycle machine's position. Resuming, ToolContext and
// QuickAsk are transit states: every entry path settles on Active.
type State string

const (
	StateNoSession   State = "no_session"
	StateResuming    State = "resuming"
	StateToolContext State = "tool_context"
	StateQuickAsk    State = "quick_ask"
	StateActive      State = "active"
)

// QuickAsk is a prefilled prompt delivered from an outside surface, e.g. a
// dashboard shortcut. Token identifies the delivery, not the prompt value:
// the controller fires once per token, so the same prompt text under a new
// token starts another session.
type QuickAsk struct {
	Token  string `json:"token"`
	Prompt string `json:"prompt"`
}

// Controller owns one profile's session lifecycle: it decides, on each
// input (profile switch, tool context, quick-ask, deletion), whether to
// resume the most recent session or spawn a new one.
type Controller struct {
	mu      sync.Mutex
	store   *Store
	adapter *Adapter
	tools   *catalog.Catalog
	orch    *Orchestrator

	profile       types.BusinessProfile
	state         State
	activeID      string
	activeContext string // tool id the active session was opened for
	pending       string // staged quick-ask input, not yet sent
	fired         map[string]struct{}
}

func NewController(adapter *Adapter, tools *catalog.Catalog, advisor Advisor) *Controller {
	store := NewStore()
	return &Controller{
		store:   store,
		adapter: adapter,
		tools:   tools,
		orch:    NewOrchestrator(store, advisor),
		state:   StateNoSession,
		fired:   make(map[string]struct{}),
	}
}

func greeting(p types.BusinessProfile) string {
	return fmt.Sprintf("Hello %s! What's on your mind regarding %s today?",
		p.OwnerName, p.BusinessName)
}

// SetProfile switches the controller to a profile's persisted collection.
// All in-memory session state from the previous profile is dropped; the
// most recently modified persisted session resumes, or a fresh greeting
// session is seeded when none exist.
func (c *Controller) SetProfile(ctx context.Context, profile types.BusinessProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.profile = profile
	c.state = StateResuming
	c.activeID = ""
	c.activeContext = ""
	c.pending = ""

	pid := profile.ID
	c.store.SetOnChange(nil)
	c.store.Replace(nil)

	list, ok := c.adapter.Load(ctx, pid)
	c.store.SetOnChange(func(snapshot []Session) {
		if len(snapshot) == 0 {
			return
		}
		// Write-through is fire-and-forget; the adapter logs failures.
		c.adapter.Save(context.Background(), pid, snapshot)
	})

	if ok && len(list) > 0 {
		c.store.Replace(list)
		// Persisted order is lastModified-desc, so the head is the resume target.
		c.activeID = list[0].ID
		c.state = StateActive
		return
	}

	c.state = StateNoSession
	c.seedGreeting()
}

// seedGreeting creates a greeting session and makes it active. Callers hold c.mu.
func (c *Controller) seedGreeting() Session {
	seed := NewModelMessage(greeting(c.profile))
	sess := c.store.Create([]Message{seed}, "New Conversation")
	c.activeID = sess.ID
	c.activeContext = ""
	c.state = StateActive
	return sess
}

// NewChat starts a plain conversation seeded with the profile greeting.
func (c *Controller) NewChat() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seedGreeting()
}

// ToolContext handles an externally supplied tool-context signal. A new
// session with the tool's welcome opens when the active session has already
// progressed past its seed message or was opened for a different context;
// otherwise the existing one is kept.
func (c *Controller) ToolContext(toolID string) Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = StateToolContext
	tool, found := c.tools.Find(toolID)
	if !found {
		logging.AppLogger.Warn("unknown tool context, opening plain chat",
			zap.String("tool_id", toolID))
		return c.seedGreeting()
	}

	if cur, ok := c.store.Get(c.activeID); ok {
		if len(cur.Messages) <= 1 && c.activeContext == toolID {
			c.state = StateActive
			return cur
		}
	}

	seed := NewModelMessage(tool.Welcome())
	sess := c.store.Create([]Message{seed}, tool.Title)
	c.activeID = sess.ID
	c.activeContext = toolID
	c.state = StateActive
	return sess
}

// HandleQuickAsk opens a fresh greeting session and stages the delivered
// prompt as pending input for the user to review before sending. Each
// delivery token fires at most once; a replayed token is a no-op.
func (c *Controller) HandleQuickAsk(qa QuickAsk) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, done := c.fired[qa.Token]; done {
		sess, _ := c.store.Get(c.activeID)
		return sess, false
	}
	c.fired[qa.Token] = struct{}{}

	c.state = StateQuickAsk
	sess := c.seedGreeting()
	c.pending = qa.Prompt
	return sess, true
}

// PendingInput reports the staged quick-ask prompt, if any.
func (c *Controller) PendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// TakePendingInput returns and clears the staged prompt.
func (c *Controller) TakePendingInput() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = ""
	return p
}

// Active returns the active session, if one resolves.
func (c *Controller) Active() (Session, bool) {
	c.mu.Lock()
	id := c.activeID
	c.mu.Unlock()
	return c.store.Get(id)
}

// Select makes an existing session active.
func (c *Controller) Select(id string) bool {
	sess, ok := c.store.Get(id)
	if !ok {
		return false
	}
	c.mu.Lock()
	c.activeID = sess.ID
	c.activeContext = ""
	c.state = StateActive
	c.mu.Unlock()
	return true
}

// Sessions lists the profile's sessions in memory order.
func (c *Controller) Sessions() []Session {
	return c.store.List()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Profile() types.BusinessProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile
}

// DeleteSession removes a session. When it was the active one, the most
// recently modified survivor takes over; with nothing left the machine
// passes through NoSession and immediately re-seeds a greeting session.
func (c *Controller) DeleteSession(id string) {
	c.store.Delete(id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeID != id {
		return
	}
	if next, ok := c.store.MostRecent(); ok {
		c.activeID = next.ID
		c.activeContext = ""
		c.state = StateActive
		return
	}
	c.state = StateNoSession
	c.seedGreeting()
}

// EditMessage rewrites one message's text in place (no downstream effects).
func (c *Controller) EditMessage(sessionID, messageID, newText string) {
	c.store.EditMessage(sessionID, messageID, newText)
}

// DeleteMessage removes one message from a timeline.
func (c *Controller) DeleteMessage(sessionID, messageID string) {
	c.store.DeleteMessage(sessionID, messageID)
}

// Send runs one advisor exchange against a session. The profile is read
// under lock but the network round-trip happens outside it, so other
// lifecycle inputs stay serviceable while a reply is in flight.
func (c *Controller) Send(ctx context.Context, sessionID, text string) (Message, bool) {
	c.mu.Lock()
	profile := c.profile
	c.mu.Unlock()
	return c.orch.Send(ctx, profile, sessionID, text)
}
