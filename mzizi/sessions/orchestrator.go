// mzizi/sessions/orchestrator.go
package sessions

import (
	"context"

	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/logging"

	"go.uber.org/zap"
)

// ExchangeWindow bounds how many recent messages accompany each advisor
// request.
const ExchangeWindow = 10

// ApologyText is appended as a model message when the advisor service fails.
const ApologyText = "I'm having trouble connecting right now. Please try again."

// TitleLimit is how many characters of the first user message become the
// session title; longer texts are truncated with an ellipsis.
const TitleLimit = 30

// Turn is one history entry of an advisor request.
type Turn struct {
	Role  string `json:"role"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

// Reply is what the advisor service answers with. At most one of Structured
// and Pricing is expected to be set.
type Reply struct {
	Text       string
	Structured *AdviceCard
	Pricing    *PricingBreakdown
}

// Advisor is the single-exchange contract of the external advisor service.
type Advisor interface {
	Generate(ctx context.Context, prompt string, profile types.BusinessProfile, history []Turn) (Reply, error)
}

// Orchestrator runs one exchange: optimistic user append, bounded history
// window to the advisor, reconcile the reply (or a fixed apology) back into
// the session. Callers are responsible for allowing only one exchange in
// flight per session; the orchestrator itself does not queue or reject.
type Orchestrator struct {
	store   *Store
	advisor Advisor
}

func NewOrchestrator(store *Store, advisor Advisor) *Orchestrator {
	return &Orchestrator{store: store, advisor: advisor}
}

// Send appends the user's message, dispatches the exchange window to the
// advisor and appends the resulting model message. The returned message is
// the model's reply (or the apology). ok=false means the session id did not
// resolve and nothing happened. The optimistic user message is never rolled
// back, and a reply arriving after its session was deleted is discarded
// without error.
func (o *Orchestrator) Send(ctx context.Context, profile types.BusinessProfile, sessionID, text string) (Message, bool) {
	userMsg := NewUserMessage(text)
	appended := false
	o.store.UpdateMessages(sessionID, func(msgs []Message) []Message {
		appended = true
		return append(msgs, userMsg)
	})
	if !appended {
		return Message{}, false
	}

	cur, _ := o.store.Get(sessionID)
	window := buildWindow(cur.Messages)

	reply, err := o.advisor.Generate(ctx, text, profile, window)
	if err != nil {
		logging.ErrorLogger.Error("advisor exchange failed",
			zap.String("session_id", sessionID), zap.Error(err))
		apology := NewModelMessage(ApologyText)
		o.store.UpdateMessages(sessionID, func(msgs []Message) []Message {
			return append(msgs, apology)
		})
		return apology, true
	}

	aiMsg := NewModelMessage(reply.Text)
	if reply.Structured != nil && reply.Pricing != nil {
		logging.AppLogger.Warn("advisor reply carried both structured advice and pricing, keeping advice",
			zap.String("session_id", sessionID))
		reply.Pricing = nil
	}
	aiMsg.StructuredAdvice = reply.Structured
	aiMsg.Pricing = reply.Pricing

	firstExchange := false
	o.store.UpdateMessages(sessionID, func(msgs []Message) []Message {
		// Seed + first user message: this exchange names the session.
		firstExchange = len(msgs) <= 2
		return append(msgs, aiMsg)
	})
	if firstExchange {
		o.store.SetTitle(sessionID, deriveTitle(text))
	}
	return aiMsg, true
}

func buildWindow(msgs []Message) []Turn {
	start := 0
	if len(msgs) > ExchangeWindow {
		start = len(msgs) - ExchangeWindow
	}
	window := make([]Turn, 0, len(msgs)-start)
	for _, m := range msgs[start:] {
		window = append(window, Turn{
			Role:  string(m.Role),
			Parts: []Part{{Text: m.Text}},
		})
	}
	return window
}

func deriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) <= TitleLimit {
		return text
	}
	return string(runes[:TitleLimit]) + "..."
}
