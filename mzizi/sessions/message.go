// mzizi/sessions/message.go
package sessions

import (
	"strconv"
	"sync"
	"time"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is a single entry in a session timeline. Everything except Text is
// fixed at creation; Text may be rewritten in place by EditMessage.
type Message struct {
	ID               string            `json:"id"`
	Role             Role              `json:"role"`
	Text             string            `json:"text"`
	Timestamp        int64             `json:"timestamp"`
	StructuredAdvice *AdviceCard       `json:"structuredAdvice,omitempty"`
	Pricing          *PricingBreakdown `json:"pricing,omitempty"`
}

type AdviceAction struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// AdviceCard is the structured-advice payload a model message may carry.
type AdviceCard struct {
	KeyInsight string         `json:"keyInsight"`
	Actions    []AdviceAction `json:"actions"`
	NextStep   string         `json:"nextStep"`
	Confidence string         `json:"confidence"` // "High" | "Medium" | "Low"
}

type CostLine struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// PricingBreakdown is the pricing payload a model message may carry.
type PricingBreakdown struct {
	ItemName         string     `json:"itemName"`
	Costs            []CostLine `json:"costs"`
	TotalCost        float64    `json:"totalCost"`
	MarkupPercentage float64    `json:"markupPercentage"`
	RecommendedPrice float64    `json:"recommendedPrice"`
	ProfitAmount     float64    `json:"profitAmount"`
	Currency         string     `json:"currency"`
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NextID returns a fresh id derived from the current epoch-ms clock.
// Ids handed out by one process are strictly increasing, so creation order
// can always be recovered from them.
func NextID() string {
	idMu.Lock()
	defer idMu.Unlock()
	now := time.Now().UnixMilli()
	if now <= lastID {
		now = lastID + 1
	}
	lastID = now
	return strconv.FormatInt(now, 10)
}

func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// NewUserMessage builds a user-authored message stamped with the current time.
func NewUserMessage(text string) Message {
	return Message{ID: NextID(), Role: RoleUser, Text: text, Timestamp: NowMillis()}
}

// NewModelMessage builds a model-authored message stamped with the current time.
func NewModelMessage(text string) Message {
	return Message{ID: NextID(), Role: RoleModel, Text: text, Timestamp: NowMillis()}
}

func cloneMessages(msgs []Message) []Message {
	if msgs == nil {
		return nil
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
