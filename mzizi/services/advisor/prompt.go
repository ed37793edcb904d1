// mzizi/services/advisor/prompt.go
package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"mzizi/mzizi/sessions"
	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/jsonutils"
)

// SystemInstruction builds the advisor persona around one business profile.
// The structured-payload rules at the end are what parseReply picks apart.
func SystemInstruction(p types.BusinessProfile) string {
	var b strings.Builder
	b.WriteString("You are Mzizi, a practical business advisor for small businesses. ")
	fmt.Fprintf(&b, "You are advising %s, owner of %s, a %s business based in %s. ",
		p.OwnerName, p.BusinessName, p.BusinessType, p.Country)
	fmt.Fprintf(&b, "Revenue range: %s. Team size: %s. Primary strength: %s. ",
		p.RevenueRange, p.TeamSize, p.PrimaryStrength)
	if len(p.Goals) > 0 {
		fmt.Fprintf(&b, "Their goals: %s. ", strings.Join(p.Goals, ", "))
	}
	fmt.Fprintf(&b, "Quote money amounts in %s. ", p.Currency)
	b.WriteString("Keep answers short, concrete and encouraging.\n\n")
	b.WriteString("When your advice fits a key-insight / action-list / next-step shape, ")
	b.WriteString("append a fenced ```json block shaped like ")
	b.WriteString(`{"kind":"advice","keyInsight":"...","actions":[{"text":"...","completed":false}],"nextStep":"...","confidence":"High"}. `)
	b.WriteString("When the user asks what to charge for a product, append ")
	b.WriteString(`{"kind":"pricing","itemName":"...","costs":[{"name":"...","amount":0}],"totalCost":0,"markupPercentage":0,"recommendedPrice":0,"profitAmount":0,"currency":"..."}. `)
	b.WriteString("Never append more than one block; otherwise answer in plain text.")
	return b.String()
}

// parseReply splits a model reply into its conversational text and at most
// one structured payload, keyed by the "kind" discriminator.
func parseReply(text string) sessions.Reply {
	reply := sessions.Reply{Text: text}

	raw := jsonutils.ExtractJSON(text)
	if raw == "" || !strings.HasPrefix(raw, "{") {
		return reply
	}
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return reply
	}

	switch probe.Kind {
	case "advice":
		var card sessions.AdviceCard
		if err := json.Unmarshal([]byte(raw), &card); err != nil {
			return reply
		}
		reply.Structured = &card
	case "pricing":
		var pricing sessions.PricingBreakdown
		if err := json.Unmarshal([]byte(raw), &pricing); err != nil {
			return reply
		}
		reply.Pricing = &pricing
	default:
		return reply
	}

	if stripped := jsonutils.StripFencedJSON(text); stripped != "" {
		reply.Text = stripped
	}
	return reply
}
