// mzizi/services/advisor/http_client.go
package advisor

import (
	"context"
	"fmt"

	"mzizi/mzizi/sessions"
	"mzizi/mzizi/types"
	httputils "mzizi/mzizi/utils/http"
	"mzizi/mzizi/utils/logging"
)

// HTTPClient speaks to a remote advisor service over its JSON contract:
// request {prompt, profile, history}, response {text, structured?, pricing?}.
type HTTPClient struct {
	baseURL string
	apiKey  string
}

var _ sessions.Advisor = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{baseURL: baseURL, apiKey: apiKey}
}

func (c *HTTPClient) Generate(ctx context.Context, prompt string, profile types.BusinessProfile, history []sessions.Turn) (sessions.Reply, error) {
	defer logging.LogDuration(ctx, "advisor_http_generate")()

	req := struct {
		Prompt  string                `json:"prompt"`
		Profile types.BusinessProfile `json:"profile"`
		History []sessions.Turn       `json:"history"`
	}{
		Prompt:  prompt,
		Profile: profile,
		History: history,
	}

	var resp struct {
		Text       string                     `json:"text"`
		Structured *sessions.AdviceCard       `json:"structured,omitempty"`
		Pricing    *sessions.PricingBreakdown `json:"pricing,omitempty"`
	}
	url := fmt.Sprintf("%s/chat", c.baseURL)
	if err := httputils.PostJSONWithAuth(ctx, url, c.apiKey, req, &resp); err != nil {
		return sessions.Reply{}, err
	}
	return sessions.Reply{Text: resp.Text, Structured: resp.Structured, Pricing: resp.Pricing}, nil
}
