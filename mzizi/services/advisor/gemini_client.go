// mzizi/services/advisor/gemini_client.go
package advisor

import (
	"context"
	"fmt"
	"strings"

	"mzizi/mzizi/sessions"
	"mzizi/mzizi/types"
	"mzizi/mzizi/utils/logging"

	"google.golang.org/genai"
)

// GeminiClient talks to the Gemini API directly.
type GeminiClient struct {
	client *genai.Client
	model  string
}

var _ sessions.Advisor = (*GeminiClient)(nil)

func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

// Generate runs one exchange. The history window already includes the
// current prompt as its last user turn, so only the window is forwarded.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, profile types.BusinessProfile, history []sessions.Turn) (sessions.Reply, error) {
	defer logging.LogDuration(ctx, "advisor_gemini_generate")()

	contents := make([]*genai.Content, 0, len(history))
	for _, turn := range history {
		var sb strings.Builder
		for _, p := range turn.Parts {
			sb.WriteString(p.Text)
		}
		contents = append(contents, genai.NewContentFromText(sb.String(), genai.Role(turn.Role)))
	}
	if len(contents) == 0 {
		contents = append(contents, genai.NewContentFromText(prompt, genai.RoleUser))
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction(profile), genai.RoleUser),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return sessions.Reply{}, fmt.Errorf("gemini generate failed: %w", err)
	}
	return parseReply(resp.Text()), nil
}
