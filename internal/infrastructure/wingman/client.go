package wingman

import (
	"context"
	"fmt"
	"strings"

	"github.com/place222/social-backend/internal/domain"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client generates short human-readable match explanations with Gemini.
// When the API is unavailable it falls back to a deterministic template so
// enrichment never fails a generation run.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	model.SetTemperature(0.7)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// GenerateMatchExplanation writes a 1-2 sentence explanation of why two
// users match, grounded on the engine's computed reasons.
func (c *Client) GenerateMatchExplanation(ctx context.Context, profileA, profileB *domain.Profile, reasons []string) (string, error) {
	prompt := fmt.Sprintf(`
		Two users matched on a social compatibility platform.
		User 1: %s
		User 2: %s
		Computed match reasons: %s

		Task: Write a short, engaging explanation (1-2 sentences) of why they
		are a good match, grounded only on the reasons above.
		Output: Just the explanation text.
	`, describeProfile(profileA), describeProfile(profileB), strings.Join(reasons, "; "))

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return c.fallbackExplanation(reasons), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return c.fallbackExplanation(reasons), nil
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return c.fallbackExplanation(reasons), nil
	}
	return text, nil
}

func (c *Client) fallbackExplanation(reasons []string) string {
	if len(reasons) == 0 {
		return "Your answers suggest you two would get along well."
	}
	return fmt.Sprintf("You connected on: %s.", strings.Join(reasons, ", "))
}

func describeProfile(p *domain.Profile) string {
	parts := []string{}
	if p.DisplayName != nil {
		parts = append(parts, *p.DisplayName)
	}
	if p.LocationCity != nil {
		parts = append(parts, "from "+*p.LocationCity)
	}
	if p.Bio != nil {
		parts = append(parts, *p.Bio)
	}
	if len(parts) == 0 {
		return "anonymous user"
	}
	return strings.Join(parts, ", ")
}
