package concierge

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"lumiere/internal/domain"
)

const (
	// OfflineReply is returned verbatim when no API key is configured; no
	// network call is attempted in that state.
	OfflineReply = "Our concierge is currently offline. Please reach us through the contact page and an advisor will follow up shortly."

	// BusyReply replaces any model or network failure. One attempt per
	// message, no retry.
	BusyReply = "We are experiencing a high volume of enquiries at the moment. Please try again in a little while, or leave your details on the contact page."

	noMatchPhrase = "I could not find a residence in our current portfolio that matches that request."
)

// Inventory is the property projection embedded into the system
// instruction: title, location, price, type, up to four features, status.
type inventoryItem struct {
	Title    string   `json:"title"`
	Location string   `json:"location"`
	Price    int64    `json:"price"`
	Type     string   `json:"type"`
	Features []string `json:"features,omitempty"`
	Status   string   `json:"status"`
}

type Concierge struct {
	client *genai.Client
	model  string
}

// New returns a working adapter, or an offline one when apiKey is empty.
func New(ctx context.Context, apiKey, model string) (*Concierge, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	if apiKey == "" {
		return &Concierge{model: model}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Concierge{client: client, model: model}, nil
}

// Online reports whether a credential was configured.
func (c *Concierge) Online() bool { return c.client != nil }

// SystemInstruction builds the persona plus a JSON snapshot of the current
// portfolio. Each call is stateless: no conversation history is carried.
func SystemInstruction(props []domain.Property) string {
	items := make([]inventoryItem, 0, len(props))
	for _, p := range props {
		var features []string
		_ = json.Unmarshal([]byte(p.Features), &features)
		if len(features) > 4 {
			features = features[:4]
		}
		items = append(items, inventoryItem{
			Title:    p.Title,
			Location: p.Location,
			Price:    p.Price,
			Type:     p.Type,
			Features: features,
			Status:   p.Status,
		})
	}
	snapshot, _ := json.Marshal(items)

	var b strings.Builder
	b.WriteString("You are the private concierge of Lumière Estates, a luxury real-estate brokerage. ")
	b.WriteString("You speak with warmth and discretion, like a seasoned estate advisor.\n\n")
	b.WriteString("Current portfolio (JSON):\n")
	b.Write(snapshot)
	b.WriteString("\n\nRules:\n")
	b.WriteString("- Always spell prices out in words (e.g. \"eight million four hundred thousand dollars\"), never raw digits.\n")
	b.WriteString("- When recommending, name the exact property title from the portfolio.\n")
	b.WriteString("- Keep responses under roughly 100 words unless the guest explicitly asks for detail.\n")
	b.WriteString("- If nothing in the portfolio fits, say: \"" + noMatchPhrase + "\"\n")
	b.WriteString("- Never invent residences that are not in the portfolio.\n")
	return b.String()
}

// Ask sends one stateless request: the guest's message plus the portfolio
// snapshot. Missing credential degrades to the canned offline reply; any
// model error collapses to the busy reply.
func (c *Concierge) Ask(ctx context.Context, message string, props []domain.Property) string {
	if c.client == nil {
		return OfflineReply
	}
	resp, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(message),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemInstruction(props), genai.RoleUser),
			Temperature:       genai.Ptr[float32](0.7),
		},
	)
	if err != nil {
		return BusyReply
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return BusyReply
	}
	return text
}
