package ai

import (
	"fmt"
	"strings"

	"github.com/siiddhantt/ai-chat-assistant/src/api/tools"
	"github.com/siiddhantt/ai-chat-assistant/src/api/types"
)

// contextTurns bounds how much history accompanies each request; older
// turns are simply dropped, no summarization.
const contextTurns = 10

const faqKnowledgeBase = `You are a helpful customer support agent for our e-commerce store.

Store Information:
- Name: TechHub Store
- Founded: 2023

Shipping Policy:
- Standard Shipping: 5-7 business days (Free on orders over $50)
- Express Shipping: 2-3 business days ($15)
- International Shipping: 10-14 business days (varies by location)
- Tracking information is provided via email

Return & Refund Policy:
- 30-day money-back guarantee
- Items must be unused and in original packaging
- Refunds processed within 5-7 business days
- Return shipping is free within the US
- International returns: customer pays return shipping

Support Hours:
- Monday to Friday: 9 AM - 6 PM EST
- Saturday: 10 AM - 4 PM EST
- Closed Sundays and holidays
- Average response time: 2-4 hours during business hours

Product Categories:
- Electronics (phones, tablets, laptops)
- Accessories (chargers, cases, cables)
- Smart Home Devices
- Audio Equipment

Payment Methods:
- Credit/Debit Cards (Visa, Mastercard, American Express)
- PayPal
- Apple Pay / Google Pay

Common Issues:
- If you haven't received a tracking number within 24 hours, contact support
- If your item is damaged upon arrival, open a claim within 48 hours
- For account/login issues, try resetting your password`

const guidelines = `Important Guidelines:
- Be concise and helpful
- Only discuss topics related to our store, products, orders, shipping, and returns
- If asked about unrelated topics, politely redirect to store-related questions
- If you don't have information to answer a question, offer to escalate to a human agent
- Never provide personal advice, political opinions, or discuss sensitive topics
- Do not generate, encourage, or assist with any harmful, illegal, or inappropriate content`

const outputInstructions = `Response Format:
When you are not calling a tool, respond with a single JSON object:
{"answer": "<your reply to the customer>", "proposed_actions": ["<short follow-up suggestion>", ...]}
proposed_actions lists at most 3 short next steps the customer might take; use an empty array when none apply.
Do not wrap the JSON in markdown fences or add text around it.`

// buildSystemPrompt composes the fixed knowledge base, the structured-output
// contract and a description of the available tools. Shared by both
// adapters.
func buildSystemPrompt(registry *tools.Registry) string {
	var b strings.Builder
	b.WriteString(faqKnowledgeBase)
	b.WriteString("\n\n")
	b.WriteString(guidelines)
	b.WriteString("\n\n")
	b.WriteString(outputInstructions)

	if registry != nil && len(registry.All()) > 0 {
		b.WriteString("\n\nAvailable Tools:\n")
		for _, t := range registry.All() {
			def := t.Definition()
			fmt.Fprintf(&b, "- %s: %s\n", def.Name, def.Description)
			for _, name := range def.Order {
				p := def.Properties[name]
				fmt.Fprintf(&b, "  - %s: %s\n", name, p.Description)
			}
		}
		b.WriteString("Call a tool when the customer's request matches one; otherwise answer directly.")
	}

	return b.String()
}

// buildConversationContext renders the last turns as a transcript.
func buildConversationContext(history []types.Message) string {
	if len(history) > contextTurns {
		history = history[len(history)-contextTurns:]
	}
	lines := make([]string, 0, len(history))
	for _, msg := range history {
		speaker := "Customer"
		if msg.Sender == types.SenderAI {
			speaker = "Agent"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, msg.Text))
	}
	return strings.Join(lines, "\n")
}
