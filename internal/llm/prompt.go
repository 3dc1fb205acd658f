package llm

import (
	"fmt"
	"strings"

	"github.com/LuLu1016/ARLook-GoogleMap/internal/models"
	"github.com/LuLu1016/ARLook-GoogleMap/pkg/utils"
)

// FormatPropertiesForPrompt renders the candidate listings as the property
// database section of the system prompt.
func FormatPropertiesForPrompt(properties []models.Property) string {
	entries := make([]string, 0, len(properties))
	for _, p := range properties {
		walk := "N/A"
		if d, ok := p.WalkingDistance(); ok {
			walk = fmt.Sprintf("%d分钟", d)
		}
		entries = append(entries, fmt.Sprintf(`- %s
  地址: %s
  价格: $%.0f/人/月
  房型: %.0f卧%.1f卫
  步行至沃顿商学院: %s
  设施: %s
  描述: %s`,
			p.Name, p.Address, p.Price, p.Bedrooms, p.Bathrooms, walk,
			strings.Join(p.Amenities, ", "), p.Description))
	}
	return strings.Join(entries, "\n\n")
}

// conversationStage describes where the user is in their search journey,
// inferred from the last user message.
type conversationStage struct {
	stage     string
	intent    string
	nextSteps string
}

func detectStage(history []models.ChatTurn) conversationStage {
	if len(history) == 0 {
		return conversationStage{
			stage:     "initial",
			intent:    "User is starting their search",
			nextSteps: "Introduce yourself briefly, ask about their key priorities (budget, location, amenities), or show them some popular options",
		}
	}
	var last string
	for _, turn := range history {
		if turn.Role == "user" {
			last = strings.ToLower(turn.Content)
		}
	}
	switch {
	case strings.Contains(last, "wharton") || strings.Contains(last, "school"):
		return conversationStage{"location_focused",
			"User is prioritizing location/proximity to Wharton",
			"Ask about walking distance preference, budget range, and must-have amenities"}
	case strings.Contains(last, "price") || strings.Contains(last, "budget") || strings.Contains(last, "$"):
		return conversationStage{"budget_focused",
			"User is prioritizing budget",
			"Ask about location flexibility, preferred amenities, and room type (studio/1b1b)"}
	case strings.Contains(last, "laundry") || strings.Contains(last, "gym") || strings.Contains(last, "amenit"):
		return conversationStage{"amenity_focused",
			"User is prioritizing specific amenities",
			"Ask about budget range, location preference, and if there are other amenities they need"}
	case strings.Contains(last, "more") || strings.Contains(last, "other") || strings.Contains(last, "show"):
		return conversationStage{"exploring",
			"User wants to see more options or explore further",
			"Offer alternative properties, suggest refining filters, or ask what specific aspect they want to explore"}
	case strings.Contains(last, "compare") || strings.Contains(last, "difference"):
		return conversationStage{"comparing",
			"User wants to compare properties",
			"Highlight key differences in price, location, amenities, or other factors"}
	default:
		return conversationStage{"refining",
			"User is refining their search",
			"Acknowledge their refinement, provide updated results, and ask if they need any clarification"}
	}
}

// BuildSystemPrompt assembles the generation system prompt: consultant
// persona, the retrieved property database, conversation context, and the
// response contract (complete listings, next steps, trailing [DATA] tag).
func BuildSystemPrompt(properties []models.Property, history []models.ChatTurn) string {
	stage := detectStage(history)

	var recent string
	if len(history) == 0 {
		recent = "This is the first message"
	} else {
		parts := make([]string, 0, 3)
		start := len(history) - 3
		if start < 0 {
			start = 0
		}
		for _, turn := range history[start:] {
			parts = append(parts, fmt.Sprintf("%s: %s", turn.Role, utils.Truncate(turn.Content, 50)))
		}
		recent = "Previous messages: " + strings.Join(parts, " | ")
	}

	var b strings.Builder
	b.WriteString("You are ARLook, a professional rental consultant assistant specializing in University City, Philadelphia. ")
	b.WriteString("Your core mission is to understand users' rental needs, match them with properties from the database, and guide them with proactive suggestions.\n\n")
	b.WriteString("### Property Database\n")
	b.WriteString(FormatPropertiesForPrompt(properties))
	b.WriteString("\n\n### Conversation Context\n")
	fmt.Fprintf(&b, "Current Stage: %s\nDetected Intent: %s\nSuggested Next Steps: %s\n%s\n", stage.stage, stage.intent, stage.nextSteps, recent)
	b.WriteString(`
### Response Rules
1. Only reference properties from the Property Database above. Never invent a property, price, or walking distance.
2. If you say you found N properties, list all N completely. For each one include: full name, complete address, price per person and room type, walking distance to Wharton (if available), 3-4 key amenities, and a one-sentence highlight.
3. After the listings, always suggest 2-3 natural next steps (different price range, side-by-side comparison, neighborhood details).
4. Use natural, conversational English, or Chinese if the user writes Chinese. No markdown formatting, no emoji.
5. At the very end, on a separate line, append a JSON filter tag reflecting the constraints you applied, for example:
[DATA]{"filters": {"maxPrice": 2000, "amenities": ["In-unit laundry", "Gym"], "maxWalkingDistance": 10}}
Do not mention this tag in your response.`)
	return b.String()
}
