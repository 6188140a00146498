package prompts

import (
	"fmt"
	"strings"

	"github.com/divops/tarotai/internal/domain"
)

// ============================================================================
// System Prompts
// ============================================================================

// ReaderSystemPrompt defines the role and tone for reading generation.
const ReaderSystemPrompt = `You are an experienced tarot reader. You interpret spreads with warmth, honesty, and psychological insight.

Rules:
- Ground every statement in the cards actually drawn: name the card, its position, and its orientation.
- Reversed cards speak to blocked or internalized energy, not doom.
- Weave the cards into one coherent narrative rather than listing them.
- Close with one practical reflection the querent can act on.
- Never promise specific outcomes, medical results, or financial returns.`

// FollowupSystemPrompt defines the role for answering followup questions
// inside an existing discussion. The original spread stays fixed; only the
// lens on it changes.
const FollowupSystemPrompt = `You are an experienced tarot reader continuing a conversation about a spread that has already been drawn.

Rules:
- Do not draw new cards. Reinterpret the existing spread in light of the new question.
- Reference the earlier reading where it is relevant.
- Stay consistent with interpretations you have already given.`

// DailySystemPrompt defines the role for single-card daily draws.
const DailySystemPrompt = `You are a tarot reader offering a short daily reflection from a single card. Keep it to two or three sentences, concrete and encouraging.`

// ============================================================================
// Prompt Builders
// ============================================================================

// CardLine renders one placement as a prompt line with its position,
// orientation, meaning, and position keywords.
func CardLine(p domain.CardPlacement) string {
	orientation := "Reversed"
	if p.Upright() {
		orientation = "Upright"
	}
	line := fmt.Sprintf("- %s (%s, %s)", p.Name, p.Position, orientation)
	if p.Meaning != "" {
		line += ": " + p.Meaning
	}
	if len(p.PositionKeywords) > 0 {
		line += fmt.Sprintf(" [position themes: %s]", strings.Join(p.PositionKeywords, ", "))
	}
	return line
}

// BuildReadingPrompt assembles the user prompt for a full spread reading.
// Parameters:
//   - question: the querent's question.
//   - questionType: classified question category.
//   - layout: the drawn spread.
// Returns:
//   - string: the rendered prompt.
func BuildReadingPrompt(question, questionType string, layout domain.Layout) string {
	var b strings.Builder
	b.WriteString("Question: ")
	b.WriteString(question)
	b.WriteString("\nQuestion type: ")
	b.WriteString(questionType)
	b.WriteString("\n\nCards drawn:\n")
	for _, p := range layout {
		b.WriteString(CardLine(p))
		b.WriteString("\n")
	}
	b.WriteString("\nProvide a reading that addresses the question through these cards.")
	return b.String()
}

// BuildFollowupPrompt assembles the user prompt for a followup question,
// carrying the original question, spread, and prior exchanges.
func BuildFollowupPrompt(initialQuestion string, layout domain.Layout, history []domain.FollowupQuestion, question string) string {
	var b strings.Builder
	b.WriteString("Original question: ")
	b.WriteString(initialQuestion)
	b.WriteString("\n\nCards drawn:\n")
	for _, p := range layout {
		b.WriteString(CardLine(p))
		b.WriteString("\n")
	}
	if len(history) > 0 {
		b.WriteString("\nEarlier followups:\n")
		for _, h := range history {
			b.WriteString("Q: ")
			b.WriteString(h.Question)
			b.WriteString("\nA: ")
			b.WriteString(h.Response)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nNew question: ")
	b.WriteString(question)
	return b.String()
}

// BuildDailyPrompt assembles the user prompt for a single-card daily draw.
func BuildDailyPrompt(p domain.CardPlacement) string {
	return fmt.Sprintf("Today's card:\n%s\n\nOffer a daily reflection.", CardLine(p))
}
