package rerank

import (
	"fmt"
	"strings"
)

// PromptBuilder assembles the re-ranking instruction payload sent to the
// text-generation service.
type PromptBuilder struct {
	history         string
	apiSpecs        string
	ranking         string
	extraContext    string
	excludeMutating bool
	k               int
}

func NewPromptBuilder(history, apiSpecs, ranking, extraContext string, excludeMutating bool, k int) *PromptBuilder {
	return &PromptBuilder{
		history:         history,
		apiSpecs:        apiSpecs,
		ranking:         ranking,
		extraContext:    extraContext,
		excludeMutating: excludeMutating,
		k:               k,
	}
}

func (b *PromptBuilder) Build() string {
	var prompt strings.Builder

	b.writeTask(&prompt)
	b.writeInstructions(&prompt)
	b.writeHistory(&prompt)
	b.writeAPISpecs(&prompt)
	b.writeRanking(&prompt)
	b.writeExtraContext(&prompt)
	b.writeOutputFormat(&prompt)

	return prompt.String()
}

func (b *PromptBuilder) writeTask(prompt *strings.Builder) {
	prompt.WriteString("You are an intelligent API endpoint selector. Your role is to analyze the user's interaction history and rank the most appropriate next endpoints to invoke based on context, previous actions and the available API specifications.\n\n")
}

func (b *PromptBuilder) writeInstructions(prompt *strings.Builder) {
	prompt.WriteString("## Instructions:\n\n")
	prompt.WriteString("1. Examine the interaction history: which endpoints were called, with which parameters (shown in parentheses), and in what order.\n")
	prompt.WriteString("2. Pay attention to parameters from previous calls: extract IDs, filters and values that influence the next logical step.\n")
	prompt.WriteString("3. A pretrained ranking model has already scored the candidates (see Model Ranking below). Use that ranking as your starting point. Only reorder entries when you can give an explicit justification from the history or the API specifications.\n")
	prompt.WriteString("4. Consider CRUD sequences (POST -> GET -> PATCH -> DELETE) and endpoints that complete the user's current workflow.\n\n")
}

func (b *PromptBuilder) writeHistory(prompt *strings.Builder) {
	prompt.WriteString("## Interaction History:\n\n")
	prompt.WriteString(b.history)
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeAPISpecs(prompt *strings.Builder) {
	prompt.WriteString("## Available API Specifications:\n\n")
	prompt.WriteString(b.apiSpecs)
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeRanking(prompt *strings.Builder) {
	prompt.WriteString("## Model Ranking (most likely first):\n\n")
	prompt.WriteString(b.ranking)
	prompt.WriteString("\n")
}

func (b *PromptBuilder) writeExtraContext(prompt *strings.Builder) {
	if b.extraContext == "" {
		return
	}
	prompt.WriteString("## Additional Context:\n")
	prompt.WriteString(b.extraContext)
	prompt.WriteString("\n\n")
}

func (b *PromptBuilder) writeOutputFormat(prompt *strings.Builder) {
	prompt.WriteString("## Output Format:\n")
	prompt.WriteString(fmt.Sprintf("Return a JSON array containing exactly %d objects ordered by probability (most likely first). Each object must have exactly two fields: \"action\" and \"reasoning\".\n", b.k))
	if b.excludeMutating {
		prompt.WriteString("- Do not include endpoint methods of DELETE, PUT or PATCH in the rankings; replace each with the next more likely endpoint.\n")
	}
	prompt.WriteString("Example:\n")
	prompt.WriteString(`[
  {"action": "GET /invoices/{invoiceId}", "reasoning": "User just created an invoice and likely wants to view the details"},
  {"action": "PATCH /invoices/{invoiceId}/status", "reasoning": "Natural next step is to update the invoice status from draft to pending"}
]`)
	prompt.WriteString("\nRespond with the JSON array only, no prose.")
}
