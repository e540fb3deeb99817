package entity

// RankedAction is one catalog action with its model score. Slices of
// RankedAction are ordered score descending, catalog order on ties.
type RankedAction struct {
	Action string  `json:"action"`
	Score  float64 `json:"score"`
}

// RerankItem is one entry of the final, LLM-produced ordering. The action
// string is NOT validated against the known catalog; see DESIGN.md.
type RerankItem struct {
	Action    string `json:"action"`
	Reasoning string `json:"reasoning"`
}
