package rerank

import (
	"fmt"
	"strings"
	"time"

	"next-action-be/internal/entity"
)

// unknownTime is the sentinel shown when an event timestamp cannot be
// parsed; rendering never aborts the request over a bad timestamp.
const unknownTime = "Unknown"

// RenderHistory renders events as a chronological (oldest first) timeline
// for the re-ranking prompt, one line per event: time, abstract action
// label and any non-empty parameters.
func RenderHistory(events []entity.Event) string {
	if len(events) == 0 {
		return "No events recorded."
	}

	var b strings.Builder
	b.WriteString("Event Timeline:")
	for _, ev := range events {
		b.WriteString("\n")
		b.WriteString(formatEventTime(ev.Timestamp))
		b.WriteString(" - ")
		b.WriteString(ev.ActionLabel())
		b.WriteString(formatParams(ev.Params))
	}
	return b.String()
}

func formatEventTime(ts string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("15:04:05")
		}
	}
	return unknownTime
}

func formatParams(params entity.ParamBag) string {
	var parts []string
	for _, kv := range params.Pairs() {
		if kv.Value == "" {
			continue
		}
		if kv.Key != "" {
			parts = append(parts, fmt.Sprintf("%s=%s", kv.Key, kv.Value))
		} else {
			parts = append(parts, kv.Value)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

// RenderRanking renders the model's ranking as a numbered "action: score"
// list for the prompt.
func RenderRanking(ranking []entity.RankedAction) string {
	var b strings.Builder
	for i, ra := range ranking {
		b.WriteString(fmt.Sprintf("%d. %s: %.4f\n", i+1, ra.Action, ra.Score))
	}
	return b.String()
}
