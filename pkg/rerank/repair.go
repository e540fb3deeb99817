package rerank

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"next-action-be/internal/entity"
)

// ParseError reports that the service's response could not be recovered
// into structured output even after repair. Raw carries the untouched
// response text for diagnostics.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unrepairable re-rank response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseItems recovers the final ordered action list from the raw response
// text. Strict JSON is tried first; near-miss formatting (code fences,
// surrounding prose, trailing commas, single-quoted or unquoted keys,
// Python literals) goes through a repair pass. Failure yields *ParseError.
func ParseItems(raw string) ([]entity.RerankItem, error) {
	if items, err := decodeItems(strings.TrimSpace(raw)); err == nil {
		return items, nil
	}

	repaired, err := RepairJSON(raw)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	items, err := decodeItems(repaired)
	if err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return items, nil
}

func decodeItems(s string) ([]entity.RerankItem, error) {
	var items []entity.RerankItem
	if err := json.Unmarshal([]byte(s), &items); err == nil {
		return items, nil
	}
	// A single object is tolerated as a one-element list.
	var one entity.RerankItem
	if err := json.Unmarshal([]byte(s), &one); err != nil {
		return nil, err
	}
	return []entity.RerankItem{one}, nil
}

// RepairJSON extracts the JSON value embedded in raw text and rewrites
// near-miss syntax into valid JSON. It does not validate the result
// semantically; callers decode it afterwards.
func RepairJSON(raw string) (string, error) {
	start := strings.IndexAny(raw, "[{")
	end := strings.LastIndexAny(raw, "]}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON container found in response")
	}
	region := raw[start : end+1]

	var out strings.Builder
	i := 0
	for i < len(region) {
		c := region[i]
		switch {
		case c == '"':
			j, quoted := consumeString(region, i, '"')
			out.WriteString(quoted)
			i = j
		case c == '\'':
			j, quoted := consumeString(region, i, '\'')
			out.WriteString(quoted)
			i = j
		case c == ',':
			// Drop trailing commas before a closing bracket.
			j := i + 1
			for j < len(region) && unicode.IsSpace(rune(region[j])) {
				j++
			}
			if j < len(region) && (region[j] == ']' || region[j] == '}') {
				i++
				continue
			}
			out.WriteByte(c)
			i++
		case isWordByte(c):
			j := i
			for j < len(region) && isWordByte(region[j]) {
				j++
			}
			out.WriteString(repairWord(region[i:j]))
			i = j
		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String(), nil
}

// consumeString reads a quoted string starting at i and returns it
// re-emitted with double quotes and proper escaping.
func consumeString(s string, i int, quote byte) (int, string) {
	var b strings.Builder
	b.WriteByte('"')
	i++ // opening quote
	for i < len(s) {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			next := s[i+1]
			if next == quote && quote == '\'' {
				b.WriteByte('\'') // \' has no meaning in JSON
			} else {
				b.WriteByte('\\')
				b.WriteByte(next)
			}
			i += 2
			continue
		}
		if c == quote {
			i++
			break
		}
		if c == '"' && quote == '\'' {
			b.WriteString(`\"`)
			i++
			continue
		}
		b.WriteByte(c)
		i++
	}
	b.WriteByte('"')
	return i, b.String()
}

// repairWord fixes bare words: Python literals become JSON literals,
// numbers pass through, anything else (an unquoted key or string value)
// gets quoted.
func repairWord(word string) string {
	switch word {
	case "true", "false", "null":
		return word
	case "True":
		return "true"
	case "False":
		return "false"
	case "None", "NaN":
		return "null"
	}
	if isNumber(word) {
		return word
	}
	return `"` + word + `"`
}

func isWordByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '.', c == '+':
		return true
	}
	return false
}

func isNumber(s string) bool {
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
