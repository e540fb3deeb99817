// Package catalog parses LLM-authored endpoint description documents into
// a method-keyed template lookup and maps concrete requests back to the
// abstract template they instantiate.
package catalog

import (
	"fmt"
	"strings"
)

// Action is a templated method+path route. Path segments wrapped in {}
// are placeholders.
type Action struct {
	Method string
	Path   string
}

// Label renders the action the way the model and prompts expect it.
func (a Action) Label() string {
	return a.Method + " " + a.Path
}

// Catalog maps HTTP method to an ordered list of path templates.
// Insertion order is preserved and duplicates are kept: matching is
// first-match in document order, so order is part of the contract.
type Catalog struct {
	templates map[string][]string
	order     []Action
}

// Parse builds a Catalog from a description document. Only lines starting
// with "-" are considered; "#" category headers, blank lines and malformed
// lines (fewer than two fields after the dash) are silently skipped.
// Anything after the method and path is treated as description and dropped.
func Parse(doc string) *Catalog {
	c := &Catalog{templates: make(map[string][]string)}
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "-") {
			continue
		}
		fields := strings.Fields(strings.TrimSpace(line[1:]))
		if len(fields) < 2 {
			continue
		}
		method, path := fields[0], fields[1]
		c.templates[method] = append(c.templates[method], path)
		c.order = append(c.order, Action{Method: method, Path: path})
	}
	return c
}

// Actions returns every parsed entry in document order, duplicates included.
func (c *Catalog) Actions() []Action {
	out := make([]Action, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Match resolves a concrete request ("METHOD /concrete/path") to the FIRST
// template in catalog order that matches on every segment. Returns false
// when the request has no space separator or no template matches.
//
// Resolution is deliberately first-match, not best-match: with overlapping
// templates of equal segment count the outcome depends on document order.
func (c *Catalog) Match(request string) (Action, bool) {
	method, path, ok := strings.Cut(request, " ")
	if !ok {
		return Action{}, false
	}
	reqSegs := splitPath(path)
	for _, tpl := range c.templates[method] {
		if segmentsMatch(splitPath(tpl), reqSegs) {
			return Action{Method: method, Path: tpl}, true
		}
	}
	return Action{}, false
}

// MatchStrict behaves like Match but fails when more than one distinct
// template of the same segment count matches, instead of silently taking
// the first. Opt-in for callers that cannot tolerate order-dependence.
func (c *Catalog) MatchStrict(request string) (Action, error) {
	method, path, ok := strings.Cut(request, " ")
	if !ok {
		return Action{}, fmt.Errorf("request %q has no method/path separator", request)
	}
	reqSegs := splitPath(path)
	var matches []string
	for _, tpl := range c.templates[method] {
		if segmentsMatch(splitPath(tpl), reqSegs) {
			if len(matches) == 0 || matches[len(matches)-1] != tpl {
				matches = append(matches, tpl)
			}
		}
	}
	switch len(matches) {
	case 0:
		return Action{}, fmt.Errorf("no template matches %q", request)
	case 1:
		return Action{Method: method, Path: matches[0]}, nil
	default:
		return Action{}, fmt.Errorf("ambiguous templates for %q: %s", request, strings.Join(matches, ", "))
	}
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func segmentsMatch(tpl, req []string) bool {
	if len(tpl) != len(req) {
		return false
	}
	for i, seg := range tpl {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			continue
		}
		if seg != req[i] {
			return false
		}
	}
	return true
}
