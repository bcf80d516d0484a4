package plangen

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// snippetCap bounds the raw-text excerpt carried by ParseError so a huge
// malformed payload can never blow up the log.
const snippetCap = 200

// Repair turns raw model output into a decoded object. It strips markdown
// fences, extracts the outermost object, and falls back to jsonrepair for
// structural damage (unbalanced braces/quotes, trailing commas).
func Repair(raw string) (map[string]any, *ParseError) {
	text := stripFences(raw)
	text = extractOuterObject(text)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		return obj, nil
	}

	fixed, err := jsonrepair.JSONRepair(text)
	if err != nil {
		return nil, &ParseError{Snippet: capSnippet(raw)}
	}
	if err := json.Unmarshal([]byte(fixed), &obj); err != nil {
		return nil, &ParseError{Snippet: capSnippet(raw)}
	}
	return obj, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// extractOuterObject trims any prose before the first '{' and after the last
// '}'. If no braces exist the input is returned unchanged and left for the
// repairer to reject.
func extractOuterObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return s
	}
	return s[start : end+1]
}

func capSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > snippetCap {
		return s[:snippetCap]
	}
	return s
}
