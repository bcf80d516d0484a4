package plangen

import (
	"strings"
	"testing"
)

func TestRepair_CleanJSON(t *testing.T) {
	obj, perr := Repair(`{"a": 1, "b": "x"}`)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if obj["b"] != "x" {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepair_FencedJSON(t *testing.T) {
	obj, perr := Repair("```json\n{\"a\": 1}\n```")
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if obj["a"] != float64(1) {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepair_ProseAroundObject(t *testing.T) {
	obj, perr := Repair(`Here is your plan: {"a": 1} hope it helps!`)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if obj["a"] != float64(1) {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepair_TrailingComma(t *testing.T) {
	obj, perr := Repair(`{"a": 1, "b": [1, 2,],}`)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	arr, ok := obj["b"].([]any)
	if !ok || len(arr) != 2 {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepair_UnbalancedBrace(t *testing.T) {
	obj, perr := Repair(`{"a": {"b": 1}`)
	if perr != nil {
		t.Fatalf("unexpected parse error: %v", perr)
	}
	if _, ok := obj["a"].(map[string]any); !ok {
		t.Fatalf("unexpected object: %v", obj)
	}
}

func TestRepair_UnrepairableCapsSnippet(t *testing.T) {
	raw := strings.Repeat("not json at all ", 100)
	_, perr := Repair(raw)
	if perr == nil {
		t.Fatalf("expected parse error")
	}
	if len(perr.Snippet) > snippetCap {
		t.Fatalf("snippet exceeds cap: %d", len(perr.Snippet))
	}
}
