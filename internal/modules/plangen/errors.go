package plangen

import (
	"fmt"
	"strings"
)

// Stage errors form a closed set. Everything except ValidationError is
// caught at the pipeline boundary and converted into a fallback response;
// ValidationError alone surfaces as a 400.

// ValidationError reports schema violations in the inbound request.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "invalid request"
	}
	return "invalid request: " + strings.Join(e.Violations, "; ")
}

// ParseError means the raw model output could not be repaired into JSON.
// Snippet is length-capped; the full payload never leaves the repairer.
type ParseError struct {
	Snippet string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "unparseable model output"
	}
	return fmt.Sprintf("unparseable model output: %q", e.Snippet)
}

// SchemaError means valid JSON of the wrong shape.
type SchemaError struct {
	Paths []string
}

func (e *SchemaError) Error() string {
	if e == nil || len(e.Paths) == 0 {
		return "model output failed schema validation"
	}
	return "model output failed schema validation: " + strings.Join(e.Paths, "; ")
}

// SafetyRejection means the gate refused the payload outright.
type SafetyRejection struct {
	Level      string
	Score      int
	Confidence float64
	Reasons    []string
}

func (e *SafetyRejection) Error() string {
	if e == nil {
		return "safety gate rejected output"
	}
	return fmt.Sprintf("safety gate rejected output: level=%s score=%d confidence=%.2f reasons=%s",
		e.Level, e.Score, e.Confidence, strings.Join(e.Reasons, ","))
}
