package safety

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yungbote/prepplan-backend/internal/domain"
)

// Result is the gate's verdict over one generated payload.
type Result struct {
	// Payload is a filtered/redacted copy of the input; the original is
	// never mutated.
	Payload          map[string]any
	Assessment       domain.RiskAssessment
	Issues           []string
	RedactedFields   int
	DroppedResources int
	// HasHighRisk is true when anything resolved to HIGH, including
	// individual fields that were redacted instead of failing the response.
	HasHighRisk bool
	// Pass is the decision rule: aggregate level != HIGH and confidence at
	// or above the configured floor. false means "use fallback".
	Pass bool
}

// Evaluate runs the three required checks over a schema-valid payload:
// pattern risk scan, confidence score, and the plan duration invariant.
// Field-level HIGH risk is redacted in place rather than failing the whole
// response; aggregate HIGH risk or low confidence fails it.
func (t *Tables) Evaluate(payload map[string]any, profile domain.Profile, hasTimeBlocks bool) Result {
	res := Result{Payload: deepCopy(payload)}

	res.RedactedFields = t.redactHighRiskFields(res.Payload)
	if res.RedactedFields > 0 {
		res.HasHighRisk = true
		res.Issues = append(res.Issues, fmt.Sprintf("redacted %d high-risk field(s)", res.RedactedFields))
	}

	if raw, ok := res.Payload["resources"].([]any); ok {
		kept, dropped := t.FilterResources(raw)
		res.Payload["resources"] = kept
		res.DroppedResources = dropped
		if dropped > 0 {
			res.Issues = append(res.Issues, fmt.Sprintf("dropped %d resource(s) with invalid or denylisted URLs", dropped))
		}
	}

	text := flattenStrings(res.Payload)
	res.Assessment = t.AssessText(text)
	res.Assessment.Confidence = t.Confidence(text)

	if hasTimeBlocks {
		if issues := t.checkDurationInvariant(res.Payload, profile); len(issues) > 0 {
			// Non-fatal on its own; contributes to the cumulative score so it
			// can tip an already-risky payload over.
			res.Issues = append(res.Issues, issues...)
			res.Assessment = addReason(res.Assessment, CategoryMalformed, 2)
		}
	}

	if res.Assessment.Level == domain.RiskHigh {
		res.HasHighRisk = true
	}
	res.Pass = res.Assessment.Level != domain.RiskHigh && res.Assessment.Confidence >= t.cfg.MinConfidence
	return res
}

// redactHighRiskFields walks every string field; a field whose own risk
// resolves to HIGH is replaced with the redaction marker.
func (t *Tables) redactHighRiskFields(v any) int {
	count := 0
	switch obj := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch field := obj[k].(type) {
			case string:
				if t.AssessText(field).Level == domain.RiskHigh {
					obj[k] = t.cfg.RedactionMarker
					count++
				}
			default:
				count += t.redactHighRiskFields(obj[k])
			}
		}
	case []any:
		for i, item := range obj {
			switch field := item.(type) {
			case string:
				if t.AssessText(field).Level == domain.RiskHigh {
					obj[i] = t.cfg.RedactionMarker
					count++
				}
			default:
				count += t.redactHighRiskFields(item)
			}
		}
	}
	return count
}

// checkDurationInvariant verifies that for each available day the plan's
// block durations sum to the profile's daily budget within tolerance, and
// that unavailable days carry no blocks.
func (t *Tables) checkDurationInvariant(payload map[string]any, profile domain.Profile) []string {
	blocks, ok := payload["timeBlocks"].(map[string]any)
	if !ok {
		return []string{"timeBlocks: missing or not an object"}
	}
	tol := t.cfg.DurationToleranceHours
	var issues []string
	for _, day := range domain.WeekDays {
		arr, _ := blocks[day].([]any)
		sum := 0.0
		for _, b := range arr {
			obj, ok := b.(map[string]any)
			if !ok {
				continue
			}
			if f, ok := obj["durationHours"].(float64); ok {
				sum += f
			}
		}
		if profile.IsAvailable(day) {
			if math.Abs(sum-profile.TimeBudgetHoursPerDay) > tol {
				issues = append(issues, fmt.Sprintf("timeBlocks.%s: sums to %.2fh, budget is %.2fh", day, sum, profile.TimeBudgetHoursPerDay))
			}
		} else if len(arr) > 0 {
			issues = append(issues, fmt.Sprintf("timeBlocks.%s: day is unavailable but has blocks", day))
		}
	}
	return issues
}

// flattenStrings joins every string value in the payload for aggregate
// scanning. Key order is fixed so scoring is deterministic.
func flattenStrings(v any) string {
	var b strings.Builder
	collectStrings(v, &b)
	return b.String()
}

func collectStrings(v any, b *strings.Builder) {
	switch obj := v.(type) {
	case string:
		b.WriteString(obj)
		b.WriteString("\n")
	case map[string]any:
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectStrings(obj[k], b)
		}
	case []any:
		for _, item := range obj {
			collectStrings(item, b)
		}
	}
}

func deepCopy(v any) map[string]any {
	out, _ := copyValue(v).(map[string]any)
	return out
}

func copyValue(v any) any {
	switch obj := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(obj))
		for k, val := range obj {
			out[k] = copyValue(val)
		}
		return out
	case []any:
		out := make([]any, len(obj))
		for i, val := range obj {
			out[i] = copyValue(val)
		}
		return out
	default:
		return v
	}
}
