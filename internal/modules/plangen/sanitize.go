package plangen

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/prepplan-backend/internal/domain"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

// maxTextLen bounds every free-text field taken from the request.
const maxTextLen = 2000

var (
	fenceRe     = regexp.MustCompile("(?m)```+[a-zA-Z]*")
	separatorRe = regexp.MustCompile(`(?m)^\s*(-{3,}|={3,}|#{3,})\s*$`)

	// Known prompt-override phrasings. Matches are deleted, not rejected;
	// the request proceeds with the scrubbed text.
	overrideRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions`),
		regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above)\s+instructions`),
		regexp.MustCompile(`(?i)forget\s+(all\s+)?(previous|prior|above)\s+instructions`),
		regexp.MustCompile(`(?i)you\s+are\s+no\s+longer\s+`),
		regexp.MustCompile(`(?i)new\s+system\s+prompt\s*:`),
		regexp.MustCompile(`(?i)\bsystem\s*:\s*`),
	}
)

// Sanitize scrubs fence/separator sequences and prompt-override phrases from
// user-supplied text and truncates it. Never fails; suspicious input is
// logged and cleaned.
func Sanitize(text string, log *logger.Logger) string {
	out := text
	if fenceRe.MatchString(out) || separatorRe.MatchString(out) {
		if log != nil {
			log.Warn("stripping fence/separator sequences from request text")
		}
		out = fenceRe.ReplaceAllString(out, "")
		out = separatorRe.ReplaceAllString(out, "")
	}
	for _, re := range overrideRes {
		if re.MatchString(out) {
			if log != nil {
				log.Warn("neutralizing prompt-override phrase in request text", "pattern", re.String())
			}
			out = re.ReplaceAllString(out, "")
		}
	}
	out = strings.TrimSpace(out)
	if utf8.RuneCountInString(out) > maxTextLen {
		if log != nil {
			log.Warn("truncating oversized request text", "len", len(out))
		}
		// Truncate on a rune boundary; a byte slice could split a
		// multi-byte character and feed invalid UTF-8 to the prompt.
		out = string([]rune(out)[:maxTextLen])
	}
	return out
}

// ParseProfile validates the raw profile payload and returns a sanitized
// Profile. All schema violations are collected, not just the first.
func ParseProfile(payload map[string]any, log *logger.Logger) (domain.Profile, *ValidationError) {
	var p domain.Profile
	violations := []string{}

	if payload == nil {
		return p, &ValidationError{Violations: []string{"profile: required"}}
	}

	getString := func(key string) string {
		v, ok := payload[key]
		if !ok {
			violations = append(violations, fmt.Sprintf("profile.%s: required", key))
			return ""
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			violations = append(violations, fmt.Sprintf("profile.%s: must be a non-empty string", key))
			return ""
		}
		return Sanitize(s, log)
	}

	p.Name = getString("name")
	p.Stage = getString("stage")
	p.TargetRole = getString("targetRole")

	if v, ok := payload["timeBudgetHoursPerDay"]; !ok {
		violations = append(violations, "profile.timeBudgetHoursPerDay: required")
	} else if f, ok := toFloat(v); !ok {
		violations = append(violations, "profile.timeBudgetHoursPerDay: must be a number")
	} else if f < 0.5 || f > 24 {
		violations = append(violations, "profile.timeBudgetHoursPerDay: must be between 0.5 and 24")
	} else {
		p.TimeBudgetHoursPerDay = f
	}

	if v, ok := payload["availableDays"]; !ok {
		violations = append(violations, "profile.availableDays: required")
	} else {
		days, errs := parseDays(v)
		violations = append(violations, errs...)
		if len(errs) == 0 && len(days) == 0 {
			violations = append(violations, "profile.availableDays: must not be empty")
		}
		p.AvailableDays = days
	}

	if v, ok := payload["constraints"]; ok && v != nil {
		arr, ok := v.([]any)
		if !ok {
			violations = append(violations, "profile.constraints: must be an array of strings")
		} else {
			for i, item := range arr {
				s, ok := item.(string)
				if !ok {
					violations = append(violations, fmt.Sprintf("profile.constraints[%d]: must be a string", i))
					continue
				}
				s = Sanitize(s, log)
				if s != "" {
					p.Constraints = append(p.Constraints, s)
				}
			}
		}
	}

	if len(violations) > 0 {
		return domain.Profile{}, &ValidationError{Violations: violations}
	}
	return p, nil
}

func parseDays(v any) ([]string, []string) {
	arr, ok := v.([]any)
	if !ok {
		return nil, []string{"profile.availableDays: must be an array of weekday tokens"}
	}
	seen := map[string]bool{}
	errs := []string{}
	// Normalize to canonical Mon..Sun order regardless of request order.
	for i, item := range arr {
		s, ok := item.(string)
		if !ok || !domain.IsWeekDay(s) {
			errs = append(errs, fmt.Sprintf("profile.availableDays[%d]: must be one of Mon..Sun", i))
			continue
		}
		seen[s] = true
	}
	days := make([]string, 0, len(seen))
	for _, d := range domain.WeekDays {
		if seen[d] {
			days = append(days, d)
		}
	}
	return days, errs
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	default:
		return 0, false
	}
}
