package safety

import (
	"sort"

	"github.com/yungbote/prepplan-backend/internal/domain"
)

// AssessText scores one text against the pattern table. Each category
// contributes its weight at most once no matter how many of its patterns
// match.
func (t *Tables) AssessText(text string) domain.RiskAssessment {
	matched := map[string]int{}
	for _, r := range t.rules {
		if r.re.MatchString(text) {
			if w, ok := matched[r.category]; !ok || r.weight > w {
				matched[r.category] = r.weight
			}
		}
	}
	score := 0
	reasons := make([]string, 0, len(matched))
	for cat, w := range matched {
		score += w
		reasons = append(reasons, cat)
	}
	sort.Strings(reasons)
	return domain.RiskAssessment{
		Level:   LevelForScore(score),
		Score:   score,
		Reasons: reasons,
	}
}

// LevelForScore maps the cumulative score onto the risk buckets:
// SAFE(0), LOW(1-5), MEDIUM(6-10), HIGH(>10).
func LevelForScore(score int) string {
	switch {
	case score <= 0:
		return domain.RiskSafe
	case score <= 5:
		return domain.RiskLow
	case score <= 10:
		return domain.RiskMedium
	default:
		return domain.RiskHigh
	}
}

// addReason merges an extra category into an assessment, re-deriving the
// level. Used for quality issues found outside the regex scan.
func addReason(a domain.RiskAssessment, category string, weight int) domain.RiskAssessment {
	for _, r := range a.Reasons {
		if r == category {
			return a
		}
	}
	a.Score += weight
	a.Reasons = append(a.Reasons, category)
	sort.Strings(a.Reasons)
	a.Level = LevelForScore(a.Score)
	return a
}
