package safety

import "strings"

// Confidence scores how trustworthy a payload's text looks. Starts at 1.0
// and applies the configured penalties, clamped to [0,1].
func (t *Tables) Confidence(text string) float64 {
	c := 1.0
	p := t.cfg.Penalties

	if t.placeholderRe.MatchString(text) {
		c -= p.Placeholder
	}
	if len(text) < t.cfg.ShortContentChars {
		c -= p.ShortContent
	}
	if len(text) > t.cfg.LongContentChars {
		c -= p.LongContent
	}
	for _, u := range t.urlRe.FindAllString(text, -1) {
		if !strings.HasPrefix(strings.ToLower(u), "https://") {
			c -= p.InsecureURL
			break
		}
	}

	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
