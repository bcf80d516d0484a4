package safety

import (
	"net/url"
	"strings"
)

// ValidURL reports whether a resource link survives filtering: http/https
// scheme only, host not on the shortener denylist.
func (t *Tables) ValidURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, d := range t.cfg.URLDenylist {
		d = strings.ToLower(strings.TrimSpace(d))
		if d == "" {
			continue
		}
		if host == d || strings.HasSuffix(host, "."+d) {
			return false
		}
	}
	return true
}

// FilterResources drops any entry whose url field does not survive
// filtering. Entries with a valid https URL pass through unchanged.
// Returns the kept entries and how many were dropped.
func (t *Tables) FilterResources(resources []any) ([]any, int) {
	kept := make([]any, 0, len(resources))
	dropped := 0
	for _, r := range resources {
		obj, ok := r.(map[string]any)
		if !ok {
			dropped++
			continue
		}
		raw, _ := obj["url"].(string)
		if !t.ValidURL(raw) {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	return kept, dropped
}
