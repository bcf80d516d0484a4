package prompts

import (
	"fmt"
	"strings"
)

// Prompt is the composed result ready to hand to the inference client.
type Prompt struct {
	Name       string
	Version    int
	SchemaName string
	Schema     map[string]any
	System     string
	User       string
}

type Template struct {
	Name       PromptName
	Version    int
	SchemaName string
	Schema     func() map[string]any
	System     func(Input) string
	User       func(Input) string
	Validate   Validator
}

var registry = map[PromptName]Template{}

// Register registers a compiled Template.
func Register(t Template) {
	registry[t.Name] = t
}

// safetyGuidelines is appended to every system prompt before it leaves this
// package. Fixed block; do not template it.
const safetyGuidelines = `
Safety guidelines:
- Recommend only well-known, reputable learning resources with https URLs.
- Never include personal data, medical, legal, or financial advice.
- Never include placeholder text such as [TODO], [insert], or lorem ipsum.
- Keep all content relevant to study planning and interview preparation.
- If the request cannot be satisfied, return the closest safe valid plan.`

// Build renders a Prompt for the given input. The safety guidelines block is
// always suffixed to the system prompt.
func Build(name PromptName, in Input) (Prompt, error) {
	t, ok := registry[name]
	if !ok {
		return Prompt{}, fmt.Errorf("unknown prompt: %s", string(name))
	}
	if t.Schema == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing schema", string(name))
	}
	if t.System == nil || t.User == nil {
		return Prompt{}, fmt.Errorf("prompt %s missing system/user renderers", string(name))
	}
	if t.Validate != nil {
		if err := t.Validate(in); err != nil {
			return Prompt{}, fmt.Errorf("%s: %w", string(name), err)
		}
	}

	return Prompt{
		Name:       string(t.Name),
		Version:    t.Version,
		SchemaName: strings.TrimSpace(t.SchemaName),
		Schema:     t.Schema(),
		System:     strings.TrimSpace(t.System(in)) + "\n" + safetyGuidelines,
		User:       strings.TrimSpace(t.User(in)),
	}, nil
}

func Schema(name PromptName) (schemaName string, schema map[string]any, ok bool) {
	t, ok := registry[name]
	if !ok || t.Schema == nil {
		return "", nil, false
	}
	return t.SchemaName, t.Schema(), true
}
