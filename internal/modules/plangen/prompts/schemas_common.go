package prompts

func ObjectSchema(properties map[string]any, required []string) map[string]any {
	if properties == nil {
		properties = map[string]any{}
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"required":             required,
		"additionalProperties": false,
	}
}

func StringSchema() map[string]any {
	return map[string]any{"type": "string"}
}

func StringArraySchema() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}

func BoundedArraySchema(items map[string]any, minItems, maxItems int) map[string]any {
	out := map[string]any{
		"type":     "array",
		"items":    items,
		"minItems": minItems,
	}
	if maxItems > 0 {
		out["maxItems"] = maxItems
	}
	return out
}

func NumberSchema() map[string]any {
	return map[string]any{"type": "number"}
}

func BoundedNumberSchema(min, max float64) map[string]any {
	return map[string]any{"type": "number", "minimum": min, "maximum": max}
}

func IntSchema() map[string]any {
	return map[string]any{"type": "integer"}
}

func EnumSchema(values ...string) map[string]any {
	arr := make([]any, 0, len(values))
	for _, v := range values {
		arr = append(arr, v)
	}
	return map[string]any{"type": "string", "enum": arr}
}
