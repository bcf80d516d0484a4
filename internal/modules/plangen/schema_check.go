package plangen

import (
	"fmt"
	"math"
	"sort"
)

// ValidateSchema walks a decoded payload against one of the map[string]any
// schemas the prompt registry builds. It understands the subset of JSON
// Schema those builders emit: type, properties, required,
// additionalProperties, items, enum, minimum/maximum, minItems/maxItems.
// Returns the violating instance paths; empty means valid.
func ValidateSchema(schema map[string]any, value any) []string {
	var out []string
	walkSchema(schema, value, "$", &out)
	return out
}

// CheckSchema wraps ValidateSchema into the pipeline's typed error.
func CheckSchema(schema map[string]any, value any) *SchemaError {
	paths := ValidateSchema(schema, value)
	if len(paths) == 0 {
		return nil
	}
	return &SchemaError{Paths: paths}
}

func walkSchema(schema map[string]any, value any, path string, out *[]string) {
	if schema == nil {
		return
	}

	if enum, ok := schema["enum"].([]any); ok {
		if !enumContains(enum, value) {
			*out = append(*out, fmt.Sprintf("%s: not in enum", path))
		}
		return
	}

	typ := schemaType(schema)
	switch typ {
	case "object":
		obj, ok := value.(map[string]any)
		if !ok {
			*out = append(*out, fmt.Sprintf("%s: expected object", path))
			return
		}
		props, _ := schema["properties"].(map[string]any)
		if req, ok := schema["required"].([]string); ok {
			for _, k := range req {
				if _, present := obj[k]; !present {
					*out = append(*out, fmt.Sprintf("%s.%s: required", path, k))
				}
			}
		} else if req, ok := schema["required"].([]any); ok {
			for _, kv := range req {
				if k, ok := kv.(string); ok {
					if _, present := obj[k]; !present {
						*out = append(*out, fmt.Sprintf("%s.%s: required", path, k))
					}
				}
			}
		}
		extraForbidden := false
		if ap, ok := schema["additionalProperties"].(bool); ok && !ap {
			extraForbidden = true
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sub, known := props[k].(map[string]any)
			if !known {
				if extraForbidden {
					*out = append(*out, fmt.Sprintf("%s.%s: unexpected property", path, k))
				}
				continue
			}
			walkSchema(sub, obj[k], path+"."+k, out)
		}
	case "array":
		arr, ok := value.([]any)
		if !ok {
			*out = append(*out, fmt.Sprintf("%s: expected array", path))
			return
		}
		if n, ok := intBound(schema["minItems"]); ok && len(arr) < n {
			*out = append(*out, fmt.Sprintf("%s: fewer than %d items", path, n))
		}
		if n, ok := intBound(schema["maxItems"]); ok && len(arr) > n {
			*out = append(*out, fmt.Sprintf("%s: more than %d items", path, n))
		}
		items, _ := schema["items"].(map[string]any)
		for i, item := range arr {
			walkSchema(items, item, fmt.Sprintf("%s[%d]", path, i), out)
		}
	case "string":
		if _, ok := value.(string); !ok {
			*out = append(*out, fmt.Sprintf("%s: expected string", path))
		}
	case "number":
		f, ok := floatValue(value)
		if !ok {
			*out = append(*out, fmt.Sprintf("%s: expected number", path))
			return
		}
		checkNumericBounds(schema, f, path, out)
	case "integer":
		f, ok := floatValue(value)
		if !ok || f != math.Trunc(f) {
			*out = append(*out, fmt.Sprintf("%s: expected integer", path))
			return
		}
		checkNumericBounds(schema, f, path, out)
	case "boolean":
		if _, ok := value.(bool); !ok {
			*out = append(*out, fmt.Sprintf("%s: expected boolean", path))
		}
	}
}

func checkNumericBounds(schema map[string]any, f float64, path string, out *[]string) {
	if minV, ok := floatValue(schema["minimum"]); ok && f < minV {
		*out = append(*out, fmt.Sprintf("%s: below minimum %v", path, minV))
	}
	if maxV, ok := floatValue(schema["maximum"]); ok && f > maxV {
		*out = append(*out, fmt.Sprintf("%s: above maximum %v", path, maxV))
	}
}

func schemaType(schema map[string]any) string {
	switch t := schema["type"].(type) {
	case string:
		return t
	case []any:
		// Nullable unions like ["string","null"]; validate against the
		// non-null member.
		for _, v := range t {
			if s, ok := v.(string); ok && s != "null" {
				return s
			}
		}
	}
	return ""
}

func enumContains(enum []any, value any) bool {
	for _, e := range enum {
		if e == value {
			return true
		}
	}
	return false
}

func intBound(v any) (int, bool) {
	f, ok := floatValue(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func floatValue(v any) (float64, bool) {
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

// sectionFromPlan pulls one rerollable section out of a decoded plan.
func sectionFromPlan(plan map[string]any, section string) (any, bool) {
	v, ok := plan[section]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}
