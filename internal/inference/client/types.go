package client

type textGenerateMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type textGenerateJSONSchema struct {
	Name   string         `json:"name"`
	Schema map[string]any `json:"schema"`
	Strict bool           `json:"strict"`
}

type textGenerateRequest struct {
	Model       string                  `json:"model"`
	Messages    []textGenerateMessage   `json:"messages"`
	Temperature float64                 `json:"temperature,omitempty"`
	JSONSchema  *textGenerateJSONSchema `json:"json_schema,omitempty"`
}

type textGenerateResponse struct {
	OutputText string `json:"output_text"`
	Usage      *usage `json:"usage,omitempty"`
}

type usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Usage reports token counts when the backend provides them; zero otherwise.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Result is the raw outcome of a generation call. Text is returned as-is;
// repair and schema validation happen downstream.
type Result struct {
	Text  string
	Usage Usage
}
