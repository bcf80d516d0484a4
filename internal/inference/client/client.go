package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type Options struct {
	BaseURL string
	APIKey  string
	Model   string

	// Hard wall-clock bound per call. The in-flight request is cancelled on
	// expiry. Required; callers must never wait past it.
	Timeout time.Duration

	HTTPClient *http.Client
}

// Client makes exactly one schema-constrained generation call per
// GenerateJSON. It never retries; retry policy belongs to the caller.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	timeout time.Duration

	httpClient *http.Client
}

func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		return nil, errors.New("model required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		model:      model,
		timeout:    timeout,
		httpClient: hc,
	}, nil
}

func (c *Client) Model() string { return c.model }

// GenerateJSON sends {model, system, user, json_schema} with strict schema
// mode and returns the raw output text plus usage when reported.
func (c *Client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (Result, error) {
	if strings.TrimSpace(schemaName) == "" {
		return Result{}, errors.New("schemaName required")
	}
	if schema == nil {
		return Result{}, errors.New("schema required")
	}

	req := textGenerateRequest{
		Model: c.model,
		Messages: []textGenerateMessage{
			{Role: "system", Content: strings.TrimSpace(system)},
			{Role: "user", Content: user},
		},
		Temperature: 0.2,
		JSONSchema: &textGenerateJSONSchema{
			Name:   strings.TrimSpace(schemaName),
			Schema: schema,
			Strict: true,
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return Result{}, err
	}

	ctx2, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tracer := otel.Tracer("inference")
	ctx2, span := tracer.Start(ctx2, "inference.generate_json")
	span.SetAttributes(
		attribute.String("gen_ai.request.model", c.model),
		attribute.String("gen_ai.output.schema", schemaName),
	)
	defer span.End()

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx2, http.MethodPost, c.baseURL+"/v1/text/generate", &buf)
	if err != nil {
		return Result{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// Distinguish our own deadline from caller cancellation and from
		// transport failures.
		if ctx2.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			terr := &TimeoutError{Elapsed: time.Since(started)}
			span.SetStatus(codes.Error, terr.Error())
			return Result{}, terr
		}
		if ctx.Err() != nil {
			span.SetStatus(codes.Error, ctx.Err().Error())
			return Result{}, ctx.Err()
		}
		span.SetStatus(codes.Error, err.Error())
		return Result{}, &HTTPError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		if ctx2.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			terr := &TimeoutError{Elapsed: time.Since(started)}
			span.SetStatus(codes.Error, terr.Error())
			return Result{}, terr
		}
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		herr := parseHTTPError(resp.StatusCode, raw)
		span.SetStatus(codes.Error, herr.Error())
		return Result{}, herr
	}

	var out textGenerateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{}, &HTTPError{StatusCode: resp.StatusCode, Message: "malformed gateway response", Body: string(raw[:min(len(raw), 512)])}
	}
	if strings.TrimSpace(out.OutputText) == "" {
		return Result{}, &HTTPError{StatusCode: resp.StatusCode, Message: "empty output_text"}
	}

	res := Result{Text: out.OutputText}
	if out.Usage != nil {
		res.Usage = Usage{InputTokens: out.Usage.InputTokens, OutputTokens: out.Usage.OutputTokens}
	}
	return res, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
