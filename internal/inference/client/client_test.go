package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"a": map[string]any{"type": "string"},
		},
		"required":             []string{"a"},
		"additionalProperties": false,
	}
}

func newTestClient(t *testing.T, srv *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	c, err := New(Options{
		BaseURL: srv.URL,
		APIKey:  "test-key",
		Model:   "test-model",
		Timeout: timeout,
	})
	if err != nil {
		t.Fatalf("client init: %v", err)
	}
	return c
}

func TestGenerateJSON_Success(t *testing.T) {
	var gotAuth string
	var gotReq textGenerateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/v1/text/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"output_text": `{"a":"b"}`,
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 20},
		})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 5*time.Second)
	res, err := c.GenerateJSON(context.Background(), "sys", "user", "test_schema", testSchema())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != `{"a":"b"}` {
		t.Fatalf("unexpected text %q", res.Text)
	}
	if res.Usage.InputTokens != 10 || res.Usage.OutputTokens != 20 {
		t.Fatalf("unexpected usage %+v", res.Usage)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotReq.JSONSchema == nil || !gotReq.JSONSchema.Strict || gotReq.JSONSchema.Name != "test_schema" {
		t.Fatalf("expected strict schema in request, got %+v", gotReq.JSONSchema)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages %+v", gotReq.Messages)
	}
}

func TestGenerateJSON_UpstreamErrorIsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 5*time.Second)
	_, err := c.GenerateJSON(context.Background(), "sys", "user", "test_schema", testSchema())
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HTTPError, got %T: %v", err, err)
	}
	if herr.StatusCode != http.StatusServiceUnavailable || herr.Message != "overloaded" {
		t.Fatalf("unexpected HTTPError: %+v", herr)
	}
}

func TestGenerateJSON_SlowServerIsTimeoutError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 50*time.Millisecond)
	_, err := c.GenerateJSON(context.Background(), "sys", "user", "test_schema", testSchema())
	var terr *TimeoutError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TimeoutError, got %T: %v", err, err)
	}
	if terr.Elapsed <= 0 {
		t.Fatalf("expected positive elapsed, got %v", terr.Elapsed)
	}
}

func TestGenerateJSON_CallerCancellationIsNotTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := c.GenerateJSON(ctx, "sys", "user", "test_schema", testSchema())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %T: %v", err, err)
	}
}

func TestGenerateJSON_EmptyOutputIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"output_text": "  "})
	}))
	defer srv.Close()

	c := newTestClient(t, srv, 5*time.Second)
	_, err := c.GenerateJSON(context.Background(), "sys", "user", "test_schema", testSchema())
	var herr *HTTPError
	if !errors.As(err, &herr) {
		t.Fatalf("expected HTTPError for empty output, got %T: %v", err, err)
	}
}

func TestGenerateJSON_RejectsMissingSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := newTestClient(t, srv, 5*time.Second)
	if _, err := c.GenerateJSON(context.Background(), "sys", "user", "", testSchema()); err == nil {
		t.Fatalf("expected error for empty schema name")
	}
	if _, err := c.GenerateJSON(context.Background(), "sys", "user", "test_schema", nil); err == nil {
		t.Fatalf("expected error for nil schema")
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Options{Model: "m"}); err == nil {
		t.Fatalf("expected error for missing baseURL")
	}
	if _, err := New(Options{BaseURL: "http://x"}); err == nil {
		t.Fatalf("expected error for missing model")
	}
}
