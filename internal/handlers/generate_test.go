package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/prepplan-backend/internal/evallog"
	"github.com/yungbote/prepplan-backend/internal/inference/client"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen/safety"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

type stubAI struct {
	err error
}

func (s stubAI) GenerateJSON(ctx context.Context, system, user, schemaName string, schema map[string]any) (client.Result, error) {
	return client.Result{}, s.err
}

func (s stubAI) Model() string { return "stub-model" }

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sink, err := evallog.NewSink("", nil)
	if err != nil {
		t.Fatalf("sink init: %v", err)
	}
	uc := plangen.NewUsecases(plangen.Deps{
		AI:     stubAI{err: &client.TimeoutError{Elapsed: time.Second}},
		Safety: safety.MustCompile(safety.DefaultConfig()),
		Eval:   sink,
	})
	h := NewGenerateHandler(logger.NewNop(), uc)

	r := gin.New()
	r.POST("/generate/routine", h.GenerateRoutine)
	r.POST("/generate/prep", h.GeneratePrep)
	r.POST("/reroll/:section", h.Reroll)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const validProfileJSON = `{
	"name": "Ada",
	"stage": "student",
	"targetRole": "Backend Engineer",
	"timeBudgetHoursPerDay": 2.0,
	"availableDays": ["Mon", "Wed", "Fri"]
}`

func TestGenerateRoutine_InvalidJSONIs400(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/generate/routine", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad error envelope: %v", err)
	}
	if env.Error.Code != "invalid_json" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func TestGenerateRoutine_InvalidProfileIs400(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/generate/routine", `{"profile": {"name": "Ada"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad error envelope: %v", err)
	}
	if env.Error.Code != "invalid_profile" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func TestGenerateRoutine_ModelFailureStill200(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/generate/routine", `{"profile": `+validProfileJSON+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on model failure, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	plan, ok := body["plan"].(map[string]any)
	if !ok {
		t.Fatalf("expected plan object, got %v", body)
	}
	if _, ok := plan["timeBlocks"]; !ok {
		t.Fatalf("expected fallback plan with timeBlocks, got %v", plan)
	}
}

func TestGeneratePrep_ModelFailureStill200(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/generate/prep", `{"profile": `+validProfileJSON+`}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	prep, ok := body["prep"].(map[string]any)
	if !ok {
		t.Fatalf("expected prep object, got %v", body)
	}
	if _, ok := prep["weeklyDrillPlan"]; !ok {
		t.Fatalf("expected fallback prep with weeklyDrillPlan, got %v", prep)
	}
}

func TestReroll_UnknownSectionIs400(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/reroll/milestones", `{"profile": `+validProfileJSON+`, "currentPlan": {}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	var env ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad error envelope: %v", err)
	}
	if env.Error.Code != "invalid_request" {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func TestReroll_InvalidCurrentPlanIs400(t *testing.T) {
	r := newTestRouter(t)
	w := doJSON(t, r, "/reroll/timeBlocks", `{"profile": `+validProfileJSON+`, "currentPlan": {"weekOf": "2026-08-31"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}
