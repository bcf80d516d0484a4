package plangen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/prepplan-backend/internal/domain"
	"github.com/yungbote/prepplan-backend/internal/evallog"
	"github.com/yungbote/prepplan-backend/internal/inference/client"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen/prompts"
	"github.com/yungbote/prepplan-backend/internal/modules/plangen/safety"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

// Fallback causes recorded in the eval log.
const (
	causeComposeError    = "compose_error"
	causeTimeout         = "timeout"
	causeServiceError    = "service_error"
	causeCancelled       = "cancelled"
	causeParseError      = "parse_error"
	causeSchemaError     = "schema_error"
	causeSafetyRejection = "safety_rejection"
)

// Generator is the single suspending dependency: one schema-constrained
// generation call under a hard timeout. Implementations never retry.
type Generator interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (client.Result, error)
	Model() string
}

type Deps struct {
	Log         *logger.Logger
	AI          Generator
	Safety      *safety.Tables
	Eval        *evallog.Sink
	Transcripts *evallog.TranscriptStore
	// Now is injectable for deterministic weekOf in tests.
	Now func() time.Time
}

type Usecases struct {
	deps Deps
}

func NewUsecases(deps Deps) Usecases {
	prompts.RegisterAll()
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	return Usecases{deps: deps}
}

// GenerateRoutine runs the full pipeline for a weekly plan. Fallback-first:
// it always returns a schema-valid payload; model-side failures are visible
// only in the eval log.
func (u Usecases) GenerateRoutine(ctx context.Context, profile domain.Profile, prefs *domain.Preferences) map[string]any {
	weekOf := weekOfFrom(u.deps.Now())
	in := promptInputFor(profile)
	in.WeekOf = weekOf
	if prefs != nil {
		if b, err := json.Marshal(prefs); err == nil {
			in.PreferencesJSON = string(b)
		}
	}
	return u.run(ctx, runSpec{
		operation:     "generate_routine",
		prompt:        prompts.PromptPlanWeek,
		input:         in,
		hasTimeBlocks: true,
		fallback:      func() map[string]any { return FallbackRoutine(profile, weekOf) },
	}, profile)
}

// GeneratePrep runs the pipeline for an interview prep pack.
func (u Usecases) GeneratePrep(ctx context.Context, profile domain.Profile) map[string]any {
	return u.run(ctx, runSpec{
		operation: "generate_prep",
		prompt:    prompts.PromptPrepPack,
		input:     promptInputFor(profile),
		fallback:  func() map[string]any { return FallbackPrep(profile) },
	}, profile)
}

// Reroll regenerates one named section of an existing plan. An invalid
// section or a currentPlan that fails the plan schema is a caller error and
// returns a ValidationError before any model call. Any downstream failure
// returns the current section unchanged.
func (u Usecases) Reroll(ctx context.Context, section string, profile domain.Profile, currentPlan map[string]any) (map[string]any, *ValidationError) {
	name, ok := prompts.RerollPromptFor(section)
	if !ok {
		return nil, &ValidationError{Violations: []string{fmt.Sprintf("section: %q is not rerollable", section)}}
	}
	if currentPlan == nil {
		return nil, &ValidationError{Violations: []string{"currentPlan: required"}}
	}
	if serr := CheckSchema(prompts.PlanSchema(), currentPlan); serr != nil {
		return nil, &ValidationError{Violations: append([]string{"currentPlan failed plan schema:"}, serr.Paths...)}
	}
	current, ok := sectionFromPlan(currentPlan, section)
	if !ok {
		return nil, &ValidationError{Violations: []string{fmt.Sprintf("currentPlan.%s: required for reroll", section)}}
	}

	currentJSON, err := json.Marshal(current)
	if err != nil {
		return nil, &ValidationError{Violations: []string{fmt.Sprintf("currentPlan.%s: not serializable", section)}}
	}

	in := promptInputFor(profile)
	in.SectionKey = section
	in.CurrentSectionJSON = string(currentJSON)

	out := u.run(ctx, runSpec{
		operation:     "reroll_" + section,
		prompt:        name,
		input:         in,
		hasTimeBlocks: section == prompts.SectionTimeBlocks,
		fallback:      func() map[string]any { return FallbackReroll(section, current) },
	}, profile)
	return out, nil
}

type runSpec struct {
	operation     string
	prompt        prompts.PromptName
	input         prompts.Input
	hasTimeBlocks bool
	fallback      func() map[string]any
}

// run drives one request through COMPOSE → INVOKE → REPAIR →
// SCHEMA_VALIDATE → SAFETY_GATE, substituting the fallback on any failure,
// and writes exactly one eval log entry on every path.
func (u Usecases) run(ctx context.Context, spec runSpec, profile domain.Profile) map[string]any {
	traceID := uuid.NewString()
	log := u.deps.Log.With("operation", spec.operation, "trace_id", traceID)
	started := u.deps.Now()

	entry := domain.InteractionLogEntry{
		TraceID:   traceID,
		Timestamp: started.UTC(),
		Operation: spec.operation,
	}
	if u.deps.AI != nil {
		entry.Model = u.deps.AI.Model()
	}

	finish := func(payload map[string]any) map[string]any {
		entry.LatencyMS = time.Since(started).Milliseconds()
		u.deps.Eval.Append(entry)
		return payload
	}

	p, err := prompts.Build(spec.prompt, spec.input)
	if err != nil {
		log.Error("prompt compose failed", "error", err)
		entry.UsedFallback = true
		entry.FallbackCause = causeComposeError
		return finish(spec.fallback())
	}
	entry.PromptChars = len(p.System) + len(p.User)

	res, err := u.deps.AI.GenerateJSON(ctx, p.System, p.User, p.SchemaName, p.Schema)
	if err != nil {
		cause := causeServiceError
		var terr *client.TimeoutError
		switch {
		case errors.As(err, &terr):
			cause = causeTimeout
		case errors.Is(err, context.Canceled):
			cause = causeCancelled
		}
		log.Warn("model call failed, using fallback", "cause", cause, "error", err)
		entry.UsedFallback = true
		entry.FallbackCause = cause
		return finish(spec.fallback())
	}
	entry.ResponseChars = len(res.Text)
	entry.PromptTokens = res.Usage.InputTokens
	entry.OutputTokens = res.Usage.OutputTokens

	u.deps.Transcripts.Save(ctx, evallog.Transcript{
		TraceID:      traceID,
		Operation:    spec.operation,
		Model:        entry.Model,
		SystemPrompt: p.System,
		UserPrompt:   p.User,
		RawResponse:  res.Text,
	})

	obj, perr := Repair(res.Text)
	if perr != nil {
		log.Warn("model output unparseable, using fallback", "snippet", perr.Snippet)
		entry.UsedFallback = true
		entry.FallbackCause = causeParseError
		return finish(spec.fallback())
	}

	if serr := CheckSchema(p.Schema, obj); serr != nil {
		log.Warn("model output failed schema, using fallback", "paths", strings.Join(serr.Paths, "; "))
		entry.UsedFallback = true
		entry.FallbackCause = causeSchemaError
		return finish(spec.fallback())
	}

	gate := u.deps.Safety.Evaluate(obj, profile, spec.hasTimeBlocks)
	entry.RiskLevel = gate.Assessment.Level
	entry.RiskScore = gate.Assessment.Score
	entry.Confidence = gate.Assessment.Confidence
	entry.HasHighRisk = gate.HasHighRisk
	if len(gate.Issues) > 0 {
		log.Debug("safety gate issues", "issues", strings.Join(gate.Issues, "; "))
	}
	if !gate.Pass {
		rej := &SafetyRejection{
			Level:      gate.Assessment.Level,
			Score:      gate.Assessment.Score,
			Confidence: gate.Assessment.Confidence,
			Reasons:    gate.Assessment.Reasons,
		}
		log.Warn("safety gate rejected output, using fallback", "error", rej)
		entry.UsedFallback = true
		entry.FallbackCause = causeSafetyRejection
		return finish(spec.fallback())
	}

	// Gate interventions (dropped resources, redactions) can push the
	// payload back out of the operation schema, e.g. below resources
	// minItems. A thinned payload must never reach the caller.
	if serr := CheckSchema(p.Schema, gate.Payload); serr != nil {
		log.Warn("gate interventions left payload schema-invalid, using fallback", "paths", strings.Join(serr.Paths, "; "))
		entry.UsedFallback = true
		entry.FallbackCause = causeSafetyRejection
		return finish(spec.fallback())
	}

	return finish(gate.Payload)
}

func promptInputFor(profile domain.Profile) prompts.Input {
	in := prompts.Input{
		TargetRole:      profile.TargetRole,
		Stage:           profile.Stage,
		TimeBudgetHours: fmt.Sprintf("%.2f", profile.TimeBudgetHoursPerDay),
		AvailableDays:   strings.Join(profile.AvailableDays, ", "),
	}
	if len(profile.Constraints) > 0 {
		if b, err := json.Marshal(profile.Constraints); err == nil {
			in.ConstraintsJSON = string(b)
		}
	}
	return in
}

// weekOfFrom returns the ISO date of the Monday starting the plan week:
// today if Monday, otherwise the next one.
func weekOfFrom(now time.Time) string {
	d := now
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}
