package prompts

import (
	"strings"
	"testing"
)

func buildInput() Input {
	return Input{
		TargetRole:      "Backend Engineer",
		Stage:           "student",
		TimeBudgetHours: "2.00",
		AvailableDays:   "Mon, Tue, Wed, Thu, Fri",
		WeekOf:          "2026-08-31",
	}
}

func TestBuild_PlanWeek_AppendsSafetyGuidelines(t *testing.T) {
	RegisterAll()
	p, err := Build(PromptPlanWeek, buildInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.System, "Safety guidelines:") {
		t.Fatalf("expected safety guidelines suffix in system prompt")
	}
	if !strings.Contains(p.User, "Backend Engineer") {
		t.Fatalf("expected target role rendered into user prompt")
	}
	if p.SchemaName != "weekly_plan" {
		t.Fatalf("unexpected schema name %q", p.SchemaName)
	}
}

func TestBuild_RejectsMissingRequiredInput(t *testing.T) {
	RegisterAll()
	in := buildInput()
	in.TargetRole = ""
	if _, err := Build(PromptPlanWeek, in); err == nil {
		t.Fatalf("expected validator error for empty TargetRole")
	}
}

func TestBuild_UnknownPromptFails(t *testing.T) {
	RegisterAll()
	if _, err := Build(PromptName("nope"), buildInput()); err == nil {
		t.Fatalf("expected error for unknown prompt")
	}
}

func TestRerollSchema_ContainsOnlyRequestedSection(t *testing.T) {
	for _, section := range []string{SectionTimeBlocks, SectionResources, SectionDailyTasks} {
		schema := RerollSchema(section)
		props, ok := schema["properties"].(map[string]any)
		if !ok {
			t.Fatalf("%s: missing properties", section)
		}
		if len(props) != 1 {
			t.Fatalf("%s: expected exactly one property, got %d", section, len(props))
		}
		if _, ok := props[section]; !ok {
			t.Fatalf("%s: property for section missing", section)
		}
		req, ok := schema["required"].([]string)
		if !ok || len(req) != 1 || req[0] != section {
			t.Fatalf("%s: required must list only the section, got %v", section, schema["required"])
		}
	}
}

func TestRerollBuild_EmbedsCurrentSection(t *testing.T) {
	RegisterAll()
	in := buildInput()
	in.SectionKey = SectionResources
	in.CurrentSectionJSON = `[{"title":"x","url":"https://example.org","kind":"doc"}]`
	p, err := Build(PromptRerollResources, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.User, in.CurrentSectionJSON) {
		t.Fatalf("expected current section JSON embedded in user prompt")
	}
}

func TestRerollBuild_RequiresCurrentSection(t *testing.T) {
	RegisterAll()
	in := buildInput()
	in.SectionKey = SectionTimeBlocks
	if _, err := Build(PromptRerollTimeBlocks, in); err == nil {
		t.Fatalf("expected validator error for empty CurrentSectionJSON")
	}
}

func TestPlanSchema_RequiresAllWeekdaysInTimeBlocks(t *testing.T) {
	schema := TimeBlocksSectionSchema()
	req, ok := schema["required"].([]string)
	if !ok {
		t.Fatalf("expected []string required")
	}
	if len(req) != 7 {
		t.Fatalf("expected all 7 weekdays required, got %d", len(req))
	}
}
