package prompts

import "sync"

var registerOnce sync.Once

// RegisterAll registers every prompt. Safe to call more than once; wiring
// code and tests both call it.
func RegisterAll() {
	registerOnce.Do(registerAll)
}

func registerAll() {
	RegisterSpec(Spec{
		Name:       PromptPlanWeek,
		Version:    1,
		SchemaName: "weekly_plan",
		Schema:     PlanSchema,
		System: `
You are a study-planning assistant producing a one-week schedule for a
candidate preparing for a target role.
Every active day's blocks must sum to exactly the daily time budget.
Days the candidate is not available must be present with empty arrays.
Return JSON only.`,
		User: `
Target role: {{.TargetRole}}
Stage: {{.Stage}}
Daily time budget (hours): {{.TimeBudgetHours}}
Available days: {{.AvailableDays}}
Constraints (JSON, may be empty): {{.ConstraintsJSON}}
Preferences (JSON, may be empty): {{.PreferencesJSON}}
Week starting: {{.WeekOf}}

Output rules:
- timeBlocks: every weekday Mon..Sun as a key; inactive days -> [].
- On each available day the durationHours must sum to the daily budget.
- milestones: 3-6 concrete, checkable outcomes for the week.
- resources: 4-8 reputable resources with https URLs.
- dailyTasks: one short actionable task list per active day; inactive days -> [].
- version: 1.`,
		Validators: []Validator{
			RequireNonEmpty("TargetRole", func(in Input) string { return in.TargetRole }),
			RequireNonEmpty("AvailableDays", func(in Input) string { return in.AvailableDays }),
		},
	})

	RegisterSpec(Spec{
		Name:       PromptPrepPack,
		Version:    1,
		SchemaName: "prep_pack",
		Schema:     PrepPackSchema,
		System: `
You are an interview-preparation assistant building a structured prep pack
for a candidate targeting a specific role.
Ground everything in widely accepted interview practice for that role.
Return JSON only.`,
		User: `
Target role: {{.TargetRole}}
Stage: {{.Stage}}
Daily time budget (hours): {{.TimeBudgetHours}}
Constraints (JSON, may be empty): {{.ConstraintsJSON}}

Output rules:
- prepOutline: 4-6 sections, each with 2-8 concrete items.
- weeklyDrillPlan: exactly 5 days, each with a focus and 1-6 drills.
- starterQuestions: 5-7 realistic opening interview questions.
- resources: at least 5 reputable resources with https URLs.`,
		Validators: []Validator{
			RequireNonEmpty("TargetRole", func(in Input) string { return in.TargetRole }),
		},
	})

	for _, section := range []string{SectionTimeBlocks, SectionResources, SectionDailyTasks} {
		name, _ := RerollPromptFor(section)
		sec := section
		RegisterSpec(Spec{
			Name:       name,
			Version:    1,
			SchemaName: "reroll_" + sec,
			Schema:     func() map[string]any { return RerollSchema(sec) },
			System: `
You are revising one section of an existing weekly study plan.
Produce a materially different but equally valid instance of that section.
Keep the same structural constraints as the original.
Return JSON only.`,
			User: `
Target role: {{.TargetRole}}
Stage: {{.Stage}}
Daily time budget (hours): {{.TimeBudgetHours}}
Available days: {{.AvailableDays}}
Section to regenerate: {{.SectionKey}}

Current section JSON (produce something meaningfully different):
{{.CurrentSectionJSON}}

Output rules:
- Return an object with exactly one key: {{.SectionKey}}.
- Respect the daily time budget on active days and keep inactive days empty.
- Do not repeat the current section's content verbatim.`,
			Validators: []Validator{
				RequireNonEmpty("TargetRole", func(in Input) string { return in.TargetRole }),
				RequireNonEmpty("CurrentSectionJSON", func(in Input) string { return in.CurrentSectionJSON }),
			},
		})
	}
}
