package prompts

type PromptName string

const (
	PromptPlanWeek         PromptName = "plan_week"
	PromptPrepPack         PromptName = "prep_pack"
	PromptRerollTimeBlocks PromptName = "reroll_time_blocks"
	PromptRerollResources  PromptName = "reroll_resources"
	PromptRerollDailyTasks PromptName = "reroll_daily_tasks"
)

// Rerollable section keys as they appear in the HTTP path and in the
// narrowed output schema.
const (
	SectionTimeBlocks = "timeBlocks"
	SectionResources  = "resources"
	SectionDailyTasks = "dailyTasks"
)

// RerollPromptFor maps a section key to its registered prompt.
func RerollPromptFor(section string) (PromptName, bool) {
	switch section {
	case SectionTimeBlocks:
		return PromptRerollTimeBlocks, true
	case SectionResources:
		return PromptRerollResources, true
	case SectionDailyTasks:
		return PromptRerollDailyTasks, true
	default:
		return "", false
	}
}
