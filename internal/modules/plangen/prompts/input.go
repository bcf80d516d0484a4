package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Profile
	TargetRole      string
	Stage           string
	TimeBudgetHours string
	AvailableDays   string
	ConstraintsJSON string
	// Optional generation hints
	PreferencesJSON string
	// Plan context
	WeekOf string
	// Reroll context
	SectionKey         string
	CurrentSectionJSON string
}
