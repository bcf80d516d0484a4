package plangen

import (
	"fmt"
	"math"

	"github.com/yungbote/prepplan-backend/internal/domain"
)

// Canonical fallback content. Pure functions of (profile, weekOf): the same
// inputs always produce structurally identical output. Links are pre-vetted
// https only.

var fallbackPlanResources = []map[string]any{
	{"title": "Tech Interview Handbook", "url": "https://www.techinterviewhandbook.org/", "kind": "doc"},
	{"title": "LeetCode Explore", "url": "https://leetcode.com/explore/", "kind": "practice"},
	{"title": "System Design Primer", "url": "https://github.com/donnemartin/system-design-primer", "kind": "doc"},
	{"title": "freeCodeCamp Curriculum", "url": "https://www.freecodecamp.org/learn/", "kind": "course"},
	{"title": "MIT OpenCourseWare", "url": "https://ocw.mit.edu/", "kind": "course"},
}

var fallbackPrepResources = []map[string]any{
	{"title": "Tech Interview Handbook", "url": "https://www.techinterviewhandbook.org/", "kind": "doc"},
	{"title": "LeetCode Explore", "url": "https://leetcode.com/explore/", "kind": "practice"},
	{"title": "System Design Primer", "url": "https://github.com/donnemartin/system-design-primer", "kind": "doc"},
	{"title": "Glassdoor Interview Questions", "url": "https://www.glassdoor.com/Interview/index.htm", "kind": "article"},
	{"title": "STAR Method Guide", "url": "https://www.themuse.com/advice/star-interview-method", "kind": "article"},
}

// FallbackRoutine builds the canonical weekly plan for a profile. Active
// days get one or two blocks that sum exactly to the daily budget; inactive
// days are present and empty.
func FallbackRoutine(profile domain.Profile, weekOf string) map[string]any {
	timeBlocks := map[string]any{}
	dailyTasks := map[string]any{}
	for _, day := range domain.WeekDays {
		if !profile.IsAvailable(day) {
			timeBlocks[day] = []any{}
			dailyTasks[day] = []any{}
			continue
		}
		timeBlocks[day] = fallbackBlocksFor(profile.TimeBudgetHoursPerDay)
		dailyTasks[day] = []any{
			fmt.Sprintf("Work one focused practice session toward %s", profile.TargetRole),
			"Write a short summary of what you learned",
			"Log one open question to revisit tomorrow",
		}
	}

	resources := make([]any, 0, len(fallbackPlanResources))
	for _, r := range fallbackPlanResources {
		resources = append(resources, copyResource(r))
	}

	return map[string]any{
		"weekOf":     weekOf,
		"timeBlocks": timeBlocks,
		"dailyTasks": dailyTasks,
		"milestones": []any{
			fmt.Sprintf("Complete a focused study session on every available day toward %s", profile.TargetRole),
			"Finish at least five practice problems at your current level",
			"Summarize the week's progress in your own notes",
			"Identify the single weakest topic to target next week",
		},
		"resources": resources,
		"version":   1,
	}
}

// fallbackBlocksFor splits the daily budget into a core block and a review
// block on quarter-hour boundaries so the sum is exact.
func fallbackBlocksFor(budget float64) []any {
	if budget < 1.5 {
		return []any{
			map[string]any{"durationHours": budget, "label": "Focused study and practice"},
		}
	}
	core := math.Round(budget*0.6*4) / 4
	review := budget - core
	return []any{
		map[string]any{"durationHours": core, "label": "Core practice problems"},
		map[string]any{"durationHours": review, "label": "Review and notes"},
	}
}

// FallbackPrep builds the canonical interview prep pack for a profile.
func FallbackPrep(profile domain.Profile) map[string]any {
	role := profile.TargetRole
	outline := []any{
		map[string]any{"title": "Role and company research", "items": []any{
			fmt.Sprintf("List the core responsibilities of a %s", role),
			"Collect five recent projects or products from target companies",
			"Map your experience to each responsibility",
		}},
		map[string]any{"title": "Core technical review", "items": []any{
			"Review the fundamentals the role is screened on",
			"Redo two past problems you found hard",
			"Write down patterns you keep missing",
		}},
		map[string]any{"title": "Behavioral stories", "items": []any{
			"Draft six STAR stories covering conflict, failure, and leadership",
			"Rehearse each story out loud once",
		}},
		map[string]any{"title": "Mock interviews", "items": []any{
			"Schedule two timed mock sessions this week",
			"Review recordings or notes after each session",
		}},
	}

	drills := []any{}
	focuses := []string{
		"Warm-up problems and fundamentals",
		"Medium-difficulty core problems",
		"Weak-topic deep dive",
		"Timed full problem set",
		"Review and behavioral rehearsal",
	}
	for i, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri"} {
		drills = append(drills, map[string]any{
			"day":   day,
			"focus": focuses[i],
			"drills": []any{
				"One timed practice block",
				"Error-log review of yesterday's mistakes",
			},
		})
	}

	resources := make([]any, 0, len(fallbackPrepResources))
	for _, r := range fallbackPrepResources {
		resources = append(resources, copyResource(r))
	}

	return map[string]any{
		"prepOutline":     outline,
		"weeklyDrillPlan": drills,
		"starterQuestions": []any{
			"Tell me about yourself and why this role.",
			"Walk me through a project you are proud of.",
			fmt.Sprintf("What makes you a strong candidate for a %s position?", role),
			"Describe a time you disagreed with a teammate.",
			"What is your biggest technical weakness and how are you addressing it?",
		},
		"resources": resources,
	}
}

// FallbackReroll returns the unmodified current section, making a failed
// reroll a safe no-op rather than a degraded replacement.
func FallbackReroll(section string, currentSection any) map[string]any {
	return map[string]any{section: currentSection}
}

func copyResource(r map[string]any) map[string]any {
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
