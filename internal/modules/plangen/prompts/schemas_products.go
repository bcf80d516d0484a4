package prompts

import "github.com/yungbote/prepplan-backend/internal/domain"

func timeBlockSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"durationHours": BoundedNumberSchema(0.25, 24),
		"label":         StringSchema(),
	}, []string{"durationHours", "label"})
}

// dayMapSchema builds a map<day, items> with every weekday present.
// Inactive days must still appear, as empty arrays.
func dayMapSchema(items map[string]any) map[string]any {
	props := map[string]any{}
	req := make([]string, 0, len(domain.WeekDays))
	for _, d := range domain.WeekDays {
		props[d] = map[string]any{"type": "array", "items": items}
		req = append(req, d)
	}
	return ObjectSchema(props, req)
}

func resourceSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"title": StringSchema(),
		"url":   StringSchema(),
		"kind":  EnumSchema("article", "video", "course", "book", "practice", "doc"),
	}, []string{"title", "url", "kind"})
}

func TimeBlocksSectionSchema() map[string]any {
	return dayMapSchema(timeBlockSchema())
}

func ResourcesSectionSchema() map[string]any {
	return BoundedArraySchema(resourceSchema(), 4, 8)
}

func DailyTasksSectionSchema() map[string]any {
	return dayMapSchema(map[string]any{"type": "string"})
}

// PlanSchema is the full weekly plan contract. dailyTasks is optional for
// inbound currentPlan payloads, so it is not in required.
func PlanSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"weekOf":     StringSchema(),
		"timeBlocks": TimeBlocksSectionSchema(),
		"dailyTasks": DailyTasksSectionSchema(),
		"milestones": BoundedArraySchema(map[string]any{"type": "string"}, 3, 6),
		"resources":  ResourcesSectionSchema(),
		"version":    map[string]any{"type": "integer", "minimum": 1},
	}, []string{"weekOf", "timeBlocks", "milestones", "resources", "version"})
}

func prepSectionSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"title": StringSchema(),
		"items": BoundedArraySchema(map[string]any{"type": "string"}, 2, 8),
	}, []string{"title", "items"})
}

func drillDaySchema() map[string]any {
	return ObjectSchema(map[string]any{
		"day":    EnumSchema(domain.WeekDays...),
		"focus":  StringSchema(),
		"drills": BoundedArraySchema(map[string]any{"type": "string"}, 1, 6),
	}, []string{"day", "focus", "drills"})
}

func PrepPackSchema() map[string]any {
	return ObjectSchema(map[string]any{
		"prepOutline":      BoundedArraySchema(prepSectionSchema(), 4, 6),
		"weeklyDrillPlan":  BoundedArraySchema(drillDaySchema(), 5, 5),
		"starterQuestions": BoundedArraySchema(map[string]any{"type": "string"}, 5, 7),
		"resources":        BoundedArraySchema(resourceSchema(), 5, 0),
	}, []string{"prepOutline", "weeklyDrillPlan", "starterQuestions", "resources"})
}

// RerollSchema narrows the output contract to exactly one section key.
func RerollSchema(section string) map[string]any {
	var inner map[string]any
	switch section {
	case SectionTimeBlocks:
		inner = TimeBlocksSectionSchema()
	case SectionResources:
		inner = ResourcesSectionSchema()
	case SectionDailyTasks:
		inner = DailyTasksSectionSchema()
	default:
		inner = map[string]any{}
	}
	return ObjectSchema(map[string]any{section: inner}, []string{section})
}
