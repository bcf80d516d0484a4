package domain

import "time"

// Weekday tokens accepted in Profile.AvailableDays and used as keys in
// Plan.TimeBlocks / Plan.DailyTasks. Order matters for deterministic output.
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func IsWeekDay(s string) bool {
	for _, d := range WeekDays {
		if d == s {
			return true
		}
	}
	return false
}

// Profile is the validated request input. It lives for one request and is
// never persisted by this service.
type Profile struct {
	Name                  string   `json:"name"`
	Stage                 string   `json:"stage"`
	TargetRole            string   `json:"targetRole"`
	TimeBudgetHoursPerDay float64  `json:"timeBudgetHoursPerDay"`
	AvailableDays         []string `json:"availableDays"`
	Constraints           []string `json:"constraints,omitempty"`
}

func (p Profile) IsAvailable(day string) bool {
	for _, d := range p.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// Preferences are optional generation hints passed through to the prompt.
type Preferences struct {
	FocusAreas []string `json:"focusAreas,omitempty"`
	Intensity  string   `json:"intensity,omitempty"`
}

type TimeBlock struct {
	DurationHours float64 `json:"durationHours"`
	Label         string  `json:"label"`
}

type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind,omitempty"`
}

// Plan is the weekly schedule artifact. Every weekday appears as a key in
// TimeBlocks; inactive days map to empty lists.
type Plan struct {
	WeekOf     string                 `json:"weekOf"`
	TimeBlocks map[string][]TimeBlock `json:"timeBlocks"`
	DailyTasks map[string][]string    `json:"dailyTasks,omitempty"`
	Milestones []string               `json:"milestones"`
	Resources  []Resource             `json:"resources"`
	Version    int                    `json:"version"`
}

type PrepSection struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

type DrillDay struct {
	Day    string   `json:"day"`
	Focus  string   `json:"focus"`
	Drills []string `json:"drills"`
}

// PrepPack is the interview-preparation artifact.
type PrepPack struct {
	PrepOutline      []PrepSection `json:"prepOutline"`
	WeeklyDrillPlan  []DrillDay    `json:"weeklyDrillPlan"`
	StarterQuestions []string      `json:"starterQuestions"`
	Resources        []Resource    `json:"resources"`
}

// RiskLevel buckets for the safety scan.
const (
	RiskSafe   = "SAFE"
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// RiskAssessment is computed per response and kept only in the eval log.
type RiskAssessment struct {
	Level      string   `json:"level"`
	Score      int      `json:"score"`
	Reasons    []string `json:"reasons,omitempty"`
	Confidence float64  `json:"confidence"`
}

// InteractionLogEntry is the append-only metrics record written exactly once
// per request. It must never carry raw prompt or response text.
type InteractionLogEntry struct {
	TraceID       string    `json:"trace_id"`
	Timestamp     time.Time `json:"timestamp"`
	Operation     string    `json:"operation"`
	Model         string    `json:"model"`
	RiskLevel     string    `json:"risk_level"`
	RiskScore     int       `json:"risk_score"`
	Confidence    float64   `json:"confidence"`
	PromptChars   int       `json:"prompt_chars"`
	ResponseChars int       `json:"response_chars"`
	PromptTokens  int       `json:"prompt_tokens,omitempty"`
	OutputTokens  int       `json:"output_tokens,omitempty"`
	LatencyMS     int64     `json:"latency_ms"`
	HasHighRisk   bool      `json:"has_high_risk"`
	UsedFallback  bool      `json:"used_fallback"`
	FallbackCause string    `json:"fallback_cause,omitempty"`
}
