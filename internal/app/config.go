package app

import (
	"strings"
	"time"

	"github.com/yungbote/prepplan-backend/internal/platform/logger"
	"github.com/yungbote/prepplan-backend/internal/utils"
)

// Config is loaded once at startup and injected by parameter; no component
// reads environment variables after this point.
type Config struct {
	Port         string
	Environment  string
	AllowOrigins []string

	// Generation backend
	Model            string
	InferenceBaseURL string
	InferenceAPIKey  string
	RequestTimeout   time.Duration

	// Eval logging
	EvalLogPath      string
	TranscriptDBPath string

	// Safety gate tables (YAML); empty means compiled-in defaults
	SafetyConfigPath string
	// Overrides the table's confidence floor when non-negative.
	MinConfidence float64
}

func LoadConfig(log *logger.Logger) Config {
	timeoutMS := utils.GetEnvAsInt("PREPPLAN_TIMEOUT_MS", 15000, log)

	origins := []string{}
	for _, o := range strings.Split(utils.GetEnv("PREPPLAN_ALLOW_ORIGINS", "http://localhost:3000", log), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			origins = append(origins, o)
		}
	}

	return Config{
		Port:             utils.GetEnv("PREPPLAN_PORT", "8080", log),
		Environment:      utils.GetEnv("PREPPLAN_ENV", "development", log),
		AllowOrigins:     origins,
		Model:            utils.GetEnv("PREPPLAN_MODEL", "gpt-5.2", log),
		InferenceBaseURL: utils.GetEnv("PREPPLAN_INFERENCE_BASE_URL", "http://localhost:8090", log),
		InferenceAPIKey:  utils.GetEnv("PREPPLAN_INFERENCE_API_KEY", "", log),
		RequestTimeout:   time.Duration(timeoutMS) * time.Millisecond,
		EvalLogPath:      utils.GetEnv("PREPPLAN_EVAL_LOG_PATH", "eval_log.jsonl", log),
		TranscriptDBPath: utils.GetEnv("PREPPLAN_TRANSCRIPT_DB_PATH", "", log),
		SafetyConfigPath: utils.GetEnv("PREPPLAN_SAFETY_CONFIG_PATH", "", log),
		MinConfidence:    utils.GetEnvAsFloat("PREPPLAN_MIN_CONFIDENCE", -1, log),
	}
}
