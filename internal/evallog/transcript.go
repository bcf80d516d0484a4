package evallog

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

// Transcript is the segregated full-text record, keyed by trace id, kept
// apart from the metrics sink for offline analysis. Append-only: rows are
// created once and never updated.
type Transcript struct {
	TraceID      string    `gorm:"primaryKey;column:trace_id"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	Operation    string    `gorm:"column:operation"`
	Model        string    `gorm:"column:model"`
	SystemPrompt string    `gorm:"column:system_prompt;type:text"`
	UserPrompt   string    `gorm:"column:user_prompt;type:text"`
	RawResponse  string    `gorm:"column:raw_response;type:text"`
	Meta         datatypes.JSON
}

func (Transcript) TableName() string { return "interaction_transcript" }

type TranscriptStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewTranscriptStore opens (or creates) the sqlite transcript database.
// Empty path disables the store; Save becomes a no-op.
func NewTranscriptStore(path string, log *logger.Logger) (*TranscriptStore, error) {
	if strings.TrimSpace(path) == "" {
		return &TranscriptStore{log: log}, nil
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Transcript{}); err != nil {
		return nil, err
	}
	return &TranscriptStore{db: db, log: log}, nil
}

// Save appends one transcript row. Failures warn and are swallowed; the
// user-facing request never depends on this store.
func (s *TranscriptStore) Save(ctx context.Context, t Transcript) {
	if s == nil || s.db == nil {
		return
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&t).Error; err != nil {
		if s.log != nil {
			s.log.Warn("transcript save failed", "trace_id", t.TraceID, "error", err)
		}
	}
}
