package evallog

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/yungbote/prepplan-backend/internal/domain"
	"github.com/yungbote/prepplan-backend/internal/platform/logger"
)

// Sink appends one InteractionLogEntry per request as JSONL. Entries carry
// lengths and scores only, never raw prompt or response text; transcripts
// live in the segregated store.
type Sink struct {
	f   *os.File
	log *logger.Logger
}

func NewSink(path string, log *logger.Logger) (*Sink, error) {
	if strings.TrimSpace(path) == "" {
		return &Sink{log: log}, nil
	}
	// O_APPEND with a single Write per entry keeps concurrent appends safe
	// without read-modify-write.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &Sink{f: f, log: log}, nil
}

// Append writes the entry. Logging failures are surfaced as warnings and
// must never fail the user-facing request.
func (s *Sink) Append(entry domain.InteractionLogEntry) {
	if s == nil {
		return
	}
	b, err := json.Marshal(entry)
	if err != nil {
		if s.log != nil {
			s.log.Warn("eval log marshal failed", "trace_id", entry.TraceID, "error", err)
		}
		return
	}
	if s.f == nil {
		// No sink configured: keep the record observable in the app log.
		if s.log != nil {
			s.log.Info("interaction", "entry", string(b))
		}
		return
	}
	if _, err := s.f.Write(append(b, '\n')); err != nil {
		if s.log != nil {
			s.log.Warn("eval log append failed", "trace_id", entry.TraceID, "error", err)
		}
	}
}

func (s *Sink) Close() {
	if s != nil && s.f != nil {
		_ = s.f.Close()
	}
}
