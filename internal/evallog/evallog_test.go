package evallog

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/prepplan-backend/internal/domain"
)

func TestSink_AppendsOneLinePerEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.jsonl")
	sink, err := NewSink(path, nil)
	if err != nil {
		t.Fatalf("sink init: %v", err)
	}
	defer sink.Close()

	sink.Append(domain.InteractionLogEntry{TraceID: "t1", Operation: "generate_routine", RiskLevel: domain.RiskSafe})
	sink.Append(domain.InteractionLogEntry{TraceID: "t2", Operation: "generate_prep", UsedFallback: true, FallbackCause: "timeout"})

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var entries []domain.InteractionLogEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e domain.InteractionLogEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			t.Fatalf("bad line %q: %v", sc.Text(), err)
		}
		entries = append(entries, e)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].TraceID != "t1" || entries[1].FallbackCause != "timeout" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestSink_EntryCarriesNoRawText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eval.jsonl")
	sink, err := NewSink(path, nil)
	if err != nil {
		t.Fatalf("sink init: %v", err)
	}
	defer sink.Close()

	sink.Append(domain.InteractionLogEntry{TraceID: "t1", PromptChars: 1234, ResponseChars: 5678})

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	for k := range decoded {
		if strings.Contains(k, "prompt") && !strings.Contains(k, "chars") && !strings.Contains(k, "tokens") {
			t.Fatalf("unexpected raw-text-looking field %q", k)
		}
	}
}

func TestSink_NilAndUnconfiguredAreSafe(t *testing.T) {
	var nilSink *Sink
	nilSink.Append(domain.InteractionLogEntry{TraceID: "t1"})
	nilSink.Close()

	empty, err := NewSink("", nil)
	if err != nil {
		t.Fatalf("empty-path sink init: %v", err)
	}
	empty.Append(domain.InteractionLogEntry{TraceID: "t2"})
	empty.Close()
}

func TestTranscriptStore_SaveAndReadBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transcripts.db")
	store, err := NewTranscriptStore(path, nil)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}

	store.Save(context.Background(), Transcript{
		TraceID:      "trace-1",
		Operation:    "generate_routine",
		Model:        "test-model",
		SystemPrompt: "system",
		UserPrompt:   "user",
		RawResponse:  `{"weekOf":"2026-08-31"}`,
	})

	var got Transcript
	if err := store.db.First(&got, "trace_id = ?", "trace-1").Error; err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.RawResponse != `{"weekOf":"2026-08-31"}` {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.CreatedAt.IsZero() || got.CreatedAt.After(time.Now().Add(time.Minute)) {
		t.Fatalf("created_at not set: %v", got.CreatedAt)
	}
}

func TestTranscriptStore_DisabledIsSafe(t *testing.T) {
	store, err := NewTranscriptStore("", nil)
	if err != nil {
		t.Fatalf("store init: %v", err)
	}
	store.Save(context.Background(), Transcript{TraceID: "trace-1"})

	var nilStore *TranscriptStore
	nilStore.Save(context.Background(), Transcript{TraceID: "trace-2"})
}
