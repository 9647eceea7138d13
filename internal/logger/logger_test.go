package logger_test

import (
	"bytes"
	"testing"

	"github.com/sheetlang/sheetlang/internal/logger"
	"github.com/sheetlang/sheetlang/internal/token"
)

func TestConsoleLoggerWritesLevelPositionAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewConsole(&buf)
	l.Log(logger.Warn, "something odd", token.Position{Source: "script.bw", Line: 2, Column: 4})

	want := "[WARN] script.bw:2:4: something odd\n"
	if got := buf.String(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestCollectingLoggerBuffersEntriesInOrder(t *testing.T) {
	c := &logger.CollectingLogger{}
	c.Log(logger.Info, "first", token.Position{Line: 1, Column: 1})
	c.Log(logger.Error, "second", token.Position{Line: 2, Column: 1})

	if len(c.Entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(c.Entries))
	}
	if c.Entries[0].Message != "first" || c.Entries[1].Message != "second" {
		t.Fatalf("want entries in log order, got %#v", c.Entries)
	}
}

func TestCollectingLoggerHasLevel(t *testing.T) {
	c := &logger.CollectingLogger{}
	if c.HasLevel(logger.Error) {
		t.Fatalf("want a fresh logger to report no Error entries")
	}
	c.Log(logger.Warn, "just a warning", token.Position{})
	if c.HasLevel(logger.Error) {
		t.Fatalf("want HasLevel(Error) to ignore Warn entries")
	}
	if !c.HasLevel(logger.Warn) {
		t.Fatalf("want HasLevel(Warn) to find the logged entry")
	}
}

func TestCollectingLoggerStringsRendersEachEntry(t *testing.T) {
	c := &logger.CollectingLogger{}
	c.Log(logger.Fatal, "boom", token.Position{Line: 1, Column: 1})

	want := "[FATAL] 1:1: boom"
	got := c.Strings()
	if len(got) != 1 || got[0] != want {
		t.Fatalf("want [%q], got %#v", want, got)
	}
}

func TestLevelStringRendersKnownLevels(t *testing.T) {
	cases := map[logger.Level]string{
		logger.Info:  "INFO",
		logger.Warn:  "WARN",
		logger.Error: "ERROR",
		logger.Fatal: "FATAL",
	}
	for level, want := range cases {
		if got := level.String(); got != want {
			t.Fatalf("level %d: want %q, got %q", level, want, got)
		}
	}
}
