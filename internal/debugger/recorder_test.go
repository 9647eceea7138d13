package debugger

import (
	"testing"

	"github.com/sheetlang/sheetlang/internal/engine"
	"github.com/sheetlang/sheetlang/internal/token"
)

func TestRecorderLogsSteps(t *testing.T) {
	r := NewRecorder()
	ctx := &engine.CallingContext{}
	loc := engine.Location{Pos: token.Position{Source: "x", Line: 1, Column: 1}}

	action := r.OnStep(ctx, loc)
	if action != engine.ActionContinue {
		t.Fatalf("got %v, want ActionContinue with no breakpoints set", action)
	}
	if len(r.Events) != 1 || r.Events[0].Kind != "step" {
		t.Fatalf("got %v, want a single step event", r.Events)
	}
}

func TestRecorderBreakpointTriggersBreakpointEvent(t *testing.T) {
	r := NewRecorder()
	r.Break("sheet1", 3)
	ctx := &engine.CallingContext{}
	loc := engine.Location{Pos: token.Position{Source: "sheet1", Line: 3, Column: 1}}

	r.OnStep(ctx, loc)

	if len(r.Events) != 2 {
		t.Fatalf("got %d events, want a step followed by a breakpoint hit", len(r.Events))
	}
	if r.Events[1].Kind != "breakpoint" {
		t.Fatalf("got %v, want the second event to be a breakpoint hit", r.Events[1])
	}
}

func TestRecorderOnPauseOverridesDecision(t *testing.T) {
	r := NewRecorder()
	r.OnPause = func(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction {
		return engine.ActionAbort
	}
	ctx := &engine.CallingContext{}
	loc := engine.Location{Pos: token.Position{Source: "x", Line: 1, Column: 1}}

	if action := r.OnBreakpoint(ctx, loc); action != engine.ActionAbort {
		t.Fatalf("got %v, want ActionAbort from OnPause override", action)
	}
}

func TestRecorderResetClearsEventsKeepsBreakpoints(t *testing.T) {
	r := NewRecorder()
	r.Break("sheet1", 1)
	ctx := &engine.CallingContext{}
	r.OnStep(ctx, engine.Location{Pos: token.Position{Source: "sheet1", Line: 1}})
	if len(r.Events) == 0 {
		t.Fatalf("expected events to be recorded before Reset")
	}

	r.Reset()
	if len(r.Events) != 0 {
		t.Fatalf("Reset left %d events", len(r.Events))
	}
	if len(r.Breakpoints) != 1 {
		t.Fatalf("Reset should not clear breakpoints, got %d", len(r.Breakpoints))
	}
}
