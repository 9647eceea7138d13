// Package debugger provides a reference engine.DebuggerHook: Recorder,
// which records every location it is called at instead of driving an
// interactive session. It is the hook the CLI's debug subcommand and
// run --trace attach to observe step-by-step evaluation order and
// breakpoint hits (spec.md §4.8).
package debugger

import (
	"fmt"

	"github.com/sheetlang/sheetlang/internal/engine"
)

// Event is one recorded callback invocation.
type Event struct {
	Kind string // "enter", "step", "breakpoint", "error"
	Loc  engine.Location
	Err  *engine.EvaluationError // non-nil only for Kind == "error"
}

func (e Event) String() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Loc.Pos, e.Err)
	}
	return fmt.Sprintf("%s at %s", e.Kind, e.Loc.Pos)
}

// Breakpoint is a statement position the Recorder suspends evaluation at
// (spec.md §4.8 "set out of band; this package only calls the hook, it
// does not track breakpoint positions itself" — that bookkeeping is what
// Recorder supplies).
type Breakpoint struct {
	Source string
	Line   int
}

// Recorder is a reference DebuggerHook: it logs every callback as an
// Event. When OnStep reaches a location matching a registered Breakpoint,
// it also records a breakpoint event and returns OnBreakpoint's decision;
// it never returns ActionStep by itself. It has no terminal UI of its own.
type Recorder struct {
	Events      []Event
	Breakpoints []Breakpoint

	// OnPause, if set, is called synchronously from OnEnter, OnBreakpoint
	// and OnError; it returns the action to take. A nil OnPause means
	// "always continue" —
	// Recorder then does nothing but log, which is what the non-interactive
	// test harnesses want.
	OnPause func(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction
}

// NewRecorder creates an empty Recorder with no breakpoints.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Break registers a breakpoint at source:line. Duplicate registrations are
// harmless no-ops.
func (r *Recorder) Break(source string, line int) {
	bp := Breakpoint{Source: source, Line: line}
	for _, existing := range r.Breakpoints {
		if existing == bp {
			return
		}
	}
	r.Breakpoints = append(r.Breakpoints, bp)
}

func (r *Recorder) hits(loc engine.Location) bool {
	for _, bp := range r.Breakpoints {
		if bp.Source == loc.Pos.Source && bp.Line == loc.Pos.Line {
			return true
		}
	}
	return false
}

func (r *Recorder) decide(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction {
	if r.OnPause == nil {
		return engine.ActionContinue
	}
	return r.OnPause(ctx, loc)
}

func (r *Recorder) OnEnter(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction {
	r.Events = append(r.Events, Event{Kind: "enter", Loc: loc})
	return r.decide(ctx, loc)
}

func (r *Recorder) OnStep(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction {
	r.Events = append(r.Events, Event{Kind: "step", Loc: loc})
	if r.hits(loc) {
		return r.OnBreakpoint(ctx, loc)
	}
	return engine.ActionContinue
}

func (r *Recorder) OnBreakpoint(ctx *engine.CallingContext, loc engine.Location) engine.DebugAction {
	r.Events = append(r.Events, Event{Kind: "breakpoint", Loc: loc})
	return r.decide(ctx, loc)
}

func (r *Recorder) OnError(ctx *engine.CallingContext, loc engine.Location, err *engine.EvaluationError) engine.DebugAction {
	r.Events = append(r.Events, Event{Kind: "error", Loc: loc, Err: err})
	return r.decide(ctx, loc)
}

// Reset clears recorded events, keeping breakpoints intact; useful between
// test runs that reuse a single Recorder.
func (r *Recorder) Reset() {
	r.Events = nil
}
