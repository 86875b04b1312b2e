// Package debug adapts the teacher's interactive debugger into a
// post-hoc trace walker over an ExecutionRecord: breakpoints match a
// recorded cycle's pc, watchpoints match a recorded cycle's memory
// pointer, and Step/Continue replay the CPU event history one cycle
// at a time so a REPL can inspect VM state without re-running the
// executor.
package debug

import (
	"io"
	"os"

	"github.com/oisee/bf-zkvm/pkg/events"
)

// WatchType mirrors the teacher's debugger's access kinds. It is stored
// with each watchpoint, but Continue does not consult it: any cycle
// whose mp equals a watched address stops, whatever the WatchType.
type WatchType int

const (
	WatchRead WatchType = iota
	WatchWrite
	WatchReadWrite
)

// HistoryEntry records one replayed cycle for the debugger's backward
// scrollback.
type HistoryEntry struct {
	Cycle int
	Event events.CpuEvent
}

// Config configures a Debugger, mirroring the teacher's Config shape.
type Config struct {
	MaxHistory int
	Output     io.Writer
}

// Debugger steps through a completed ExecutionRecord's CPU events,
// stopping at breakpoints (by pc) and watchpoints (by memory pointer).
type Debugger struct {
	record      *events.ExecutionRecord
	cursor      int
	breakpoints map[uint32]bool
	watchpoints map[uint32]WatchType
	history     []HistoryEntry
	maxHistory  int
	output      io.Writer
}

func New(record *events.ExecutionRecord, cfg *Config) *Debugger {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.MaxHistory == 0 {
		cfg.MaxHistory = 100
	}
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	return &Debugger{
		record:      record,
		breakpoints: make(map[uint32]bool),
		watchpoints: make(map[uint32]WatchType),
		maxHistory:  cfg.MaxHistory,
		output:      cfg.Output,
	}
}

func (d *Debugger) SetBreakpoint(pc uint32)   { d.breakpoints[pc] = true }
func (d *Debugger) ClearBreakpoint(pc uint32) { delete(d.breakpoints, pc) }
func (d *Debugger) SetWatchpoint(addr uint32, t WatchType) {
	d.watchpoints[addr] = t
}

// Step replays one cycle and returns it, or ok=false at end of trace.
func (d *Debugger) Step() (events.CpuEvent, bool) {
	if d.cursor >= len(d.record.CpuEvents) {
		return events.CpuEvent{}, false
	}
	ev := d.record.CpuEvents[d.cursor]
	d.cursor++
	d.pushHistory(ev)
	return ev, true
}

// Continue replays cycles until a breakpoint or watchpoint fires, or
// the trace ends.
func (d *Debugger) Continue() (events.CpuEvent, bool, bool) {
	for {
		ev, ok := d.Step()
		if !ok {
			return events.CpuEvent{}, false, false
		}
		if d.breakpoints[ev.Pc] {
			return ev, true, true
		}
		if _, watched := d.watchpoints[ev.Mp]; watched {
			return ev, true, true
		}
	}
}

func (d *Debugger) pushHistory(ev events.CpuEvent) {
	d.history = append(d.history, HistoryEntry{Cycle: d.cursor - 1, Event: ev})
	if len(d.history) > d.maxHistory {
		d.history = d.history[len(d.history)-d.maxHistory:]
	}
}

func (d *Debugger) History() []HistoryEntry { return d.history }
func (d *Debugger) AtEnd() bool             { return d.cursor >= len(d.record.CpuEvents) }
