package common

import (
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

// Chip is the uniform shape every table in the machine implements: a
// fixed-width row layout, a trace builder over the execution record, the
// lookup-bus interactions each row contributes, and the local AIR
// constraints a row (and its successor, for transition constraints) must
// satisfy. The machine's ConstraintEvaluator (pkg/stark) folds Eval's
// output into the external quotient-polynomial machinery; Chip itself
// only ever does per-row algebra.
type Chip interface {
	Name() string
	Width() int
	MaxConstraintDegree() int

	// GenerateTrace builds this chip's padded main trace from the
	// execution record, appending any range-check requests it depends
	// on into record.ByteLookups.
	GenerateTrace(record *events.ExecutionRecord) (Matrix, error)

	// Interactions returns, for each row of trace, the lookup-bus sends
	// and receives that row contributes. Padding rows must return no
	// interactions (or Mult-zero ones), so they satisfy every lookup
	// trivially.
	Interactions(trace Matrix) [][]lookup.Interaction

	// Eval evaluates every local/transition constraint for one row pair
	// (local, next). A valid trace makes every returned value zero.
	// next is nil when local is the last row (no transition constraint
	// applies).
	Eval(local, next []field.F) []field.F

	// Boundary evaluates constraints that only apply at the first or
	// last row (e.g. clk == 0 on the first row). Either argument may be
	// nil if this chip has no such constraint at that boundary.
	Boundary(first, last []field.F) []field.F
}

// PadRows grows trace rows up to height, leaving appended rows zeroed
// (is_real = 0 by convention: every chip places its boolean "is real"
// flag so the zero value reads as padding).
func PadRows(rows [][]field.F, width, height int) Matrix {
	m := NewMatrix(width, height)
	for i, row := range rows {
		copy(m.Row(i), row)
	}
	return m
}
