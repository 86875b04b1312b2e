package stark

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/field"
)

// ConstraintEvaluator is the abstracted quotient-polynomial machinery
// (spec's "ConstraintEvaluator over per-row AIR constraints"): folding
// a chip's Eval/Boundary outputs, across every row and under a random
// linear combination, into the single scalar the verifier checks
// against the opened quotient. A real implementation interpolates the
// constraint polynomial over the full trace domain and divides by the
// vanishing polynomial; this one sums what Eval/Boundary already
// produce per opened row pair, which is the part every chip supplies.
type ConstraintEvaluator struct {
	gamma field.EF
}

func NewConstraintEvaluator(gamma field.EF) *ConstraintEvaluator {
	return &ConstraintEvaluator{gamma: gamma}
}

// FoldRow folds one row's constraint values into a single
// extension-field accumulator under powers of gamma. The LogUp
// identities are not among them: the lookup argument is checked through
// the cumulative sums.
func (ce *ConstraintEvaluator) FoldRow(constraints []field.F) field.EF {
	acc := field.EFZero
	power := field.EFOne
	for _, c := range constraints {
		term := power.MulBase(c)
		acc = acc.Add(term)
		power = power.Mul(ce.gamma)
	}
	return acc
}

// EvaluateChip folds a chip's interior transition constraints over
// every row and its boundary constraints at the first/last row.
func EvaluateChip(chip common.Chip, trace common.Matrix, ce *ConstraintEvaluator) field.EF {
	acc := field.EFZero
	for i := 0; i < trace.Height; i++ {
		local := trace.Row(i)
		var next []field.F
		if i+1 < trace.Height {
			next = trace.Row(i + 1)
		}
		acc = acc.Add(ce.FoldRow(chip.Eval(local, next)))
	}
	var first, last []field.F
	if trace.Height > 0 {
		first = trace.Row(0)
		last = trace.Row(trace.Height - 1)
	}
	acc = acc.Add(ce.FoldRow(chip.Boundary(first, last)))
	return acc
}
