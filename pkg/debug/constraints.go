// Package debug provides the BF_DEBUG-only constraint walk (spec §3,
// grounded on crates/core/machine/src/utils/prove.rs's debug
// self-check): it re-evaluates every chip's AIR over its own generated
// trace and logs any row that fails to vanish. It never gates a proof
// — a failure here is a prover bug, surfaced for a human, not a
// verification error.
package debug

import (
	"log/slog"

	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/config"
	"github.com/oisee/bf-zkvm/pkg/field"
)

// CheckChip walks chip's Eval/Boundary constraints over trace and logs
// every row where a constraint fails to vanish. It is a no-op unless
// config.Debug() is set, and config.SkipConstraints() disables it
// outright even when BF_DEBUG is set.
func CheckChip(logger *slog.Logger, chip common.Chip, trace common.Matrix) {
	if !config.Debug() || config.SkipConstraints() {
		return
	}
	for i := 0; i < trace.Height; i++ {
		local := trace.Row(i)
		next := rowOrNil(trace, i+1)
		for _, c := range chip.Eval(local, next) {
			if !c.IsZero() {
				logger.Warn("constraint violated", "chip", chip.Name(), "row", i)
				break
			}
		}
	}
	first := rowOrNil(trace, 0)
	last := rowOrNil(trace, trace.Height-1)
	for _, c := range chip.Boundary(first, last) {
		if !c.IsZero() {
			logger.Warn("boundary constraint violated", "chip", chip.Name())
			break
		}
	}
}

func rowOrNil(trace common.Matrix, i int) []field.F {
	if i < 0 || i >= trace.Height {
		return nil
	}
	return trace.Row(i)
}
