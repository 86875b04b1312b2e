// Package program implements the Program chip (spec §4.3): one row per
// instruction address, with a multiplicity column counting how many
// times the CPU chip actually executed it. Its rows in pc order are
// deterministic from the program alone; Mult is the only column that
// depends on the run.
package program

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

const (
	colPc = iota
	colOpcode
	colOpA
	colMult
	numCols
)

const Width = numCols

type Row struct {
	Pc, Opcode, OpA, Mult field.F
}

func (r Row) ToSlice() []field.F {
	return []field.F{r.Pc, r.Opcode, r.OpA, r.Mult}
}

func FromSlice(s []field.F) Row {
	return Row{Pc: s[colPc], Opcode: s[colOpcode], OpA: s[colOpA], Mult: s[colMult]}
}

type Chip struct{}

func (Chip) Name() string             { return "Program" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 2 }

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	n := record.Program.Len()
	counts := make([]uint64, n)
	for _, ev := range record.CpuEvents {
		if int(ev.Pc) < n {
			counts[ev.Pc]++
		}
	}
	rows := make([][]field.F, n)
	for pc := 0; pc < n; pc++ {
		instr, _ := record.Program.At(uint32(pc))
		rows[pc] = Row{
			Pc:     field.FromU64(uint64(pc)),
			Opcode: field.FromU64(uint64(instr.Opcode)),
			OpA:    field.FromU64(uint64(instr.OpA)),
			Mult:   field.FromU64(counts[pc]),
		}.ToSlice()
	}
	return common.PadRows(rows, Width, common.NextPow2(n)), nil
}

func (Chip) Interactions(trace common.Matrix) [][]lookup.Interaction {
	out := make([][]lookup.Interaction, trace.Height)
	for i := 0; i < trace.Height; i++ {
		r := FromSlice(trace.Row(i))
		if r.Mult == field.Zero {
			continue
		}
		out[i] = []lookup.Interaction{{
			Bus:    lookup.ProgramBus,
			Values: []field.F{r.Pc, r.Opcode, r.OpA},
			Mult:   r.Mult,
			IsSend: false,
		}}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F { return nil }

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
