// Package ioc implements the chip proving `,` / `.` cycles (spec §4.6):
// it is purely a lookup witness, the transferred byte's provenance
// (stdin position / stdout position) is tracked by the executor and
// exposed through public values rather than further constrained here.
package ioc

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/isa"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

const (
	colPc = iota
	colMp
	colMv
	colIsInput
	colIsReal
	numCols
)

const Width = numCols

var (
	inputOpcode   = field.FromU64(uint64(isa.Input))
	outputOpcode  = field.FromU64(uint64(isa.Output))
	u8RangeOpcode = field.FromU64(uint64(events.U8Range))
)

type Row struct {
	Pc, Mp, Mv, IsInput, IsReal field.F
}

func (r Row) ToSlice() []field.F {
	return []field.F{r.Pc, r.Mp, r.Mv, r.IsInput, r.IsReal}
}

func FromSlice(s []field.F) Row {
	return Row{Pc: s[colPc], Mp: s[colMp], Mv: s[colMv], IsInput: s[colIsInput], IsReal: s[colIsReal]}
}

type Chip struct{}

func (Chip) Name() string             { return "IO" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 2 }

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	rows := make([][]field.F, len(record.IoEvents))
	for i, ev := range record.IoEvents {
		r := Row{
			Pc:      field.FromU64(uint64(ev.Pc)),
			Mp:      field.FromU64(uint64(ev.Mp)),
			Mv:      field.FromU64(uint64(ev.Mv)),
			IsInput: boolF(ev.IsInput),
			IsReal:  field.One,
		}
		rows[i] = r.ToSlice()
		record.AddU8Range(ev.Mv)
	}
	return common.PadRows(rows, Width, common.NextPow2(len(rows))), nil
}

func boolF(b bool) field.F {
	if b {
		return field.One
	}
	return field.Zero
}

func (Chip) Interactions(trace common.Matrix) [][]lookup.Interaction {
	out := make([][]lookup.Interaction, trace.Height)
	for i := 0; i < trace.Height; i++ {
		r := FromSlice(trace.Row(i))
		if r.IsReal == field.Zero {
			continue
		}
		opcode := outputOpcode
		if r.IsInput == field.One {
			opcode = inputOpcode
		}
		out[i] = []lookup.Interaction{
			{
				Bus:    lookup.IOBus,
				Values: []field.F{r.Pc, opcode, r.Mp, r.Mv},
				Mult:   r.IsReal,
				IsSend: false,
			},
			{Bus: lookup.ByteBus, Values: []field.F{u8RangeOpcode, r.Mv}, Mult: r.IsReal, IsSend: true},
		}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F {
	r := FromSlice(local)
	return []field.F{
		r.IsInput.Mul(field.One.Sub(r.IsInput)),
		r.IsReal.Mul(field.One.Sub(r.IsReal)),
	}
}

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
