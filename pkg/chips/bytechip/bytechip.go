// Package bytechip implements the Byte chip (spec §4.9): the
// range-check backbone every other chip leans on for clk limbs,
// pointer bounds, and ALU operands. Its trace is a preprocessed
// enumeration of the two range domains (U8Range over [0,256),
// U16Range over [0,65536)) with multiplicities supplied by the run.
package bytechip

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

const (
	colOpcode = iota
	colValue
	colMult
	numCols
)

const Width = numCols

var (
	u8RangeOpcode  = field.FromU64(uint64(events.U8Range))
	u16RangeOpcode = field.FromU64(uint64(events.U16Range))
)

type Row struct {
	Opcode, Value, Mult field.F
}

func (r Row) ToSlice() []field.F { return []field.F{r.Opcode, r.Value, r.Mult} }

func FromSlice(s []field.F) Row {
	return Row{Opcode: s[colOpcode], Value: s[colValue], Mult: s[colMult]}
}

type Chip struct{}

func (Chip) Name() string             { return "Byte" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 1 }

// GenerateTrace enumerates the full preprocessed domain so a forged
// out-of-range lookup has no row to match against; only the
// multiplicities (looked up from record.ByteLookups) vary per run.
func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	const u8Domain = 256
	const u16Domain = 65536
	n := u8Domain + u16Domain
	rows := make([][]field.F, n)

	for v := 0; v < u8Domain; v++ {
		mult := record.ByteLookups[events.ByteLookupEvent{Opcode: events.U8Range, ValueU8: uint8(v)}]
		rows[v] = Row{Opcode: u8RangeOpcode, Value: field.FromU64(uint64(v)), Mult: field.FromU64(mult)}.ToSlice()
	}
	for v := 0; v < u16Domain; v++ {
		mult := record.ByteLookups[events.ByteLookupEvent{Opcode: events.U16Range, ValueU16: uint16(v)}]
		rows[u8Domain+v] = Row{Opcode: u16RangeOpcode, Value: field.FromU64(uint64(v)), Mult: field.FromU64(mult)}.ToSlice()
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
			Bus:    lookup.ByteBus,
			Values: []field.F{r.Opcode, r.Value},
			Mult:   r.Mult,
			IsSend: false,
		}}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F {
	r := FromSlice(local)
	// opcode is drawn from {U8Range, U16Range}: (opcode)*(opcode-1) == 0.
	return []field.F{r.Opcode.Mul(field.One.Sub(r.Opcode))}
}

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
