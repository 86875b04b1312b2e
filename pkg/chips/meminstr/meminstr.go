// Package meminstr implements the chip proving `<` / `>` pointer moves
// (spec §4.7): next_mp = mp +/- 1, with mp range-checked so the pointer
// never silently wraps outside the addressable tape.
package meminstr

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/isa"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

const (
	colClk = iota
	colPc
	colMp
	colNextMp
	colIsForward
	colIsReal
	colMpLow
	colMpHigh
	colNextMpLow
	colNextMpHigh
	numCols
)

const Width = numCols

var (
	forwardOpcode  = field.FromU64(uint64(isa.MemStepForward))
	backwardOpcode = field.FromU64(uint64(isa.MemStepBackward))
	u16RangeOpcode = field.FromU64(uint64(events.U16Range))
)

type Row struct {
	Clk, Pc, Mp, NextMp, IsForward, IsReal field.F
	MpLow, MpHigh, NextMpLow, NextMpHigh   field.F
}

func (r Row) ToSlice() []field.F {
	return []field.F{r.Clk, r.Pc, r.Mp, r.NextMp, r.IsForward, r.IsReal, r.MpLow, r.MpHigh, r.NextMpLow, r.NextMpHigh}
}

func FromSlice(s []field.F) Row {
	return Row{
		Clk: s[colClk], Pc: s[colPc], Mp: s[colMp], NextMp: s[colNextMp], IsForward: s[colIsForward], IsReal: s[colIsReal],
		MpLow: s[colMpLow], MpHigh: s[colMpHigh], NextMpLow: s[colNextMpLow], NextMpHigh: s[colNextMpHigh],
	}
}

type Chip struct{}

func (Chip) Name() string             { return "MemInstr" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 2 }

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	rows := make([][]field.F, len(record.MemInstrEvents))
	for i, ev := range record.MemInstrEvents {
		mpWord := field.SplitWord(ev.Mp)
		nextMpWord := field.SplitWord(ev.NextMp)
		r := Row{
			Clk:        field.FromU64(uint64(ev.Clk)),
			Pc:         field.FromU64(uint64(ev.Pc)),
			Mp:         field.FromU64(uint64(ev.Mp)),
			NextMp:     field.FromU64(uint64(ev.NextMp)),
			IsForward:  boolF(ev.IsForward),
			IsReal:     field.One,
			MpLow:      mpWord.Low,
			MpHigh:     mpWord.High,
			NextMpLow:  nextMpWord.Low,
			NextMpHigh: nextMpWord.High,
		}
		rows[i] = r.ToSlice()
		record.AddU16Range(uint16(mpWord.Low.Uint32()))
		record.AddU16Range(uint16(mpWord.High.Uint32()))
		record.AddU16Range(uint16(nextMpWord.Low.Uint32()))
		record.AddU16Range(uint16(nextMpWord.High.Uint32()))
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
		opcode := backwardOpcode
		if r.IsForward == field.One {
			opcode = forwardOpcode
		}
		out[i] = []lookup.Interaction{
			{
				Bus:    lookup.MemInstrBus,
				Values: []field.F{r.Clk, r.Pc, opcode, r.Mp, r.NextMp},
				Mult:   r.IsReal,
				IsSend: false,
			},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.MpLow}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.MpHigh}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.NextMpLow}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.NextMpHigh}, Mult: r.IsReal, IsSend: true},
		}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F {
	r := FromSlice(local)
	boolIsForward := r.IsForward.Mul(field.One.Sub(r.IsForward))
	boolIsReal := r.IsReal.Mul(field.One.Sub(r.IsReal))

	// step = +1 when forward, -1 when backward: 2*is_forward - 1. Gated
	// on is_real so all-zero padding rows satisfy it.
	step := r.IsForward.Mul(field.FromU64(2)).Sub(field.One)
	stepConstraint := r.IsReal.Mul(r.NextMp.Sub(r.Mp.Add(step)))

	// mp/next_mp reconstruct from their range-checked word limbs.
	mpWordConstraint := r.Mp.Sub(field.Word{Low: r.MpLow, High: r.MpHigh}.Join())
	nextMpWordConstraint := r.NextMp.Sub(field.Word{Low: r.NextMpLow, High: r.NextMpHigh}.Join())

	return []field.F{boolIsForward, boolIsReal, stepConstraint, mpWordConstraint, nextMpWordConstraint}
}

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
