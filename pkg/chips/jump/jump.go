// Package jump implements the chip proving `[` / `]` branch cycles (spec
// §4.5): whether the branch is taken is derived from mv == 0 via a
// standard is-zero gadget, and next_pc is selected between the
// resolved jump target and pc+1 accordingly.
package jump

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

var (
	u8RangeOpcode  = field.FromU64(uint64(events.U8Range))
	u16RangeOpcode = field.FromU64(uint64(events.U16Range))
)

const (
	colPc = iota
	colNextPc
	colDst
	colMv
	colMvInv
	colIsZero
	colIsLoopEnd
	colIsReal
	colPcLow
	colPcHigh
	colNextPcLow
	colNextPcHigh
	numCols
)

const Width = numCols

type Row struct {
	Pc, NextPc, Dst, Mv, MvInv, IsZero, IsLoopEnd, IsReal field.F
	PcLow, PcHigh, NextPcLow, NextPcHigh                  field.F
}

func (r Row) ToSlice() []field.F {
	return []field.F{r.Pc, r.NextPc, r.Dst, r.Mv, r.MvInv, r.IsZero, r.IsLoopEnd, r.IsReal, r.PcLow, r.PcHigh, r.NextPcLow, r.NextPcHigh}
}

func FromSlice(s []field.F) Row {
	return Row{
		Pc: s[colPc], NextPc: s[colNextPc], Dst: s[colDst], Mv: s[colMv], MvInv: s[colMvInv],
		IsZero: s[colIsZero], IsLoopEnd: s[colIsLoopEnd], IsReal: s[colIsReal],
		PcLow: s[colPcLow], PcHigh: s[colPcHigh], NextPcLow: s[colNextPcLow], NextPcHigh: s[colNextPcHigh],
	}
}

type Chip struct{}

func (Chip) Name() string             { return "Jump" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 4 }

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	rows := make([][]field.F, len(record.JumpEvents))
	for i, ev := range record.JumpEvents {
		mv := field.FromU64(uint64(ev.Mv))
		isZero := field.Zero
		mvInv := field.Zero
		if ev.Mv == 0 {
			isZero = field.One
		} else {
			mvInv = mv.Inv()
		}
		pcWord := field.SplitWord(ev.Pc)
		nextPcWord := field.SplitWord(ev.NextPc)
		r := Row{
			Pc:         field.FromU64(uint64(ev.Pc)),
			NextPc:     field.FromU64(uint64(ev.NextPc)),
			Dst:        field.FromU64(uint64(ev.Dst)),
			Mv:         mv,
			MvInv:      mvInv,
			IsZero:     isZero,
			IsLoopEnd:  boolF(ev.IsLoopEnd),
			IsReal:     field.One,
			PcLow:      pcWord.Low,
			PcHigh:     pcWord.High,
			NextPcLow:  nextPcWord.Low,
			NextPcHigh: nextPcWord.High,
		}
		rows[i] = r.ToSlice()
		record.AddU8Range(ev.Mv)
		record.AddU16Range(uint16(pcWord.Low.Uint32()))
		record.AddU16Range(uint16(pcWord.High.Uint32()))
		record.AddU16Range(uint16(nextPcWord.Low.Uint32()))
		record.AddU16Range(uint16(nextPcWord.High.Uint32()))
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
		out[i] = []lookup.Interaction{
			{
				Bus:    lookup.JumpBus,
				Values: []field.F{r.Pc, r.NextPc, r.IsLoopEnd, r.Dst, r.Mv},
				Mult:   r.IsReal,
				IsSend: false,
			},
			{Bus: lookup.ByteBus, Values: []field.F{u8RangeOpcode, r.Mv}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.PcLow}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.PcHigh}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.NextPcLow}, Mult: r.IsReal, IsSend: true},
			{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.NextPcHigh}, Mult: r.IsReal, IsSend: true},
		}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F {
	r := FromSlice(local)

	boolIsZero := r.IsZero.Mul(field.One.Sub(r.IsZero))
	boolIsLoopEnd := r.IsLoopEnd.Mul(field.One.Sub(r.IsLoopEnd))
	boolIsReal := r.IsReal.Mul(field.One.Sub(r.IsReal))

	// is-zero gadget: mv * is_zero == 0, and mv * mv_inv + is_zero == 1
	// (the latter, like the next_pc selection, only on real rows so
	// all-zero padding rows satisfy it).
	zeroGadget1 := r.Mv.Mul(r.IsZero)
	zeroGadget2 := r.IsReal.Mul(r.Mv.Mul(r.MvInv).Add(r.IsZero).Sub(field.One))

	// takeBranch = is_loop_end ? (1 - is_zero) : is_zero
	takeBranch := r.IsLoopEnd.Mul(field.One.Sub(r.IsZero)).Add(field.One.Sub(r.IsLoopEnd).Mul(r.IsZero))
	target := takeBranch.Mul(r.Dst).Add(field.One.Sub(takeBranch).Mul(r.Pc.Add(field.One)))
	nextPcConstraint := r.IsReal.Mul(r.NextPc.Sub(target))

	// pc/next_pc reconstruct from their range-checked word limbs, tying
	// the free-witnessed limb columns back to the values the Jump bus
	// actually sends.
	pcWordConstraint := r.Pc.Sub(field.Word{Low: r.PcLow, High: r.PcHigh}.Join())
	nextPcWordConstraint := r.NextPc.Sub(field.Word{Low: r.NextPcLow, High: r.NextPcHigh}.Join())

	return []field.F{boolIsZero, boolIsLoopEnd, boolIsReal, zeroGadget1, zeroGadget2, nextPcConstraint, pcWordConstraint, nextPcWordConstraint}
}

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
