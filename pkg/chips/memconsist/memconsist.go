// Package memconsist implements the memory-consistency chip (spec §4.8):
// one row per touched address, receiving its initial (zero-value,
// zero-timestamp) state and sending its final state. Every intermediate
// read/write is injected and consumed entirely through the CPU chip's
// memory-bus sends; this chip only closes the loop per address so the
// permutation argument forces the whole access sequence to agree.
package memconsist

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

const (
	colAddr = iota
	colInitialValue
	colInitialTimestamp
	colFinalValue
	colFinalTimestamp
	colIsReal
	numCols
)

const Width = numCols

type Row struct {
	Addr, InitialValue, InitialTimestamp, FinalValue, FinalTimestamp, IsReal field.F
}

func (r Row) ToSlice() []field.F {
	return []field.F{r.Addr, r.InitialValue, r.InitialTimestamp, r.FinalValue, r.FinalTimestamp, r.IsReal}
}

func FromSlice(s []field.F) Row {
	return Row{Addr: s[colAddr], InitialValue: s[colInitialValue], InitialTimestamp: s[colInitialTimestamp], FinalValue: s[colFinalValue], FinalTimestamp: s[colFinalTimestamp], IsReal: s[colIsReal]}
}

type Chip struct{}

func (Chip) Name() string             { return "MemoryConsistency" }
func (Chip) Width() int                { return Width }
func (Chip) MaxConstraintDegree() int { return 2 }

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	rows := make([][]field.F, len(record.MemoryEvents))
	for i, ev := range record.MemoryEvents {
		r := Row{
			Addr:             field.FromU64(uint64(ev.Addr)),
			InitialValue:     field.FromU64(uint64(ev.Initial.Value)),
			InitialTimestamp: field.FromU64(uint64(ev.Initial.Timestamp)),
			FinalValue:       field.FromU64(uint64(ev.Final.Value)),
			FinalTimestamp:   field.FromU64(uint64(ev.Final.Timestamp)),
			IsReal:           field.One,
		}
		rows[i] = r.ToSlice()
	}
	return common.PadRows(rows, Width, common.NextPow2(len(rows))), nil
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
				Bus:    lookup.MemoryBus,
				Values: []field.F{r.InitialTimestamp, r.Addr, r.InitialValue},
				Mult:   r.IsReal,
				IsSend: false,
			},
			{
				Bus:    lookup.MemoryBus,
				Values: []field.F{r.FinalTimestamp, r.Addr, r.FinalValue},
				Mult:   r.IsReal,
				IsSend: true,
			},
		}
	}
	return out
}

func (Chip) Eval(local, next []field.F) []field.F {
	r := FromSlice(local)
	boolIsReal := r.IsReal.Mul(field.One.Sub(r.IsReal))
	// Every address begins unwritten: value 0 at timestamp 0.
	initialZeroValue := r.IsReal.Mul(r.InitialValue)
	initialZeroTimestamp := r.IsReal.Mul(r.InitialTimestamp)
	return []field.F{boolIsReal, initialZeroValue, initialZeroTimestamp}
}

func (Chip) Boundary(first, last []field.F) []field.F { return nil }
