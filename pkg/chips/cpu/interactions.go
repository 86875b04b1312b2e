package cpu

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
	"github.com/oisee/bf-zkvm/pkg/isa"
	"github.com/oisee/bf-zkvm/pkg/lookup"
)

var addOpcodeField = field.FromU64(uint64(isa.Add))

var (
	u8RangeOpcode  = field.FromU64(uint64(events.U8Range))
	u16RangeOpcode = field.FromU64(uint64(events.U16Range))
)

func (Chip) Interactions(trace common.Matrix) [][]lookup.Interaction {
	out := make([][]lookup.Interaction, trace.Height)
	for i := 0; i < trace.Height; i++ {
		r := FromSlice(trace.Row(i))
		if r.IsReal == 0 {
			continue
		}
		var ins []lookup.Interaction

		// Program bus: every real row announces the (pc, opcode, op_a)
		// it executed, with multiplicity 1; the Program chip receives
		// with multiplicity equal to the count of rows at that pc.
		ins = append(ins, lookup.Interaction{
			Bus:    lookup.ProgramBus,
			Values: []field.F{r.Pc, r.Opcode, r.OpA},
			Mult:   r.IsReal,
			IsSend: true,
		})

		if r.IsAlu == field.One {
			// Canonicalize Sub as Add with swapped operands, resolving
			// the spec's open question: both directions are proved as
			// an addition so the AddSub chip only ever implements one
			// circuit (see spec §9 and DESIGN.md).
			a, b := r.NextMv, r.Mv
			if r.Opcode != addOpcodeField {
				a, b = r.Mv, r.NextMv
			}
			ins = append(ins, lookup.Interaction{
				Bus:    lookup.AluBus,
				Values: []field.F{r.Pc, addOpcodeField, a, b},
				Mult:   r.IsAlu,
				IsSend: true,
			})
		}
		if r.IsJump == field.One {
			ins = append(ins, lookup.Interaction{
				Bus:    lookup.JumpBus,
				Values: []field.F{r.Pc, r.NextPc, r.Opcode, r.OpA, r.Mv},
				Mult:   r.IsJump,
				IsSend: true,
			})
		}
		if r.IsMemoryInstr == field.One {
			clk := field.Join24(r.Clk16, r.Clk8)
			ins = append(ins, lookup.Interaction{
				Bus:    lookup.MemInstrBus,
				Values: []field.F{clk, r.Pc, r.Opcode, r.Mp, r.NextMp},
				Mult:   r.IsMemoryInstr,
				IsSend: true,
			})
		}
		if r.IsIO == field.One {
			ins = append(ins, lookup.Interaction{
				Bus:    lookup.IOBus,
				Values: []field.F{r.Pc, r.Opcode, r.Mp, r.Mv},
				Mult:   r.IsIO,
				IsSend: true,
			})
		}

		if r.HasMvAccess == field.One {
			ins = append(ins, memoryAccessInteractions(r.Mp, r.MvAccessPrevTimestamp, r.MvAccessPrevValue, r.MvAccessTimestamp, r.MvAccessValue)...)
		}
		if r.HasNextMvAccess == field.One {
			ins = append(ins, memoryAccessInteractions(r.Mp, r.NextMvAccessPrevTimestamp, r.NextMvAccessPrevValue, r.NextMvAccessTimestamp, r.NextMvAccessValue)...)
		}

		// Range-check hygiene mirroring GenerateTrace's record.AddU16Range
		// / record.AddU8Range calls: every limb this chip asked the byte
		// chip to validate must be sent here too, or the bus won't close.
		ins = append(ins,
			lookup.Interaction{Bus: lookup.ByteBus, Values: []field.F{u16RangeOpcode, r.Clk16}, Mult: r.IsReal, IsSend: true},
			lookup.Interaction{Bus: lookup.ByteBus, Values: []field.F{u8RangeOpcode, r.Clk8}, Mult: r.IsReal, IsSend: true},
			lookup.Interaction{Bus: lookup.ByteBus, Values: []field.F{u8RangeOpcode, r.Mv}, Mult: r.IsReal, IsSend: true},
		)
		if r.IsAlu == field.One {
			ins = append(ins, lookup.Interaction{Bus: lookup.ByteBus, Values: []field.F{u8RangeOpcode, r.NextMv}, Mult: r.IsAlu, IsSend: true})
		}

		out[i] = ins
	}
	return out
}

// memoryAccessInteractions emits the read ("send" the prior state) and
// write ("receive" the new state) legs of one memory touch, the pattern
// every access closes against the memory-consistency chip (spec §4.8).
func memoryAccessInteractions(addr, prevTimestamp, prevValue, timestamp, value field.F) []lookup.Interaction {
	return []lookup.Interaction{
		{
			Bus:    lookup.MemoryBus,
			Values: []field.F{prevTimestamp, addr, prevValue},
			Mult:   field.One,
			IsSend: true,
		},
		{
			Bus:    lookup.MemoryBus,
			Values: []field.F{timestamp, addr, value},
			Mult:   field.One,
			IsSend: false,
		},
	}
}
