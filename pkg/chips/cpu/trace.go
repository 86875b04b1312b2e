package cpu

import (
	"github.com/oisee/bf-zkvm/pkg/chips/common"
	"github.com/oisee/bf-zkvm/pkg/events"
	"github.com/oisee/bf-zkvm/pkg/field"
)

type Chip struct{}

func (Chip) Name() string { return "Cpu" }
func (Chip) Width() int   { return Width }

// MaxConstraintDegree is a bound on this chip's AIR: every constraint
// Eval and Boundary return is at most quadratic, so 3 leaves one degree
// of headroom. It only feeds lookup.BatchSize.
func (Chip) MaxConstraintDegree() int { return 3 }

func rowFromEvent(ev events.CpuEvent) Row {
	clk16, clk8 := field.Split24(ev.Clk)
	r := Row{
		Clk16: clk16, Clk8: clk8,
		Pc: field.FromU64(uint64(ev.Pc)), NextPc: field.FromU64(uint64(ev.NextPc)),
		Mp: field.FromU64(uint64(ev.Mp)), NextMp: field.FromU64(uint64(ev.NextMp)),
		Mv: field.FromU64(uint64(ev.Mv)), NextMv: field.FromU64(uint64(ev.NextMv)),
		Opcode: field.FromU64(uint64(ev.Instr.Opcode)), OpA: field.FromU64(uint64(ev.Instr.OpA)),
		IsAlu: boolF(ev.IsAlu), IsJump: boolF(ev.IsJump),
		IsMemoryInstr: boolF(ev.IsMem), IsIO: boolF(ev.IsIO),
		IsMvImmutable: boolF(ev.IsMvImmutable()),
		IsReal:        field.One,
	}
	if ev.SrcAccess != nil {
		r.HasMvAccess = field.One
		r.MvAccessValue = field.FromU64(uint64(ev.SrcAccess.Value))
		r.MvAccessPrevValue = field.FromU64(uint64(ev.SrcAccess.PrevValue))
		r.MvAccessTimestamp = field.FromU64(uint64(ev.SrcAccess.Timestamp))
		r.MvAccessPrevTimestamp = field.FromU64(uint64(ev.SrcAccess.PrevTimestamp))
	}
	if ev.DstAccess != nil {
		r.HasNextMvAccess = field.One
		r.NextMvAccessValue = field.FromU64(uint64(ev.DstAccess.Value))
		r.NextMvAccessPrevValue = field.FromU64(uint64(ev.DstAccess.PrevValue))
		r.NextMvAccessTimestamp = field.FromU64(uint64(ev.DstAccess.Timestamp))
		r.NextMvAccessPrevTimestamp = field.FromU64(uint64(ev.DstAccess.PrevTimestamp))
	}
	return r
}

func boolF(b bool) field.F {
	if b {
		return field.One
	}
	return field.Zero
}

func (Chip) GenerateTrace(record *events.ExecutionRecord) (common.Matrix, error) {
	rows := make([][]field.F, len(record.CpuEvents))
	for i, ev := range record.CpuEvents {
		rows[i] = rowFromEvent(ev).ToSlice()

		// Range-check hygiene (spec invariant 1 and 5): clk limbs and mv
		// are both bounded integers that must be range-checked on the
		// byte bus.
		record.AddU16Range(uint16(ev.Clk & 0xffff))
		record.AddU8Range(uint8(ev.Clk >> 16))
		record.AddU8Range(ev.Mv)
		if ev.IsAlu {
			record.AddU8Range(ev.NextMv)
		}
	}
	return common.PadRows(rows, Width, common.NextPow2(len(rows))), nil
}
