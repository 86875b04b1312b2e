package events

import "github.com/oisee/bf-zkvm/pkg/isa"

// AccessRecord is a single memory touch observed during a cycle. Reads
// leave Value/PrevValue equal; writes may change the value. IsWrite
// marks the writes; the CPU chip does not read it, and derives its
// "is_mv_immutable" flag from the cycle kind (CpuEvent.IsMvImmutable).
type AccessRecord struct {
	Value         uint8
	Timestamp     uint32
	PrevValue     uint8
	PrevTimestamp uint32
	IsWrite       bool
}

// CpuEvent is one executed cycle, the row every other chip's event is
// keyed against via the lookup buses.
type CpuEvent struct {
	Clk     uint32
	Pc      uint32
	NextPc  uint32
	Mp      uint32
	NextMp  uint32
	Mv      uint8
	NextMv  uint8
	Instr   isa.Instruction
	IsAlu   bool
	IsJump  bool
	IsMem   bool // is_memory_instr
	IsIO    bool

	// SrcAccess is the cycle's primary memory access (mv_access), present
	// on every row except pure memory-instruction (>/<) cycles, which
	// touch no cell.
	SrcAccess *AccessRecord
	// DstAccess is the second access (next_mv_access) taken only on ALU
	// cycles, where the new value is written back.
	DstAccess *AccessRecord
}

// IsMvImmutable reports whether this cycle's primary access must leave
// the cell unchanged: ALU cycles read the operand before writing it back
// via DstAccess, Jump cycles only ever read, and Output never mutates.
func (e CpuEvent) IsMvImmutable() bool {
	return e.IsAlu || e.IsJump || (e.IsIO && e.Instr.Opcode == isa.Output)
}
