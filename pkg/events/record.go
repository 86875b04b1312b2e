package events

import "github.com/oisee/bf-zkvm/pkg/isa"

// ExecutionRecord is the sole, immutable (after Run returns) output of
// the executor and the sole input to every chip's trace generation. No
// chip mutates another chip's slice; the only shared, append-only
// structure is ByteLookups, which every chip may add multiplicity to
// before commitment (summation is commutative, so chip order never
// matters for the final multiset).
type ExecutionRecord struct {
	Program *isa.Program

	CpuEvents      []CpuEvent
	AluEvents      []AluEvent
	JumpEvents     []JumpEvent
	MemInstrEvents []MemInstrEvent
	IoEvents       []IoEvent

	// MemoryEvents is ordered by first touch: one entry per distinct
	// address, Initial sticky and Final overwritten on each access.
	MemoryEvents []MemoryEvent

	// ByteLookups accumulates range-check requests with multiplicity;
	// many cycles request the same (opcode, value) pair.
	ByteLookups map[ByteLookupEvent]uint64
}

func NewExecutionRecord(program *isa.Program) *ExecutionRecord {
	return &ExecutionRecord{
		Program:     program,
		ByteLookups: make(map[ByteLookupEvent]uint64),
	}
}

// AddByteLookup increments the multiplicity of a range-check request.
// Safe to call from any chip's dependency-generation pass.
func (r *ExecutionRecord) AddByteLookup(ev ByteLookupEvent, mult uint64) {
	r.ByteLookups[ev] += mult
}

// AddU8Range requests a byte-range check on v.
func (r *ExecutionRecord) AddU8Range(v uint8) {
	r.AddByteLookup(ByteLookupEvent{Opcode: U8Range, ValueU8: v}, 1)
}

// AddU16Range requests a 16-bit-range check on v.
func (r *ExecutionRecord) AddU16Range(v uint16) {
	r.AddByteLookup(ByteLookupEvent{Opcode: U16Range, ValueU16: v}, 1)
}

// CycleCount is the number of executed CPU cycles (global_clk).
func (r *ExecutionRecord) CycleCount() int { return len(r.CpuEvents) }
