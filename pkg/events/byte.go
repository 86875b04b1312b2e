package events

// ByteOpcode selects which shape of range check a ByteLookupEvent
// requests from the byte chip's preprocessed (opcode, value) table.
type ByteOpcode uint8

const (
	U8Range  ByteOpcode = 0
	U16Range ByteOpcode = 1
)

// ByteLookupEvent is a single range-check request. It is comparable so it
// can key a multiplicity map: many cycles request the same (opcode,
// value) pair, and the byte chip only cares about the total count.
type ByteLookupEvent struct {
	Opcode   ByteOpcode
	ValueU8  uint8
	ValueU16 uint16
}
