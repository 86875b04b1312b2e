package events

// MemInstrEvent backs a single `>` or `<` cycle.
type MemInstrEvent struct {
	Pc       uint32
	Clk      uint32
	Mp       uint32
	NextMp   uint32
	IsForward bool // false => step backward
}
