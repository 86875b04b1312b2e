package events

// JumpEvent backs a single `[` or `]` cycle.
type JumpEvent struct {
	Pc         uint32
	NextPc     uint32
	IsLoopEnd  bool // false => LoopStart
	Dst        uint32
	Mv         uint8
}
