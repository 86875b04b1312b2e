package events

// AluEvent backs a single `+` or `-` cycle. The chip proves every ALU
// cycle as an addition: Sub is represented by swapping which operand is
// the "input" and which is the "output", so `next_mv = mv - 1` is
// verified as `mv = next_mv + 1`.
type AluEvent struct {
	Pc     uint32
	IsAdd  bool
	Mv     uint8
	NextMv uint8
}
